package tagging

import (
	"fmt"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// wordPos addresses one word of a term list.
type wordPos struct {
	term int
	word int
	text string
}

func flatten(terms []data.Term) []wordPos {
	var out []wordPos
	for ti, t := range terms {
		for wi := 0; wi < t.WordCount(); wi++ {
			out = append(out, wordPos{term: ti, word: wi, text: t.Word(wi).Text})
		}
	}
	return out
}

// locate finds every occurrence of entity in terms, separately for each of
// its tag sources. A range found by several sources carries all their tags.
func locate(terms []data.Term, entity MultipleTaggedEntity, tok tokenize.Tokenizer) (*rangeTags, error) {
	ranges := newRangeTags()

	entityWords := tok.Tokenize(entity.Entity)
	if len(entityWords) == 0 {
		return ranges, nil
	}

	positions := flatten(terms)
	for _, tm := range entity.Matchers {
		if tm.Matcher == nil {
			return nil, fmt.Errorf("%w: no matcher for tag %s of entity %q", internalerr.ErrInvalidInput, tm.Tag, entity.Entity)
		}
		for _, r := range scan(positions, entityWords, tm.Matcher) {
			ranges.add(r, tm.Tag)
		}
	}
	return ranges, nil
}

// scan walks the words left to right keeping the words that currently match
// a prefix of entityWords. Matches do not overlap: after a complete match the
// window starts empty again.
// TODO: replace the restart search with a KMP failure table for long entities.
func scan(positions []wordPos, entityWords []string, m WordMatcher) []IndexRange {
	var found []IndexRange
	window := make([]wordPos, 0, len(entityWords))

	for _, p := range positions {
		window = append(window, p)
		if !m.MatchWithWord(entityWords[len(window)-1], p.text) {
			window = restart(window, entityWords, m)
		}
		if len(window) == len(entityWords) {
			first, last := window[0], window[len(window)-1]
			found = append(found, IndexRange{
				StartTerm: first.term,
				StopTerm:  last.term,
				StartWord: first.word,
				StopWord:  last.word,
			})
			window = window[:0]
		}
	}
	return found
}

// restart drops words from the front of a window whose last word broke the
// match until the rest is a prefix of the entity again. Only the buffered
// words are searched.
func restart(window []wordPos, entityWords []string, m WordMatcher) []wordPos {
	for start := 1; start < len(window); start++ {
		if matchesPrefix(window[start:], entityWords, m) {
			n := copy(window, window[start:])
			return window[:n]
		}
	}
	return window[:0]
}

func matchesPrefix(words []wordPos, entityWords []string, m WordMatcher) bool {
	for i, w := range words {
		if !m.MatchWithWord(entityWords[i], w.text) {
			return false
		}
	}
	return true
}
