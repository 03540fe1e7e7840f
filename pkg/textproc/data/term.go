package data

import (
	"fmt"
	"strings"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// WordSeparator joins the words of a term and the terms of a sentence.
const WordSeparator = " "

// Word is the atomic unit of text.
type Word struct {
	Text   string
	Suffix string // trailing whitespace in the source text
}

// NewWord creates a word without trailing whitespace.
func NewWord(text string) Word {
	return Word{Text: text}
}

// Equal reports whether both words carry the same text.
func (w Word) Equal(o Word) bool {
	return w.Text == o.Text
}

// Tag labels a term, e.g. {Type: "POS", Value: "NN"}.
type Tag struct {
	Type  string
	Value string
}

// NewTag validates and creates a tag.
func NewTag(tagType, value string) (Tag, error) {
	if strings.TrimSpace(tagType) == "" {
		return Tag{}, fmt.Errorf("%w: tag type is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(value) == "" {
		return Tag{}, fmt.Errorf("%w: tag value is required", internalerr.ErrInvalidInput)
	}
	return Tag{Type: tagType, Value: value}, nil
}

func (t Tag) String() string {
	return t.Value + "(" + t.Type + ")"
}

// Term is a non-empty run of words carrying a set of tags.
// Terms flagged unmodifiable must not be altered or removed by preprocessing.
type Term struct {
	words        []Word
	tags         []Tag
	unmodifiable bool
}

// NewTerm copies words and tags into a new term. Duplicate tags are dropped,
// keeping the first occurrence.
func NewTerm(words []Word, tags []Tag, unmodifiable bool) (Term, error) {
	if len(words) == 0 {
		return Term{}, fmt.Errorf("%w: term needs at least one word", internalerr.ErrInvalidInput)
	}
	w := make([]Word, len(words))
	copy(w, words)
	return Term{
		words:        w,
		tags:         AppendMissingTags(make([]Tag, 0, len(tags)), tags...),
		unmodifiable: unmodifiable,
	}, nil
}

// SingleWordTerm creates an untagged, modifiable term holding one word.
func SingleWordTerm(w Word) Term {
	return Term{words: []Word{w}}
}

// Words returns a copy of the term's words.
func (t Term) Words() []Word {
	out := make([]Word, len(t.words))
	copy(out, t.words)
	return out
}

// WordCount returns the number of words in the term.
func (t Term) WordCount() int { return len(t.words) }

// Word returns the i-th word.
func (t Term) Word(i int) Word { return t.words[i] }

// Tags returns a copy of the term's tags.
func (t Term) Tags() []Tag {
	out := make([]Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// HasTag reports whether the term carries tag.
func (t Term) HasTag(tag Tag) bool {
	return containsTag(t.tags, tag)
}

// Unmodifiable reports whether preprocessing must leave the term alone.
func (t Term) Unmodifiable() bool { return t.unmodifiable }

// Text joins the term's words with WordSeparator.
func (t Term) Text() string {
	parts := make([]string, len(t.words))
	for i, w := range t.words {
		parts[i] = w.Text
	}
	return strings.Join(parts, WordSeparator)
}

// Equal compares words, tags (in order) and the unmodifiable flag.
func (t Term) Equal(o Term) bool {
	if t.unmodifiable != o.unmodifiable || len(t.words) != len(o.words) || len(t.tags) != len(o.tags) {
		return false
	}
	for i := range t.words {
		if !t.words[i].Equal(o.words[i]) {
			return false
		}
	}
	for i := range t.tags {
		if t.tags[i] != o.tags[i] {
			return false
		}
	}
	return true
}

// SameWords reports whether both terms hold the same word sequence.
func (t Term) SameWords(o Term) bool {
	if len(t.words) != len(o.words) {
		return false
	}
	for i := range t.words {
		if !t.words[i].Equal(o.words[i]) {
			return false
		}
	}
	return true
}

func (t Term) String() string {
	var sb strings.Builder
	sb.WriteString(t.Text())
	sb.WriteString("[")
	for i, tag := range t.tags {
		if i > 0 {
			sb.WriteString(WordSeparator)
		}
		sb.WriteString(tag.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// AppendMissingTags appends every tag of add that dst does not already hold.
func AppendMissingTags(dst []Tag, add ...Tag) []Tag {
	for _, tag := range add {
		if !containsTag(dst, tag) {
			dst = append(dst, tag)
		}
	}
	return dst
}

func containsTag(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
