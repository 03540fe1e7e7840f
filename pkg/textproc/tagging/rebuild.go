package tagging

import (
	"fmt"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// rebuildState names the steps of re-segmenting a term list around one
// index range.
type rebuildState int

const (
	stateBeforeRange rebuildState = iota
	stateInRangeSingleTerm
	stateInRangeMultiTermStart
	stateInRangeMultiTermMiddle
	stateInRangeMultiTermEnd
	stateRangeDone
	stateAfterRanges
)

func (s rebuildState) String() string {
	switch s {
	case stateBeforeRange:
		return "BEFORE_RANGE"
	case stateInRangeSingleTerm:
		return "IN_RANGE_SINGLE_TERM"
	case stateInRangeMultiTermStart:
		return "IN_RANGE_MULTI_TERM_START"
	case stateInRangeMultiTermMiddle:
		return "IN_RANGE_MULTI_TERM_MIDDLE"
	case stateInRangeMultiTermEnd:
		return "IN_RANGE_MULTI_TERM_END"
	case stateRangeDone:
		return "RANGE_DONE"
	case stateAfterRanges:
		return "AFTER_RANGES"
	}
	return fmt.Sprintf("rebuildState(%d)", int(s))
}

// rebuilder turns a term list plus index ranges into a new term list in
// which every range is one term.
//
// The cursor (term, word) points at the next unconsumed word of old. A
// cursor with word > 0 means old[term] has been partly consumed; its
// remaining words can only be emitted as single-word terms.
type rebuilder struct {
	old          []data.Term
	out          []data.Term
	unmodifiable bool

	term   int
	word   int
	entity []data.Word
	state  rebuildState
}

// rebuild applies ranges (already ordered and free of overlaps) to old.
func rebuild(old []data.Term, ranges *rangeTags, unmodifiable bool) ([]data.Term, error) {
	if ranges.len() == 0 {
		return old, nil
	}

	b := &rebuilder{
		old:          old,
		out:          make([]data.Term, 0, len(old)+2*ranges.len()),
		unmodifiable: unmodifiable,
	}
	for _, e := range ranges.entries() {
		if err := e.Range.validate(old); err != nil {
			return nil, err
		}
		if err := b.apply(e); err != nil {
			return nil, err
		}
	}
	b.afterRanges()

	if got, want := countWords(b.out), countWords(old); got != want {
		return nil, fmt.Errorf("%w: rebuilt %d words from %d", internalerr.ErrInconsistentRange, got, want)
	}
	return b.out, nil
}

func (b *rebuilder) apply(e rangeEntry) error {
	b.state = stateBeforeRange
	for b.state != stateRangeDone {
		var err error
		switch b.state {
		case stateBeforeRange:
			b.state, err = b.beforeRange(e.Range)
		case stateInRangeSingleTerm:
			b.state, err = b.singleTerm(e)
		case stateInRangeMultiTermStart:
			b.state = b.multiTermStart(e.Range)
		case stateInRangeMultiTermMiddle:
			b.state = b.multiTermMiddle(e.Range)
		case stateInRangeMultiTermEnd:
			b.state, err = b.multiTermEnd(e)
		default:
			err = fmt.Errorf("%w: unexpected state %s", internalerr.ErrInconsistentRange, b.state)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// beforeRange copies everything between the cursor and the range start.
func (b *rebuilder) beforeRange(r IndexRange) (rebuildState, error) {
	if b.term > r.StartTerm || (b.term == r.StartTerm && b.word > r.StartWord) {
		return stateBeforeRange, fmt.Errorf("%w: %s starts inside already rebuilt words", internalerr.ErrInconsistentRange, r)
	}
	if b.word > 0 && b.term < r.StartTerm {
		b.splitRest()
	}
	for b.term < r.StartTerm {
		b.out = append(b.out, b.old[b.term])
		b.term++
	}
	if r.StartTerm == r.StopTerm {
		return stateInRangeSingleTerm, nil
	}
	return stateInRangeMultiTermStart, nil
}

// singleTerm handles a range inside one term. A range covering the whole
// term keeps the term's tags; a partial range splits the term.
func (b *rebuilder) singleTerm(e rangeEntry) (rebuildState, error) {
	r := e.Range
	term := b.old[b.term]

	if r.StartWord == 0 && r.StopWord == term.WordCount()-1 {
		tags := data.AppendMissingTags(term.Tags(), e.Tags...)
		t, err := data.NewTerm(term.Words(), tags, b.unmodifiable || term.Unmodifiable())
		if err != nil {
			return stateInRangeSingleTerm, err
		}
		b.out = append(b.out, t)
		b.term++
		b.word = 0
		return stateRangeDone, nil
	}

	b.splitUntil(r.StartWord)
	for w := r.StartWord; w <= r.StopWord; w++ {
		b.entity = append(b.entity, term.Word(w))
	}
	if err := b.emitEntity(e.Tags); err != nil {
		return stateInRangeSingleTerm, err
	}
	b.advanceTo(r.StopWord + 1)
	return stateRangeDone, nil
}

// multiTermStart splits off the words of the start term before the range
// and collects the rest of it.
func (b *rebuilder) multiTermStart(r IndexRange) rebuildState {
	term := b.old[b.term]
	b.splitUntil(r.StartWord)
	for w := r.StartWord; w < term.WordCount(); w++ {
		b.entity = append(b.entity, term.Word(w))
	}
	b.term++
	b.word = 0
	return stateInRangeMultiTermMiddle
}

// multiTermMiddle collects the terms strictly between start and stop term.
func (b *rebuilder) multiTermMiddle(r IndexRange) rebuildState {
	if b.term >= r.StopTerm {
		return stateInRangeMultiTermEnd
	}
	b.entity = append(b.entity, b.old[b.term].Words()...)
	b.term++
	return stateInRangeMultiTermMiddle
}

// multiTermEnd collects the stop term up to the stop word and emits the
// entity term.
func (b *rebuilder) multiTermEnd(e rangeEntry) (rebuildState, error) {
	term := b.old[b.term]
	for w := 0; w <= e.Range.StopWord; w++ {
		b.entity = append(b.entity, term.Word(w))
	}
	if err := b.emitEntity(e.Tags); err != nil {
		return stateInRangeMultiTermEnd, err
	}
	b.advanceTo(e.Range.StopWord + 1)
	return stateRangeDone, nil
}

// afterRanges flushes the partly consumed term and copies the rest.
func (b *rebuilder) afterRanges() {
	b.state = stateAfterRanges
	if b.word > 0 {
		b.splitRest()
	}
	b.out = append(b.out, b.old[b.term:]...)
	b.term = len(b.old)
}

func (b *rebuilder) splitUntil(end int) {
	term := b.old[b.term]
	for ; b.word < end; b.word++ {
		b.out = append(b.out, data.SingleWordTerm(term.Word(b.word)))
	}
}

func (b *rebuilder) splitRest() {
	b.splitUntil(b.old[b.term].WordCount())
	b.term++
	b.word = 0
}

// advanceTo moves the cursor to word next of the current term, stepping to
// the following term when the current one is used up.
func (b *rebuilder) advanceTo(next int) {
	b.word = next
	if b.word >= b.old[b.term].WordCount() {
		b.term++
		b.word = 0
	}
}

func (b *rebuilder) emitEntity(tags []data.Tag) error {
	t, err := data.NewTerm(b.entity, tags, b.unmodifiable)
	if err != nil {
		return err
	}
	b.out = append(b.out, t)
	b.entity = b.entity[:0]
	return nil
}

func countWords(terms []data.Term) int {
	n := 0
	for _, t := range terms {
		n += t.WordCount()
	}
	return n
}
