package tagging

import (
	"fmt"
	"sort"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// IndexRange locates an entity match inside a term list. Term indices point
// into the list the match was found in; word indices are offsets inside the
// start and stop terms.
type IndexRange struct {
	StartTerm int
	StopTerm  int
	StartWord int
	StopWord  int
}

func (r IndexRange) String() string {
	return fmt.Sprintf("[%d:%d..%d:%d]", r.StartTerm, r.StartWord, r.StopTerm, r.StopWord)
}

// before reports whether r starts before o.
func (r IndexRange) before(o IndexRange) bool {
	if r.StartTerm != o.StartTerm {
		return r.StartTerm < o.StartTerm
	}
	return r.StartWord < o.StartWord
}

// overlaps reports whether r and o share at least one word.
func (r IndexRange) overlaps(o IndexRange) bool {
	first, second := r, o
	if o.before(r) {
		first, second = o, r
	}
	if second.StartTerm != first.StopTerm {
		return second.StartTerm < first.StopTerm
	}
	return second.StartWord <= first.StopWord
}

func (r IndexRange) validate(terms []data.Term) error {
	if r.StartTerm < 0 || r.StopTerm >= len(terms) || r.StartTerm > r.StopTerm {
		return fmt.Errorf("%w: %s over %d terms", internalerr.ErrInconsistentRange, r, len(terms))
	}
	if r.StartWord < 0 || r.StartWord >= terms[r.StartTerm].WordCount() ||
		r.StopWord < 0 || r.StopWord >= terms[r.StopTerm].WordCount() {
		return fmt.Errorf("%w: %s word offset outside term", internalerr.ErrInconsistentRange, r)
	}
	if r.StartTerm == r.StopTerm && r.StartWord > r.StopWord {
		return fmt.Errorf("%w: %s stops before it starts", internalerr.ErrInconsistentRange, r)
	}
	return nil
}

// TagMatcher pairs the tag of one tag source with the matcher that decides
// whether a sentence word matches an entity word for that source.
type TagMatcher struct {
	Tag     data.Tag
	Matcher WordMatcher
}

// MultipleTaggedEntity is an entity string recognized by one or more tag
// sources, each with its own tag and word matcher.
type MultipleTaggedEntity struct {
	Entity   string
	Matchers []TagMatcher
}

// NewMultipleTaggedEntity creates an entity without tag sources.
func NewMultipleTaggedEntity(entity string) MultipleTaggedEntity {
	return MultipleTaggedEntity{Entity: entity}
}

// With returns a copy of e where tag is matched by m. A tag that is already
// present keeps its position and gets the new matcher.
func (e MultipleTaggedEntity) With(tag data.Tag, m WordMatcher) MultipleTaggedEntity {
	out := MultipleTaggedEntity{Entity: e.Entity, Matchers: make([]TagMatcher, len(e.Matchers), len(e.Matchers)+1)}
	copy(out.Matchers, e.Matchers)
	for i := range out.Matchers {
		if out.Matchers[i].Tag == tag {
			out.Matchers[i].Matcher = m
			return out
		}
	}
	out.Matchers = append(out.Matchers, TagMatcher{Tag: tag, Matcher: m})
	return out
}

// Tags lists the entity's tags in source order.
func (e MultipleTaggedEntity) Tags() []data.Tag {
	tags := make([]data.Tag, len(e.Matchers))
	for i, tm := range e.Matchers {
		tags[i] = tm.Tag
	}
	return tags
}

// rangeTags is an insertion-ordered map from IndexRange to the tags applied
// to it.
type rangeTags struct {
	order []IndexRange
	tags  map[IndexRange][]data.Tag
}

func newRangeTags() *rangeTags {
	return &rangeTags{tags: make(map[IndexRange][]data.Tag)}
}

// add records tag for r, appending to an existing entry for the same range.
func (rt *rangeTags) add(r IndexRange, tag data.Tag) {
	existing, ok := rt.tags[r]
	if !ok {
		rt.order = append(rt.order, r)
	}
	rt.tags[r] = data.AppendMissingTags(existing, tag)
}

func (rt *rangeTags) len() int { return len(rt.order) }

type rangeEntry struct {
	Range IndexRange
	Tags  []data.Tag
}

// entries returns the ranges sorted by start position. A range that overlaps
// an earlier accepted one is dropped; on equal starts discovery order wins.
func (rt *rangeTags) entries() []rangeEntry {
	sorted := make([]IndexRange, len(rt.order))
	copy(sorted, rt.order)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].before(sorted[j]) })

	out := make([]rangeEntry, 0, len(sorted))
	for _, r := range sorted {
		if n := len(out); n > 0 && out[n-1].Range.overlaps(r) {
			continue
		}
		out = append(out, rangeEntry{Range: r, Tags: rt.tags[r]})
	}
	return out
}
