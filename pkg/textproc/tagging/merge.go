package tagging

import (
	"fmt"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// merge carries the tags of initial over to rebuilt. Both lists must hold
// the same words. A rebuilt term gets the tags of the initial term that
// spans exactly the same words, placed before its own tags; rebuilt terms
// without such a partner keep only their own tags.
func merge(initial, rebuilt []data.Term) (data.Sentence, error) {
	out := make([]data.Term, 0, len(rebuilt))

	var i, j int
	var curInit, curNew int
	for j < len(rebuilt) {
		switch {
		case curNew < curInit:
			out = append(out, rebuilt[j])
			curNew += rebuilt[j].WordCount()
			j++
		case i >= len(initial):
			return data.Sentence{}, fmt.Errorf("%w: rebuilt terms exceed the %d initial words", internalerr.ErrInconsistentRange, curInit)
		case curInit < curNew:
			curInit += initial[i].WordCount()
			i++
		default:
			orig, next := initial[i], rebuilt[j]
			curInit += orig.WordCount()
			curNew += next.WordCount()
			i++
			j++
			if curInit != curNew {
				out = append(out, next)
				continue
			}
			merged, err := mergeTerm(orig, next)
			if err != nil {
				return data.Sentence{}, err
			}
			out = append(out, merged)
		}
	}
	for ; i < len(initial); i++ {
		curInit += initial[i].WordCount()
	}
	if curInit != curNew {
		return data.Sentence{}, fmt.Errorf("%w: merged %d rebuilt words with %d initial words", internalerr.ErrInconsistentRange, curNew, curInit)
	}
	return data.NewSentence(out), nil
}

func mergeTerm(orig, next data.Term) (data.Term, error) {
	if !orig.SameWords(next) {
		return data.Term{}, fmt.Errorf("%w: term %q aligned with %q", internalerr.ErrInconsistentRange, next.Text(), orig.Text())
	}
	tags := data.AppendMissingTags(orig.Tags(), next.Tags()...)
	return data.NewTerm(next.Words(), tags, orig.Unmodifiable() || next.Unmodifiable())
}
