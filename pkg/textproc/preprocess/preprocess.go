// Package preprocess transforms the terms of tagged documents. Terms flagged
// unmodifiable are never changed or removed.
package preprocess

import (
	"fmt"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// Preprocessor returns a transformed copy of a document.
type Preprocessor interface {
	Process(doc *data.Document) (*data.Document, error)
}

// termFunc maps a modifiable term to its replacement; keep=false drops it.
type termFunc func(t data.Term) (out data.Term, keep bool, err error)

// mapTerms rebuilds doc applying fn to every modifiable term. Sentences that
// end up empty are kept so that the document structure does not change.
func mapTerms(doc *data.Document, fn termFunc) (*data.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", internalerr.ErrInvalidInput)
	}

	b := data.NewDocumentBuilderFrom(doc)
	for _, sec := range doc.Sections() {
		for _, para := range sec.Paragraphs() {
			sentences := para.Sentences()
			out := make([]data.Sentence, len(sentences))
			for i, s := range sentences {
				terms := make([]data.Term, 0, s.Len())
				for _, t := range s.Terms() {
					if t.Unmodifiable() {
						terms = append(terms, t)
						continue
					}
					mapped, keep, err := fn(t)
					if err != nil {
						return nil, err
					}
					if keep {
						terms = append(terms, mapped)
					}
				}
				out[i] = data.NewSentence(terms)
			}
			b.AddParagraph(data.NewParagraph(out))
		}
		b.CreateNewSection(sec.Annotation())
	}
	return b.CreateDocument(), nil
}

// Chain runs preprocessors in order.
type Chain []Preprocessor

// Process implements Preprocessor.
func (c Chain) Process(doc *data.Document) (*data.Document, error) {
	var err error
	for _, p := range c {
		if doc, err = p.Process(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
