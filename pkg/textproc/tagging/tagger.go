package tagging

import (
	"fmt"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// DocumentTagger tags a document and returns a new one. The input document
// is not modified.
type DocumentTagger interface {
	Tag(doc *data.Document) (*data.Document, error)
}

// SentenceTagger recognizes the entities of one sentence.
type SentenceTagger interface {
	TagEntities(s data.Sentence) ([]MultipleTaggedEntity, error)
}

// SentenceTaggerFunc adapts a function to SentenceTagger.
type SentenceTaggerFunc func(s data.Sentence) ([]MultipleTaggedEntity, error)

// TagEntities implements SentenceTagger.
func (f SentenceTaggerFunc) TagEntities(s data.Sentence) ([]MultipleTaggedEntity, error) {
	return f(s)
}

// MultiTagger re-tags documents with entities that may carry tags from
// several sources at once. It holds no per-call state and is safe for
// concurrent use when its SentenceTagger and Tokenizer are.
type MultiTagger struct {
	sentences       SentenceTagger
	tokenizer       tokenize.Tokenizer
	setUnmodifiable bool
}

// NewMultiTagger creates a tagger. Entity strings are split into words with
// tok; with setUnmodifiable every entity term is flagged unmodifiable.
func NewMultiTagger(st SentenceTagger, tok tokenize.Tokenizer, setUnmodifiable bool) (*MultiTagger, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: sentence tagger is required", internalerr.ErrInvalidInput)
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", internalerr.ErrInvalidInput)
	}
	return &MultiTagger{sentences: st, tokenizer: tok, setUnmodifiable: setUnmodifiable}, nil
}

// Tag implements DocumentTagger. Section annotations, paragraph structure and
// metadata carry over; empty sentences are passed through.
func (t *MultiTagger) Tag(doc *data.Document) (*data.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", internalerr.ErrInvalidInput)
	}

	b := data.NewDocumentBuilderFrom(doc)
	for si, sec := range doc.Sections() {
		for pi, para := range sec.Paragraphs() {
			sentences := para.Sentences()
			tagged := make([]data.Sentence, len(sentences))
			for ti, s := range sentences {
				out, err := t.TagSentence(s)
				if err != nil {
					return nil, fmt.Errorf("section %d paragraph %d sentence %d: %w", si, pi, ti, err)
				}
				tagged[ti] = out
			}
			b.AddParagraph(data.NewParagraph(tagged))
		}
		b.CreateNewSection(sec.Annotation())
	}
	return b.CreateDocument(), nil
}

// TagSentence tags a single sentence. Every entity is located in the term
// list left by the entities before it, so later entities win where spans
// overlap.
func (t *MultiTagger) TagSentence(s data.Sentence) (data.Sentence, error) {
	if s.Len() == 0 {
		return s, nil
	}

	entities, err := t.sentences.TagEntities(s)
	if err != nil {
		return data.Sentence{}, fmt.Errorf("recognize entities: %w", err)
	}
	if len(entities) == 0 {
		return s, nil
	}

	initial := s.Terms()
	terms := initial
	for _, e := range entities {
		ranges, err := locate(terms, e, t.tokenizer)
		if err != nil {
			return data.Sentence{}, err
		}
		terms, err = rebuild(terms, ranges, t.setUnmodifiable)
		if err != nil {
			return data.Sentence{}, fmt.Errorf("entity %q: %w", e.Entity, err)
		}
	}
	return merge(initial, terms)
}
