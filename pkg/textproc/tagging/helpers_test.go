package tagging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

var (
	tagCity   = data.Tag{Type: "NE", Value: "CITY"}
	tagPhrase = data.Tag{Type: "NE", Value: "PHRASE"}
	tagNNP    = data.Tag{Type: "POS", Value: "NNP"}
	tagVB     = data.Tag{Type: "POS", Value: "VB"}
)

var testTokenizer = tokenize.NewWordTokenizer()

// mkTerm builds a term from space separated words.
func mkTerm(t *testing.T, text string, tags ...data.Tag) data.Term {
	t.Helper()
	var words []data.Word
	for _, w := range strings.Fields(text) {
		words = append(words, data.NewWord(w))
	}
	term, err := data.NewTerm(words, tags, false)
	require.NoError(t, err)
	return term
}

// mkWords builds one single-word term per word of text.
func mkWords(t *testing.T, text string) []data.Term {
	t.Helper()
	var terms []data.Term
	for _, w := range strings.Fields(text) {
		terms = append(terms, data.SingleWordTerm(data.NewWord(w)))
	}
	return terms
}

func entity(text string, tag data.Tag, m WordMatcher) MultipleTaggedEntity {
	return NewMultipleTaggedEntity(text).With(tag, m)
}

func staticEntities(entities ...MultipleTaggedEntity) SentenceTagger {
	return SentenceTaggerFunc(func(data.Sentence) ([]MultipleTaggedEntity, error) {
		return entities, nil
	})
}

func singleSentenceDoc(terms ...data.Term) *data.Document {
	b := data.NewDocumentBuilder(data.Metadata{Title: "test"})
	b.AddParagraph(data.NewParagraph([]data.Sentence{data.NewSentence(terms)}))
	b.CreateNewSection(data.SectionAbstract)
	return b.CreateDocument()
}
