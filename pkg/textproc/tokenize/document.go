package tokenize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// BuildDocument turns plain text into a document: an optional title section
// and one Abstract section for the body. Paragraphs are separated by blank
// lines, a sentence ends after a ".", "!" or "?" token, and every word becomes
// its own untagged term.
func BuildDocument(tok Tokenizer, meta data.Metadata, title, body string) (*data.Document, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", internalerr.ErrInvalidInput)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(title)
	}

	b := data.NewDocumentBuilder(meta)
	if strings.TrimSpace(title) != "" {
		b.AddParagraph(data.NewParagraph(sentences(tok, title)))
		b.CreateNewSection(data.SectionTitle)
	}
	for _, para := range splitParagraphs(body) {
		b.AddParagraph(data.NewParagraph(sentences(tok, para)))
	}
	b.CreateNewSection(data.SectionAbstract)
	return b.CreateDocument(), nil
}

func splitParagraphs(text string) []string {
	var paras []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paras = append(paras, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paras = append(paras, strings.Join(current, "\n"))
	}
	return paras
}

func sentences(tok Tokenizer, text string) []data.Sentence {
	var out []data.Sentence
	var terms []data.Term

	pos := 0
	for _, token := range tok.Tokenize(text) {
		w := data.NewWord(token)
		if idx := strings.Index(text[pos:], token); idx >= 0 {
			pos += idx + len(token)
			w.Suffix = leadingSpace(text[pos:])
		}
		terms = append(terms, data.SingleWordTerm(w))
		if isSentenceEnd(token) {
			out = append(out, data.NewSentence(terms))
			terms = nil
		}
	}
	if len(terms) > 0 {
		out = append(out, data.NewSentence(terms))
	}
	return out
}

func leadingSpace(s string) string {
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return s[:end]
}

func isSentenceEnd(token string) bool {
	return token == "." || token == "!" || token == "?"
}
