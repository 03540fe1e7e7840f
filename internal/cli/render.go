package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/cognicore/textproc/pkg/textproc/data"
)

var (
	entityColor = color.New(color.FgGreen, color.Bold)
	tagColor    = color.New(color.FgCyan)
	headerColor = color.New(color.FgYellow)
)

// renderTerm writes a term followed by its trailing whitespace. Tagged
// terms are highlighted and followed by their tags.
func renderTerm(sb *strings.Builder, t data.Term) {
	if len(t.Tags()) == 0 {
		sb.WriteString(t.Text())
	} else {
		tags := make([]string, len(t.Tags()))
		for i, tag := range t.Tags() {
			tags[i] = tag.String()
		}
		sb.WriteString(entityColor.Sprint(t.Text()))
		sb.WriteString(tagColor.Sprint("[" + strings.Join(tags, " ") + "]"))
	}
	if n := t.WordCount(); n > 0 {
		sb.WriteString(t.Word(n - 1).Suffix)
	}
}

func renderSentence(s data.Sentence) string {
	var sb strings.Builder
	for _, t := range s.Terms() {
		renderTerm(&sb, t)
	}
	return strings.TrimRight(sb.String(), " \t\r\n")
}

// renderDocument prints every sentence of doc on its own line, with a
// header naming the document.
func renderDocument(w io.Writer, doc *data.Document) error {
	meta := doc.Metadata()
	name := meta.FilePath
	if name == "" {
		name = meta.Source
	}
	if _, err := headerColor.Fprintf(w, "== %s\n", name); err != nil {
		return err
	}
	for _, s := range doc.Sentences() {
		if s.Len() == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, renderSentence(s)); err != nil {
			return err
		}
	}
	return nil
}

// countTagged returns the number of tagged terms in doc.
func countTagged(doc *data.Document) int {
	n := 0
	for _, s := range doc.Sentences() {
		for _, t := range s.Terms() {
			if len(t.Tags()) > 0 {
				n++
			}
		}
	}
	return n
}
