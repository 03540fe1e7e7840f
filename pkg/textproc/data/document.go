package data

import (
	"strings"
	"time"
)

// Sentence is an ordered list of terms that partition its words.
type Sentence struct {
	terms []Term
}

// NewSentence copies terms into a new sentence. An empty sentence is valid.
func NewSentence(terms []Term) Sentence {
	t := make([]Term, len(terms))
	copy(t, terms)
	return Sentence{terms: t}
}

// Terms returns a copy of the sentence's terms.
func (s Sentence) Terms() []Term {
	out := make([]Term, len(s.terms))
	copy(out, s.terms)
	return out
}

// Len returns the number of terms.
func (s Sentence) Len() int { return len(s.terms) }

// WordCount returns the number of words over all terms.
func (s Sentence) WordCount() int {
	n := 0
	for _, t := range s.terms {
		n += t.WordCount()
	}
	return n
}

// Text joins the term texts with WordSeparator.
func (s Sentence) Text() string {
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.Text()
	}
	return strings.Join(parts, WordSeparator)
}

// SourceText rebuilds the sentence as it appeared in the source, using each
// word's trailing whitespace.
func (s Sentence) SourceText() string {
	var sb strings.Builder
	for _, t := range s.terms {
		for _, w := range t.words {
			sb.WriteString(w.Text)
			sb.WriteString(w.Suffix)
		}
	}
	return sb.String()
}

// Equal compares both sentences term by term.
func (s Sentence) Equal(o Sentence) bool {
	if len(s.terms) != len(o.terms) {
		return false
	}
	for i := range s.terms {
		if !s.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (s Sentence) String() string {
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, WordSeparator)
}

// Paragraph groups sentences.
type Paragraph struct {
	sentences []Sentence
}

// NewParagraph copies sentences into a new paragraph.
func NewParagraph(sentences []Sentence) Paragraph {
	s := make([]Sentence, len(sentences))
	copy(s, sentences)
	return Paragraph{sentences: s}
}

// Sentences returns a copy of the paragraph's sentences.
func (p Paragraph) Sentences() []Sentence {
	out := make([]Sentence, len(p.sentences))
	copy(out, p.sentences)
	return out
}

// SectionAnnotation names the role of a section.
type SectionAnnotation string

const (
	SectionTitle    SectionAnnotation = "Title"
	SectionAbstract SectionAnnotation = "Abstract"
	SectionChapter  SectionAnnotation = "Chapter"
	SectionUnknown  SectionAnnotation = "Unknown"
)

// Section groups paragraphs under an annotation.
type Section struct {
	paragraphs []Paragraph
	annotation SectionAnnotation
}

// NewSection copies paragraphs into a new section.
func NewSection(paragraphs []Paragraph, annotation SectionAnnotation) Section {
	p := make([]Paragraph, len(paragraphs))
	copy(p, paragraphs)
	if annotation == "" {
		annotation = SectionUnknown
	}
	return Section{paragraphs: p, annotation: annotation}
}

// Paragraphs returns a copy of the section's paragraphs.
func (s Section) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(s.paragraphs))
	copy(out, s.paragraphs)
	return out
}

// Annotation returns the section's role.
func (s Section) Annotation() SectionAnnotation { return s.annotation }

// Metadata describes where a document comes from.
type Metadata struct {
	Title       string
	Authors     []string
	Source      string
	Categories  []string
	PublishedAt time.Time
	FilePath    string
}

func (m Metadata) clone() Metadata {
	c := m
	c.Authors = append([]string(nil), m.Authors...)
	c.Categories = append([]string(nil), m.Categories...)
	return c
}

// Document is an ordered list of sections plus metadata.
type Document struct {
	meta     Metadata
	sections []Section
}

// Metadata returns a copy of the document's metadata.
func (d *Document) Metadata() Metadata { return d.meta.clone() }

// Sections returns a copy of the document's sections.
func (d *Document) Sections() []Section {
	out := make([]Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Sentences flattens all sentences in document order.
func (d *Document) Sentences() []Sentence {
	var out []Sentence
	for _, sec := range d.sections {
		for _, p := range sec.paragraphs {
			out = append(out, p.sentences...)
		}
	}
	return out
}

// WordCount returns the number of words in the document.
func (d *Document) WordCount() int {
	n := 0
	for _, s := range d.Sentences() {
		n += s.WordCount()
	}
	return n
}

// Text joins sentence texts; paragraphs are separated by a blank line.
func (d *Document) Text() string {
	var paras []string
	for _, sec := range d.sections {
		for _, p := range sec.paragraphs {
			sents := make([]string, len(p.sentences))
			for i, s := range p.sentences {
				sents[i] = s.Text()
			}
			paras = append(paras, strings.Join(sents, WordSeparator))
		}
	}
	return strings.Join(paras, "\n\n")
}

// DocumentBuilder assembles a document section by section.
type DocumentBuilder struct {
	meta       Metadata
	sections   []Section
	paragraphs []Paragraph
}

// NewDocumentBuilder starts an empty document with the given metadata.
func NewDocumentBuilder(meta Metadata) *DocumentBuilder {
	return &DocumentBuilder{meta: meta.clone()}
}

// NewDocumentBuilderFrom starts an empty document carrying the metadata of d.
func NewDocumentBuilderFrom(d *Document) *DocumentBuilder {
	return NewDocumentBuilder(d.meta)
}

// AddParagraph appends a paragraph to the currently open section.
func (b *DocumentBuilder) AddParagraph(p Paragraph) {
	b.paragraphs = append(b.paragraphs, p)
}

// CreateNewSection closes the open section with the given annotation.
func (b *DocumentBuilder) CreateNewSection(annotation SectionAnnotation) {
	b.sections = append(b.sections, NewSection(b.paragraphs, annotation))
	b.paragraphs = nil
}

// CreateDocument returns the document. Paragraphs added after the last
// CreateNewSection go into a trailing Unknown section.
func (b *DocumentBuilder) CreateDocument() *Document {
	if len(b.paragraphs) > 0 {
		b.CreateNewSection(SectionUnknown)
	}
	sections := make([]Section, len(b.sections))
	copy(sections, b.sections)
	return &Document{meta: b.meta.clone(), sections: sections}
}
