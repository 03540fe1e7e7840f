package data

import (
	"errors"
	"testing"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

func words(texts ...string) []Word {
	out := make([]Word, len(texts))
	for i, t := range texts {
		out[i] = NewWord(t)
	}
	return out
}

func TestNewTermRejectsEmptyWords(t *testing.T) {
	_, err := NewTerm(nil, nil, false)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewTermDropsDuplicateTags(t *testing.T) {
	nn := Tag{Type: "POS", Value: "NN"}
	loc := Tag{Type: "NE", Value: "LOCATION"}
	term, err := NewTerm(words("Berlin"), []Tag{nn, loc, nn}, false)
	if err != nil {
		t.Fatal(err)
	}
	tags := term.Tags()
	if len(tags) != 2 || tags[0] != nn || tags[1] != loc {
		t.Errorf("unexpected tags %v", tags)
	}
}

func TestTermIsImmutable(t *testing.T) {
	in := words("New", "York")
	term, err := NewTerm(in, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = NewWord("Old")
	got := term.Words()
	got[1] = NewWord("Jersey")

	if term.Text() != "New York" {
		t.Errorf("term changed through caller slices: %q", term.Text())
	}
}

func TestTermEqual(t *testing.T) {
	tag := Tag{Type: "NE", Value: "PERSON"}
	a, _ := NewTerm(words("Ada", "Lovelace"), []Tag{tag}, true)
	b, _ := NewTerm(words("Ada", "Lovelace"), []Tag{tag}, true)
	c, _ := NewTerm(words("Ada", "Lovelace"), []Tag{tag}, false)
	d, _ := NewTerm(words("Ada", "Lovelace"), nil, true)

	if !a.Equal(b) {
		t.Error("identical terms should be equal")
	}
	if a.Equal(c) {
		t.Error("unmodifiable flag should take part in equality")
	}
	if a.Equal(d) {
		t.Error("tags should take part in equality")
	}
	if !a.SameWords(d) {
		t.Error("SameWords should ignore tags")
	}
}

func TestTermString(t *testing.T) {
	term, _ := NewTerm(words("New", "York"), []Tag{{Type: "NE", Value: "LOCATION"}, {Type: "POS", Value: "NNP"}}, false)
	want := "New York[LOCATION(NE) NNP(POS)]"
	if term.String() != want {
		t.Errorf("expected %q, got %q", want, term.String())
	}
}

func TestNewTagValidation(t *testing.T) {
	if _, err := NewTag("", "NN"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty type should fail, got %v", err)
	}
	if _, err := NewTag("POS", " "); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("blank value should fail, got %v", err)
	}
	if tag, err := NewTag("POS", "NN"); err != nil || tag.Value != "NN" {
		t.Errorf("valid tag rejected: %v", err)
	}
}

func TestDocumentBuilderKeepsStructure(t *testing.T) {
	term, _ := NewTerm(words("Hello"), nil, false)
	s := NewSentence([]Term{term})

	b := NewDocumentBuilder(Metadata{Title: "greeting", Authors: []string{"ada"}})
	b.AddParagraph(NewParagraph([]Sentence{s}))
	b.CreateNewSection(SectionTitle)
	b.AddParagraph(NewParagraph([]Sentence{s, s}))
	b.CreateNewSection(SectionAbstract)
	doc := b.CreateDocument()

	secs := doc.Sections()
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	if secs[0].Annotation() != SectionTitle || secs[1].Annotation() != SectionAbstract {
		t.Errorf("annotations lost: %v %v", secs[0].Annotation(), secs[1].Annotation())
	}
	if doc.WordCount() != 3 {
		t.Errorf("expected 3 words, got %d", doc.WordCount())
	}

	copyDoc := NewDocumentBuilderFrom(doc).CreateDocument()
	if copyDoc.Metadata().Title != "greeting" || len(copyDoc.Metadata().Authors) != 1 {
		t.Errorf("metadata not carried over: %+v", copyDoc.Metadata())
	}
}

func TestSentenceSourceText(t *testing.T) {
	w := []Word{{Text: "Hi", Suffix: " "}, {Text: "there"}, {Text: "!"}}
	t1, _ := NewTerm(w[:2], nil, false)
	t2, _ := NewTerm(w[2:], nil, false)
	s := NewSentence([]Term{t1, t2})
	if s.SourceText() != "Hi there!" {
		t.Errorf("unexpected source text %q", s.SourceText())
	}
	if s.Text() != "Hi there !" {
		t.Errorf("unexpected text %q", s.Text())
	}
}
