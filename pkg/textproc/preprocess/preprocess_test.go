package preprocess

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

func term(t *testing.T, text string, unmodifiable bool, tags ...data.Tag) data.Term {
	t.Helper()
	var words []data.Word
	for _, w := range strings.Fields(text) {
		words = append(words, data.Word{Text: w, Suffix: " "})
	}
	out, err := data.NewTerm(words, tags, unmodifiable)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func doc(sentences ...data.Sentence) *data.Document {
	b := data.NewDocumentBuilder(data.Metadata{Title: "t"})
	b.AddParagraph(data.NewParagraph(sentences))
	b.CreateNewSection(data.SectionAbstract)
	return b.CreateDocument()
}

func texts(s data.Sentence) []string {
	var out []string
	for _, t := range s.Terms() {
		out = append(out, t.Text())
	}
	return out
}

func TestLoadStoplist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	content := `terms:
  - the
  - a
  - And
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}
	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}

	f := NewStopFilter(sl.Terms)
	if !reflect.DeepEqual(f.All(), []string{"a", "and", "the"}) {
		t.Errorf("Unexpected stopwords %v", f.All())
	}
}

func TestStopFilterBasic(t *testing.T) {
	f := NewStopFilter([]string{"the", "a"})

	if !f.IsStop("The") {
		t.Error("'The' should be a stopword")
	}
	if f.IsStop("city") {
		t.Error("'city' should not be a stopword")
	}

	f.Add("city")
	if !f.IsStop("city") {
		t.Error("'city' should be a stopword after adding")
	}
	f.Remove("CITY")
	if f.IsStop("city") {
		t.Error("'city' should not be a stopword after removing")
	}
}

func TestStopFilterKeepsUnmodifiableTerms(t *testing.T) {
	tag := data.Tag{Type: "NE", Value: "ORGANIZATION"}
	in := doc(
		data.NewSentence([]data.Term{term(t, "The", false), term(t, "The Who", true, tag), term(t, "played", false), term(t, "a", true)}),
		data.NewSentence([]data.Term{term(t, "the", false), term(t, "a", false)}),
		data.NewSentence(nil),
	)

	out, err := NewStopFilter([]string{"the", "a"}).Process(in)
	if err != nil {
		t.Fatal(err)
	}

	sentences := out.Sentences()
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(sentences))
	}
	if got := texts(sentences[0]); !reflect.DeepEqual(got, []string{"The Who", "played", "a"}) {
		t.Errorf("Unexpected terms %v", got)
	}
	if !sentences[0].Terms()[0].HasTag(tag) {
		t.Error("Unmodifiable term lost its tag")
	}
	if sentences[1].Len() != 0 || sentences[2].Len() != 0 {
		t.Error("Emptied sentences should be kept as empty sentences")
	}
	if out.Sections()[0].Annotation() != data.SectionAbstract {
		t.Error("Section annotation should be kept")
	}
}

func TestCaseConverter(t *testing.T) {
	tag := data.Tag{Type: "POS", Value: "NN"}
	in := doc(data.NewSentence([]data.Term{term(t, "Big Apple", true), term(t, "Straße", false, tag), term(t, "İstanbul", false)}))

	lower, err := NewCaseConverter(Lower, language.Und)
	if err != nil {
		t.Fatal(err)
	}
	out, err := lower.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	terms := out.Sentences()[0].Terms()
	if terms[0].Text() != "Big Apple" {
		t.Errorf("Unmodifiable term changed to %q", terms[0].Text())
	}
	if terms[1].Text() != "straße" || !terms[1].HasTag(tag) {
		t.Errorf("Unexpected term %s", terms[1])
	}
	if terms[1].Word(0).Suffix != " " {
		t.Error("Word suffix should be kept")
	}

	upper, err := NewCaseConverter(Upper, language.German)
	if err != nil {
		t.Fatal(err)
	}
	out, err = upper.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Sentences()[0].Terms()[1].Text(); got != "STRASSE" {
		t.Errorf("Expected STRASSE, got %q", got)
	}
}

func TestParseCaseMode(t *testing.T) {
	if m, err := ParseCaseMode(" Upper "); err != nil || m != Upper {
		t.Errorf("Expected upper, got %q (%v)", m, err)
	}
	if _, err := ParseCaseMode("title"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := NewCaseConverter("title", language.Und); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestChain(t *testing.T) {
	lower, _ := NewCaseConverter(Lower, language.Und)
	chain := Chain{lower, NewStopFilter([]string{"the"})}

	out, err := chain.Process(doc(data.NewSentence([]data.Term{term(t, "THE", false), term(t, "City", false)})))
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(out.Sentences()[0]); !reflect.DeepEqual(got, []string{"city"}) {
		t.Errorf("Unexpected terms %v", got)
	}

	if _, err := chain.Process(nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
