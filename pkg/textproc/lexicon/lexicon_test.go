package lexicon

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLexiconAddSynonymGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("tumor", []string{"tumour", "Tumors", "tumour"})

	if got := lex.Normalize("TUMOUR"); got != "tumor" {
		t.Errorf("Expected 'tumor', got %q", got)
	}
	expected := []string{"tumor", "tumour", "tumors"}
	if got := lex.Variants("tumors"); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLexiconUnknownWord(t *testing.T) {
	lex := New()

	if got := lex.Normalize("Berlin"); got != "berlin" {
		t.Errorf("Unknown words should only be lower-cased, got %q", got)
	}
	if got := lex.Variants("Berlin"); !reflect.DeepEqual(got, []string{"berlin"}) {
		t.Errorf("Unknown word should be its own only variant, got %v", got)
	}
}

func TestLexiconEquivalent(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("nyc", []string{"new-york"})

	if !lex.Equivalent("NYC", "new-york") {
		t.Error("variants of one group should be equivalent")
	}
	if lex.Equivalent("nyc", "boston") {
		t.Error("unrelated words should not be equivalent")
	}
}

func TestLexiconReplaceGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("car", []string{"auto", "automobile"})
	lex.AddSynonymGroup("car", []string{"vehicle"})

	if lex.Normalize("auto") != "auto" {
		t.Error("old variants should be removed when a group is replaced")
	}
	if lex.Normalize("vehicle") != "car" {
		t.Error("new variant should map to canonical")
	}
	if lex.Len() != 1 {
		t.Errorf("Expected 1 group, got %d", lex.Len())
	}
}

func TestLexiconLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "lexicon.yaml")

	content := `synonyms:
  - canonical: tumor
    variants: [tumour, tumors]
  - canonical: ""
    variants: [ignored]
  - canonical: colour
    variants: [color]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("Failed to load lexicon: %v", err)
	}
	if lex.Len() != 2 {
		t.Errorf("Expected 2 groups, got %d", lex.Len())
	}
	if lex.Normalize("color") != "colour" {
		t.Error("Expected color -> colour")
	}
}

func TestLexiconLoadFromYAMLInvalidFile(t *testing.T) {
	if _, err := LoadFromYAML("/nonexistent/lexicon.yaml"); err == nil {
		t.Error("Should error on non-existent file")
	}
	if _, err := Parse([]byte("synonyms: [")); err == nil {
		t.Error("Should error on malformed YAML")
	}
}
