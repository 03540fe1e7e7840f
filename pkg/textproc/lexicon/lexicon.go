package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps word variants to a canonical form so that dictionary
// entities match inflected or abbreviated words in a sentence
// ("tumour" and "tumor", "NYC" and "new-york").
//
// A Lexicon is read-only once loaded and may be shared between goroutines.
type Lexicon struct {
	groups    map[string][]string // canonical -> variants, canonical first
	canonical map[string]string   // variant -> canonical
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		groups:    make(map[string][]string),
		canonical: make(map[string]string),
	}
}

type fileFormat struct {
	Synonyms []struct {
		Canonical string   `yaml:"canonical"`
		Variants  []string `yaml:"variants"`
	} `yaml:"synonyms"`
}

// LoadFromYAML reads synonym groups from path.
//
//	synonyms:
//	  - canonical: tumor
//	    variants: [tumour, tumors, tumours]
func LoadFromYAML(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes the YAML lexicon format.
func Parse(raw []byte) (*Lexicon, error) {
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := New()
	for _, g := range f.Synonyms {
		if strings.TrimSpace(g.Canonical) == "" {
			continue
		}
		lex.AddSynonymGroup(g.Canonical, g.Variants)
	}
	return lex, nil
}

// AddSynonymGroup registers variants under canonical. Re-adding a canonical
// form replaces its previous variants.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)

	for _, old := range l.groups[canonical] {
		delete(l.canonical, old)
	}

	group := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			group = append(group, v)
			seen[v] = true
		}
	}

	l.groups[canonical] = group
	for _, v := range group {
		l.canonical[v] = canonical
	}
}

// Normalize returns the canonical form of word, or the lower-cased word when
// it is unknown.
func (l *Lexicon) Normalize(word string) string {
	word = strings.ToLower(word)
	if c, ok := l.canonical[word]; ok {
		return c
	}
	return word
}

// Equivalent reports whether a and b normalize to the same canonical form.
func (l *Lexicon) Equivalent(a, b string) bool {
	return l.Normalize(a) == l.Normalize(b)
}

// Variants returns the synonym group containing word, canonical form first.
func (l *Lexicon) Variants(word string) []string {
	group, ok := l.groups[l.Normalize(word)]
	if !ok {
		return []string{strings.ToLower(word)}
	}
	out := make([]string, len(group))
	copy(out, group)
	return out
}

// Len returns the number of synonym groups.
func (l *Lexicon) Len() int {
	return len(l.groups)
}
