package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/lexicon"
)

func TestMatchers(t *testing.T) {
	tests := []struct {
		name      string
		matcher   WordMatcher
		target    string
		candidate string
		want      bool
	}{
		{"exact equal", Exact, "York", "York", true},
		{"exact case", Exact, "York", "york", false},
		{"fold case", Fold, "York", "YORK", true},
		{"fold different", Fold, "York", "Yolk", false},
		{"contains sensitive", Contains(true), "York", "NewYorker", true},
		{"contains sensitive case", Contains(true), "york", "NewYorker", false},
		{"contains insensitive", Contains(false), "york", "NewYorker", true},
		{"normalized diacritics", Normalized, "Müller", "muller", true},
		{"normalized case", Normalized, "ÉCOLE", "école", true},
		{"normalized different", Normalized, "Müller", "Miller", false},
		{"stem", Stem, "running", "runs", true},
		{"stem case", Stem, "Connection", "connected", true},
		{"stem different", Stem, "running", "walked", false},
		{"singular", Singular, "cells", "cell", true},
		{"singular different", Singular, "cells", "genes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.MatchWithWord(tt.target, tt.candidate))
		})
	}
}

func TestLexiconMatcher(t *testing.T) {
	lex := lexicon.New()
	lex.AddSynonymGroup("nyc", []string{"manhattan", "gotham"})

	m := LexiconMatcher(lex)
	assert.True(t, m.MatchWithWord("NYC", "Gotham"))
	assert.True(t, m.MatchWithWord("paris", "Paris"))
	assert.False(t, m.MatchWithWord("nyc", "paris"))
}

func TestMatcherFor(t *testing.T) {
	assert.True(t, MatcherFor(true, true).MatchWithWord("York", "York"))
	assert.False(t, MatcherFor(true, true).MatchWithWord("York", "york"))
	assert.True(t, MatcherFor(false, true).MatchWithWord("York", "york"))
	assert.False(t, MatcherFor(false, true).MatchWithWord("York", "Yorker"))
	assert.True(t, MatcherFor(false, false).MatchWithWord("York", "yorker"))
	assert.False(t, MatcherFor(true, false).MatchWithWord("York", "yorker"))
}

func TestParseMatcher(t *testing.T) {
	lex := lexicon.New()
	lex.AddSynonymGroup("nyc", []string{"gotham"})

	for _, name := range []string{"", "exact", "fold", "contains", "normalized", "stem", "singular", "lexicon", " Stem "} {
		m, err := ParseMatcher(name, false, true, lex)
		require.NoError(t, err, name)
		assert.NotNil(t, m, name)
	}

	m, err := ParseMatcher("exact", true, true, nil)
	require.NoError(t, err)
	assert.False(t, m.MatchWithWord("York", "york"))

	m, err = ParseMatcher("exact", false, true, nil)
	require.NoError(t, err)
	assert.True(t, m.MatchWithWord("York", "york"))

	_, err = ParseMatcher("lexicon", false, true, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = ParseMatcher("soundex", false, true, nil)
	assert.ErrorIs(t, err, internalerr.ErrUnknownMatcher)
}

func TestIsSubstringMatcher(t *testing.T) {
	assert.True(t, IsSubstringMatcher("", true))
	assert.False(t, IsSubstringMatcher("", false))
	assert.True(t, IsSubstringMatcher("exact", false))
	assert.True(t, IsSubstringMatcher("Fold", true))
	assert.False(t, IsSubstringMatcher("contains", true))
	assert.False(t, IsSubstringMatcher("stem", true))
	assert.False(t, IsSubstringMatcher("lexicon", true))
}
