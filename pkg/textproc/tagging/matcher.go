package tagging

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gedex/inflector"
	"github.com/surgebase/porter2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/lexicon"
)

// WordMatcher decides whether a sentence word (candidate) matches a word of
// an entity (target). Implementations must be safe for concurrent use.
type WordMatcher interface {
	MatchWithWord(target, candidate string) bool
}

// MatcherFunc adapts a function to WordMatcher.
type MatcherFunc func(target, candidate string) bool

// MatchWithWord implements WordMatcher.
func (f MatcherFunc) MatchWithWord(target, candidate string) bool { return f(target, candidate) }

// Matcher names accepted by ParseMatcher.
const (
	MatchExact      = "exact"
	MatchFold       = "fold"
	MatchContains   = "contains"
	MatchNormalized = "normalized"
	MatchStem       = "stem"
	MatchSingular   = "singular"
	MatchLexicon    = "lexicon"
)

var (
	// Exact matches identical strings.
	Exact WordMatcher = MatcherFunc(func(target, candidate string) bool {
		return target == candidate
	})

	// Fold matches strings that are equal under Unicode case folding.
	Fold WordMatcher = MatcherFunc(strings.EqualFold)

	// Stem matches words whose lower-cased Porter2 stems are equal
	// ("running" and "runs").
	Stem WordMatcher = MatcherFunc(func(target, candidate string) bool {
		return porter2.Stem(strings.ToLower(target)) == porter2.Stem(strings.ToLower(candidate))
	})

	// Singular matches words whose singular forms are equal
	// ("cells" and "cell").
	Singular WordMatcher = MatcherFunc(func(target, candidate string) bool {
		return inflector.Singularize(strings.ToLower(target)) == inflector.Singularize(strings.ToLower(candidate))
	})

	// Normalized matches words that are equal after case folding and removal
	// of diacritics ("Müller" and "muller").
	Normalized WordMatcher = MatcherFunc(func(target, candidate string) bool {
		return normalize(target) == normalize(candidate)
	})
)

// Contains matches when the candidate contains the target word. It is used
// for dictionaries configured without exact matching.
func Contains(caseSensitive bool) WordMatcher {
	if caseSensitive {
		return MatcherFunc(func(target, candidate string) bool {
			return strings.Contains(candidate, target)
		})
	}
	return MatcherFunc(func(target, candidate string) bool {
		return strings.Contains(strings.ToLower(candidate), strings.ToLower(target))
	})
}

// LexiconMatcher matches words that share a canonical form in lex.
func LexiconMatcher(lex *lexicon.Lexicon) WordMatcher {
	return MatcherFunc(lex.Equivalent)
}

// MatcherFor returns the matcher of a dictionary configured with the given
// case sensitivity and exact-match options.
func MatcherFor(caseSensitive, exactMatch bool) WordMatcher {
	switch {
	case !exactMatch:
		return Contains(caseSensitive)
	case caseSensitive:
		return Exact
	default:
		return Fold
	}
}

// ParseMatcher resolves a matcher name. An empty name falls back to
// MatcherFor(caseSensitive, exactMatch). The lexicon matcher needs lex.
func ParseMatcher(name string, caseSensitive, exactMatch bool, lex *lexicon.Lexicon) (WordMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return MatcherFor(caseSensitive, exactMatch), nil
	case MatchExact:
		if caseSensitive {
			return Exact, nil
		}
		return Fold, nil
	case MatchFold:
		return Fold, nil
	case MatchContains:
		return Contains(caseSensitive), nil
	case MatchNormalized:
		return Normalized, nil
	case MatchStem:
		return Stem, nil
	case MatchSingular:
		return Singular, nil
	case MatchLexicon:
		if lex == nil {
			return nil, fmt.Errorf("%w: lexicon matcher needs a lexicon", internalerr.ErrInvalidConfig)
		}
		return LexiconMatcher(lex), nil
	}
	return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownMatcher, name)
}

// IsSubstringMatcher reports whether a match with the named matcher implies
// that the sentence text contains the entity text (ignoring case).
func IsSubstringMatcher(name string, exactMatch bool) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return exactMatch
	case MatchExact, MatchFold:
		return true
	}
	return false
}

// normalize builds its transformers per call: casers and transform chains
// are stateful and must not be shared between goroutines.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
