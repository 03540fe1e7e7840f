package tokenize

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// Tokenizer splits text into word strings.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(text string) []string

// Tokenize implements Tokenizer.
func (f Func) Tokenize(text string) []string { return f(text) }

const (
	// DefaultName is the registry name of the word tokenizer.
	DefaultName = "default"
	// WhitespaceName is the registry name of the whitespace tokenizer.
	WhitespaceName = "whitespace"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Tokenizer{
		DefaultName:    func() Tokenizer { return NewWordTokenizer() },
		WhitespaceName: func() Tokenizer { return Func(strings.Fields) },
	}
)

// Register makes a tokenizer available under name. Registering an existing
// name replaces it.
func Register(name string, factory func() Tokenizer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get returns a new instance of the tokenizer registered under name.
// An empty name selects the default tokenizer.
func Get(name string) (Tokenizer, error) {
	if name == "" {
		name = DefaultName
	}
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownTokenizer, name)
	}
	return factory(), nil
}

// Names lists the registered tokenizer names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WordTokenizer splits text into words and punctuation.
// Letters and digits form words; hyphens, apostrophes and dots stay inside a word when
// they sit between two letters or digits ("state-of-the-art", "don't",
// "3.14"). Every other non-space rune becomes its own token. Case is kept.
type WordTokenizer struct{}

// NewWordTokenizer creates the default word tokenizer.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Tokenize implements Tokenizer.
func (t *WordTokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	runes := []rune(text)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			current.WriteRune(r)
		case isJoiner(r) && current.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}

	// Don't forget the last token
	flush()

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '.'
}
