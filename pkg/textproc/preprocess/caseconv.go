package preprocess

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
)

// CaseMode selects the target case of a CaseConverter.
type CaseMode string

const (
	Lower CaseMode = "lower"
	Upper CaseMode = "upper"
)

// ParseCaseMode validates a case mode name.
func ParseCaseMode(name string) (CaseMode, error) {
	switch m := CaseMode(strings.ToLower(strings.TrimSpace(name))); m {
	case Lower, Upper:
		return m, nil
	}
	return "", fmt.Errorf("%w: case mode %q", internalerr.ErrInvalidConfig, name)
}

// CaseConverter converts the words of modifiable terms to upper or lower
// case. Tags are kept.
type CaseConverter struct {
	mode CaseMode
	lang language.Tag
}

// NewCaseConverter creates a converter using the casing rules of lang.
func NewCaseConverter(mode CaseMode, lang language.Tag) (*CaseConverter, error) {
	if mode != Lower && mode != Upper {
		return nil, fmt.Errorf("%w: case mode %q", internalerr.ErrInvalidConfig, mode)
	}
	return &CaseConverter{mode: mode, lang: lang}, nil
}

// Process implements Preprocessor.
func (c *CaseConverter) Process(doc *data.Document) (*data.Document, error) {
	// casers keep state; one per call
	caser := cases.Lower(c.lang)
	if c.mode == Upper {
		caser = cases.Upper(c.lang)
	}

	return mapTerms(doc, func(t data.Term) (data.Term, bool, error) {
		words := t.Words()
		for i := range words {
			words[i].Text = caser.String(words[i].Text)
		}
		out, err := data.NewTerm(words, t.Tags(), false)
		return out, true, err
	})
}
