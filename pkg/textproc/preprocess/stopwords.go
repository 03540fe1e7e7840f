package preprocess

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textproc/pkg/textproc/data"
)

// Stoplist is the YAML stopword file format.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(raw, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}
	return &sl, nil
}

// StopFilter removes modifiable terms whose text is a stopword. Matching
// ignores case. A StopFilter must not be changed while documents are being
// processed.
type StopFilter struct {
	stops map[string]struct{}
}

// NewStopFilter creates a filter for the given stopwords.
func NewStopFilter(stops []string) *StopFilter {
	f := &StopFilter{stops: make(map[string]struct{}, len(stops))}
	for _, s := range stops {
		f.Add(s)
	}
	return f
}

// IsStop checks if a term text is a stopword
func (f *StopFilter) IsStop(text string) bool {
	_, ok := f.stops[strings.ToLower(text)]
	return ok
}

// Add adds a stopword
func (f *StopFilter) Add(text string) {
	if text = strings.ToLower(strings.TrimSpace(text)); text != "" {
		f.stops[text] = struct{}{}
	}
}

// Remove removes a stopword
func (f *StopFilter) Remove(text string) {
	delete(f.stops, strings.ToLower(text))
}

// All returns all stopwords, sorted.
func (f *StopFilter) All() []string {
	out := make([]string, 0, len(f.stops))
	for s := range f.stops {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Process implements Preprocessor.
func (f *StopFilter) Process(doc *data.Document) (*data.Document, error) {
	return mapTerms(doc, func(t data.Term) (data.Term, bool, error) {
		return t, !f.IsStop(t.Text()), nil
	})
}
