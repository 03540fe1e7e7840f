// Package dict recognizes entities from dictionaries. Each dictionary
// contributes its own tag and matching options; an entity listed in several
// dictionaries is recognized once and gets every dictionary's tag.
package dict

import (
	"fmt"
	"strings"

	"github.com/cognicore/textproc/pkg/textproc/data"
	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/lexicon"
	"github.com/cognicore/textproc/pkg/textproc/tagging"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// Configuration describes one dictionary.
type Configuration struct {
	Name          string
	TagType       string
	TagValue      string
	CaseSensitive bool
	ExactMatch    bool
	Matcher       string // optional matcher name, see tagging.ParseMatcher
	Entities      []string
}

// Tag returns the tag the dictionary assigns.
func (c Configuration) Tag() (data.Tag, error) {
	return data.NewTag(c.TagType, c.TagValue)
}

// Options tune dictionary tagging.
type Options struct {
	// Lexicon backs the "lexicon" matcher.
	Lexicon *lexicon.Lexicon
}

type entry struct {
	entity tagging.MultipleTaggedEntity
	needle string
	// always is set when some source may match words the sentence text
	// does not literally contain.
	always bool
}

// Tagger is a tagging.SentenceTagger over a fixed set of dictionaries. It is
// immutable and safe for concurrent use.
type Tagger struct {
	entries []entry
}

// New builds a tagger. Entities are offered in the order they are first
// seen across configs.
func New(tok tokenize.Tokenizer, configs []Configuration, opts Options) (*Tagger, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", internalerr.ErrInvalidInput)
	}

	index := make(map[string]int)
	names := make(map[string]bool)
	var entries []entry

	for _, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: dictionary name is required", internalerr.ErrInvalidConfig)
		}
		if names[name] {
			return nil, fmt.Errorf("%w: duplicate dictionary %q", internalerr.ErrInvalidConfig, name)
		}
		names[name] = true

		tag, err := cfg.Tag()
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary %q: %v", internalerr.ErrInvalidConfig, name, err)
		}
		matcher, err := tagging.ParseMatcher(cfg.Matcher, cfg.CaseSensitive, cfg.ExactMatch, opts.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("dictionary %q: %w", name, err)
		}
		substring := tagging.IsSubstringMatcher(cfg.Matcher, cfg.ExactMatch)

		for _, raw := range cfg.Entities {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			i, ok := index[text]
			if !ok {
				i = len(entries)
				index[text] = i
				entries = append(entries, entry{
					entity: tagging.NewMultipleTaggedEntity(text),
					needle: strings.ToLower(strings.Join(tok.Tokenize(text), data.WordSeparator)),
				})
			}
			entries[i].entity = entries[i].entity.With(tag, matcher)
			entries[i].always = entries[i].always || !substring
		}
	}

	return &Tagger{entries: entries}, nil
}

// TagEntities implements tagging.SentenceTagger. It returns the entities
// that can occur in s; the tagger locates them.
func (t *Tagger) TagEntities(s data.Sentence) ([]tagging.MultipleTaggedEntity, error) {
	if s.Len() == 0 || len(t.entries) == 0 {
		return nil, nil
	}

	text := strings.ToLower(s.Text())
	var out []tagging.MultipleTaggedEntity
	for _, e := range t.entries {
		if e.needle == "" {
			continue
		}
		if e.always || strings.Contains(text, e.needle) {
			out = append(out, e.entity)
		}
	}
	return out, nil
}

// Len returns the number of distinct entities.
func (t *Tagger) Len() int { return len(t.entries) }

// Entities lists the distinct entities in the order they are offered.
func (t *Tagger) Entities() []tagging.MultipleTaggedEntity {
	out := make([]tagging.MultipleTaggedEntity, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.entity
	}
	return out
}
