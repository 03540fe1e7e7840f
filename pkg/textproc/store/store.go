// Package store persists dictionaries (tag sources and their entities).
package store

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/tagging"
	"github.com/cognicore/textproc/pkg/textproc/tagging/dict"
)

// Store is the interface for persisting dictionaries
type Store interface {
	Close() error

	// Sources
	UpsertSource(ctx context.Context, src Source) (Source, error)
	GetSource(ctx context.Context, name string) (Source, bool, error)
	Sources(ctx context.Context) ([]Source, error)
	DeleteSource(ctx context.Context, name string) error

	// Entities
	AddEntities(ctx context.Context, source string, entities []string) (int, error)
	Entities(ctx context.Context, source string) ([]string, error)
}

// Source is a stored dictionary: one tag plus the options used to match
// its entities. Sources are keyed by Name; ID is assigned on first insert
// and orders sources by creation.
type Source struct {
	ID            ulid.ULID
	Name          string
	TagType       string
	TagValue      string
	CaseSensitive bool
	ExactMatch    bool
	Matcher       string
	CreatedAt     time.Time
}

// Validate checks the fields every store requires.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: source name is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(s.TagType) == "" || strings.TrimSpace(s.TagValue) == "" {
		return fmt.Errorf("%w: source %q needs a tag type and value", internalerr.ErrInvalidInput, s.Name)
	}
	// the lexicon is only known when tagging
	if _, err := tagging.ParseMatcher(s.Matcher, s.CaseSensitive, s.ExactMatch, nil); errors.Is(err, internalerr.ErrUnknownMatcher) {
		return fmt.Errorf("source %q: %w", s.Name, err)
	}
	return nil
}

// IDGenerator hands out monotonically increasing ULIDs. It is safe for
// concurrent use.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator seeded from crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns the next ID.
func (g *IDGenerator) New(now time.Time) ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), g.entropy)
}

// NormalizeEntities trims entities and drops blanks and duplicates, keeping
// the first occurrence.
func NormalizeEntities(entities []string) []string {
	seen := make(map[string]bool, len(entities))
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Configurations loads every stored source with its entities as dictionary
// configurations, in source creation order.
func Configurations(ctx context.Context, s Store) ([]dict.Configuration, error) {
	sources, err := s.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	configs := make([]dict.Configuration, 0, len(sources))
	for _, src := range sources {
		entities, err := s.Entities(ctx, src.Name)
		if err != nil {
			return nil, fmt.Errorf("load entities of %q: %w", src.Name, err)
		}
		configs = append(configs, dict.Configuration{
			Name:          src.Name,
			TagType:       src.TagType,
			TagValue:      src.TagValue,
			CaseSensitive: src.CaseSensitive,
			ExactMatch:    src.ExactMatch,
			Matcher:       src.Matcher,
			Entities:      entities,
		})
	}
	return configs, nil
}
