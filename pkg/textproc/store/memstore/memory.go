package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	ids      *store.IDGenerator
	sources  map[string]store.Source
	entities map[string][]string
	now      func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:      store.NewIDGenerator(),
		sources:  make(map[string]store.Source),
		entities: make(map[string][]string),
		now:      time.Now,
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertSource inserts or updates a source, keyed by name.
func (s *Store) UpsertSource(ctx context.Context, src store.Source) (store.Source, error) {
	if err := src.Validate(); err != nil {
		return store.Source{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sources[src.Name]; ok {
		src.ID = existing.ID
		src.CreatedAt = existing.CreatedAt
	} else {
		src.CreatedAt = s.now().UTC()
		src.ID = s.ids.New(src.CreatedAt)
	}
	s.sources[src.Name] = src
	return src, nil
}

// GetSource returns a source by name.
func (s *Store) GetSource(ctx context.Context, name string) (store.Source, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[name]
	return src, ok, nil
}

// Sources returns all sources in creation order.
func (s *Store) Sources(ctx context.Context) ([]store.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Source, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Compare(out[j].ID) < 0 })
	return out, nil
}

// DeleteSource removes a source and its entities.
func (s *Store) DeleteSource(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[name]; !ok {
		return fmt.Errorf("%w: source %q", internalerr.ErrNotFound, name)
	}
	delete(s.sources, name)
	delete(s.entities, name)
	return nil
}

// AddEntities appends entities that the source does not hold yet and
// returns how many were added.
func (s *Store) AddEntities(ctx context.Context, source string, entities []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[source]; !ok {
		return 0, fmt.Errorf("%w: source %q", internalerr.ErrNotFound, source)
	}

	existing := make(map[string]bool, len(s.entities[source]))
	for _, e := range s.entities[source] {
		existing[e] = true
	}
	added := 0
	for _, e := range store.NormalizeEntities(entities) {
		if existing[e] {
			continue
		}
		s.entities[source] = append(s.entities[source], e)
		added++
	}
	return added, nil
}

// Entities returns the entities of a source in insertion order.
func (s *Store) Entities(ctx context.Context, source string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sources[source]; !ok {
		return nil, fmt.Errorf("%w: source %q", internalerr.ErrNotFound, source)
	}
	out := make([]string, len(s.entities[source]))
	copy(out, s.entities[source])
	return out, nil
}

var _ store.Store = (*Store)(nil)
