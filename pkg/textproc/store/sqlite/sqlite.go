package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	ids *store.IDGenerator
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	// PRAGMAs below are per connection; a single connection also serializes
	// writers instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, ids: store.NewIDGenerator()}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sources (
	id TEXT PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	tag_type TEXT NOT NULL,
	tag_value TEXT NOT NULL,
	case_sensitive INTEGER NOT NULL DEFAULT 0,
	exact_match INTEGER NOT NULL DEFAULT 1,
	matcher TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS source_entities (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id TEXT NOT NULL,
	entity TEXT NOT NULL,
	UNIQUE(source_id, entity),
	FOREIGN KEY(source_id) REFERENCES sources(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_source_entities_source ON source_entities(source_id, seq);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertSource inserts or updates a source, keyed by name
func (s *sqliteStore) UpsertSource(ctx context.Context, src store.Source) (store.Source, error) {
	if err := src.Validate(); err != nil {
		return store.Source{}, err
	}

	now := time.Now().UTC()
	id := s.ids.New(now)

	const stmt = `
INSERT INTO sources (id, name, tag_type, tag_value, case_sensitive, exact_match, matcher, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	tag_type=excluded.tag_type,
	tag_value=excluded.tag_value,
	case_sensitive=excluded.case_sensitive,
	exact_match=excluded.exact_match,
	matcher=excluded.matcher
RETURNING id, created_at;
`
	var storedID, createdAt string
	err := s.db.QueryRowContext(
		ctx,
		stmt,
		id.String(),
		src.Name,
		src.TagType,
		src.TagValue,
		src.CaseSensitive,
		src.ExactMatch,
		src.Matcher,
		now.Format(time.RFC3339Nano),
	).Scan(&storedID, &createdAt)
	if err != nil {
		return store.Source{}, err
	}

	if src.ID, err = ulid.ParseStrict(storedID); err != nil {
		return store.Source{}, fmt.Errorf("stored source id %q: %w", storedID, err)
	}
	src.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return src, nil
}

const sourceColumns = `id, name, tag_type, tag_value, case_sensitive, exact_match, matcher, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSource(row rowScanner) (store.Source, error) {
	var (
		src       store.Source
		id        string
		createdAt string
	)
	if err := row.Scan(&id, &src.Name, &src.TagType, &src.TagValue, &src.CaseSensitive, &src.ExactMatch, &src.Matcher, &createdAt); err != nil {
		return store.Source{}, err
	}
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return store.Source{}, fmt.Errorf("stored source id %q: %w", id, err)
	}
	src.ID = parsed
	src.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return src, nil
}

// GetSource retrieves a source by name
func (s *sqliteStore) GetSource(ctx context.Context, name string) (store.Source, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE name = ?`, name)
	src, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Source{}, false, nil
	}
	if err != nil {
		return store.Source{}, false, err
	}
	return src, true, nil
}

// Sources lists all sources ordered by ID, which is creation order
func (s *sqliteStore) Sources(ctx context.Context) ([]store.Source, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sourceColumns+` FROM sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

// DeleteSource removes a source; its entities cascade
func (s *sqliteStore) DeleteSource(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: source %q", internalerr.ErrNotFound, name)
	}
	return nil
}

func (s *sqliteStore) sourceID(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}, name string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `SELECT id FROM sources WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: source %q", internalerr.ErrNotFound, name)
	}
	return id, err
}

// AddEntities appends new entities to a source and reports how many were added
func (s *sqliteStore) AddEntities(ctx context.Context, source string, entities []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id, err := s.sourceID(ctx, tx, source)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO source_entities (source_id, entity) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, e := range store.NormalizeEntities(entities) {
		res, err := stmt.ExecContext(ctx, id, e)
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Entities returns the entities of a source in insertion order
func (s *sqliteStore) Entities(ctx context.Context, source string) ([]string, error) {
	id, err := s.sourceID(ctx, s.db, source)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT entity FROM source_entities WHERE source_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
