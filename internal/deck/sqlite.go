package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a local SQLite database as a key-value
// store: one row per deck, value is the JSON item array.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decks (
		deck_key   TEXT PRIMARY KEY,
		items      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS review_log (
		id          TEXT PRIMARY KEY,
		deck_key    TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		reviewed_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_review_log_deck ON review_log(deck_key);
	CREATE INDEX IF NOT EXISTS idx_review_log_time ON review_log(reviewed_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context, key Key) ([]Item, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT items FROM decks WHERE deck_key = ?`, key.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", key, err)
	}
	return decodeItems([]byte(value)), nil
}

func (s *SQLiteStore) Save(ctx context.Context, key Key, items []Item) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (deck_key, items, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(deck_key) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`,
		key.String(), string(encodeItems(items)), now)
	if err != nil {
		return fmt.Errorf("save deck %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) LogReview(ctx context.Context, key Key, fingerprint string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_log (id, deck_key, fingerprint, reviewed_at) VALUES (?, ?, ?, ?)`,
		s.newID(), key.String(), fingerprint, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("log review: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
