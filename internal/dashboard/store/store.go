package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultMaxEntries bounds the cache: without a cap the store would grow by
// one entry per location ever viewed.
const DefaultMaxEntries = 50

// Store is a small key/value cache of JSON documents backed by SQLite, used
// by the dashboard the way the web app used browser local storage. Entries
// beyond the cap are evicted least-recently-used first; reads count as use.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open creates or opens the store at path. maxEntries <= 0 applies the
// default cap.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		seq INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init store schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key. A hit refreshes the entry's recency.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	if _, err := s.db.Exec(
		`UPDATE entries SET seq = (SELECT IFNULL(MAX(seq), 0) + 1 FROM entries) WHERE key = ?`, key,
	); err != nil {
		// Recency bookkeeping is best effort; the read itself succeeded.
		log.Printf("ERROR [store] failed to touch %q: %v", key, err)
	}

	return value, true, nil
}

// Set upserts key and evicts the least-recently-used entries beyond the cap.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO entries (key, value, seq)
		 VALUES (?, ?, (SELECT IFNULL(MAX(seq), 0) + 1 FROM entries))
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			seq = (SELECT IFNULL(MAX(seq), 0) + 1 FROM entries)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`DELETE FROM entries WHERE key NOT IN
			(SELECT key FROM entries ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("failed to evict entries: %w", err)
	}

	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// GetJSON decodes the stored value for key into v.
func (s *Store) GetJSON(key string, v interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func (s *Store) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}
