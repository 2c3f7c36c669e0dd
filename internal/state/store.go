// Package state persists per-slug content hashes between builds so that
// incremental runs can skip re-rendering unchanged posts.
package state

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed build cache.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens a build cache database.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		slug TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Lookup returns the recorded content hash for a slug, with ok=false when the
// slug has never been rendered.
func (s *Store) Lookup(ctx context.Context, slug string) (hash string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `SELECT content_hash FROM posts WHERE slug = ?`, slug)
	if err := row.Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("lookup slug %s: %w", slug, err)
	}
	return hash, true, nil
}

// Record upserts the rendered state of a slug.
func (s *Store) Record(ctx context.Context, slug, source, contentHash string, renderedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (slug, source, content_hash, rendered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			source = excluded.source,
			content_hash = excluded.content_hash,
			rendered_at = excluded.rendered_at`,
		slug, source, contentHash, renderedAt.Unix())
	if err != nil {
		return fmt.Errorf("record slug %s: %w", slug, err)
	}
	return nil
}

// Forget drops the recorded state of a slug (e.g., when its source vanished).
func (s *Store) Forget(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("forget slug %s: %w", slug, err)
	}
	return nil
}

// Slugs returns every recorded slug.
func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM posts ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent returns the hex SHA-256 of a post's raw source content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
