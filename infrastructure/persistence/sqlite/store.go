// Package sqlite implements the list item repository over a SQLite database
// through database/sql. The store owns its connection lifecycle explicitly:
// callers Open it, inject it, and Close it on shutdown.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS list_items (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id          TEXT NOT NULL,
	list_external_id TEXT NOT NULL,
	title            TEXT NOT NULL,
	url              TEXT NOT NULL,
	excerpt          TEXT NOT NULL DEFAULT '',
	note             TEXT NOT NULL DEFAULT '',
	sort_order       INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_list_items_list ON list_items (list_external_id, sort_order, id);
CREATE INDEX IF NOT EXISTS idx_list_items_user ON list_items (user_id, id);

CREATE TABLE IF NOT EXISTS item_highlights (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id    INTEGER NOT NULL REFERENCES list_items (id),
	quote      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_item_highlights_item ON item_highlights (item_id);
`

// Store wraps the SQLite connection pool.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, verifies the connection, and ensures the
// schema exists. The caller must Close the store when done.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
