// Package sqlite provides a SQLite-backed catalog source.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/davrell/gamerec/types"
	_ "modernc.org/sqlite"
)

// Source reads the catalog from a SQLite database. Items are returned in
// insertion (rowid) order, which keeps tie-breaking deterministic.
type Source struct {
	db   *sql.DB
	path string
}

// NewSource opens the database at config.Path and ensures the items table
// exists.
func NewSource(config types.SourceConfig) (*Source, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("sqlite source requires a path")
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	s := &Source{db: db, path: config.Path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog database: %w", err)
	}

	return s, nil
}

func (s *Source) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		name TEXT PRIMARY KEY,
		approval_count REAL NOT NULL,
		usage_time REAL NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Items returns the full catalog in rowid order.
func (s *Source) Items(ctx context.Context) ([]types.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, approval_count, usage_time
		FROM items
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.Name, &item.ApprovalCount, &item.UsageTime); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return items, nil
}

// Len returns the number of items in the catalog
func (s *Source) Len(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

// Seed replaces or inserts the given items, preserving the insertion order
// of new names. Useful for loading a catalog export into the database.
func (s *Source) Seed(ctx context.Context, items []types.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (name, approval_count, usage_time)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			approval_count = excluded.approval_count,
			usage_time = excluded.usage_time
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.Name, item.ApprovalCount, item.UsageTime); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", item.Name, err)
		}
	}

	return tx.Commit()
}

// Fingerprint describes the current state of the database file so cached
// snapshots can be invalidated when it changes.
func (s *Source) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to stat catalog database: %w", err)
	}
	return fmt.Sprintf("%s:%d:%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Close closes the database
func (s *Source) Close() error {
	return s.db.Close()
}
