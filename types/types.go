package types

import (
	"context"
	"time"
)

// Item is a single catalog entry. Name is the primary key within a catalog;
// ApprovalCount and UsageTime are the two attributes similarity is computed
// over. Items are immutable once loaded.
type Item struct {
	Name          string  `json:"name"`
	ApprovalCount float64 `json:"approval_count"`
	UsageTime     float64 `json:"usage_time"`
}

// Vector returns the item's attribute vector in the order the distance
// functions expect: approval count first, usage time second.
func (i Item) Vector() []float64 {
	return []float64{i.ApprovalCount, i.UsageTime}
}

// Recommendation pairs an item with its computed distance from a reference
// item. Lower distance means more similar.
type Recommendation struct {
	Item     Item    `json:"item"`
	Distance float64 `json:"distance"`
}

// CatalogSource defines the interface for catalog storage backends.
// This allows pluggable sources including CSV files, SQLite, and Redis.
type CatalogSource interface {
	// Items returns the full catalog snapshot in source order.
	// Callers own the returned slice; sources must not retain or mutate
	// it after returning.
	Items(ctx context.Context) ([]Item, error)

	// Len returns the number of items in the catalog
	Len(ctx context.Context) (int, error)

	// Close closes the source and releases resources
	Close() error
}

// SourceConfig provides configuration options for catalog sources
type SourceConfig struct {
	// For file-backed sources (CSV, SQLite)
	Path string

	// For snapshot caching
	CacheSize int
	TTL       time.Duration

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int

	// Additional options
	Options map[string]any
}

// SourceType represents the type of catalog source
type SourceType string

const (
	SourceCSV    SourceType = "csv"
	SourceSQLite SourceType = "sqlite"
	SourceRedis  SourceType = "redis"
	SourceStatic SourceType = "static"
)
