// Package catalog provides catalog sources and a source factory.
package catalog

import (
	"errors"

	"github.com/davrell/gamerec/catalog/file"
	"github.com/davrell/gamerec/catalog/remote"
	"github.com/davrell/gamerec/catalog/sqlite"
	"github.com/davrell/gamerec/types"
)

var ErrUnsupportedSource = errors.New("unsupported source type")

// SourceFactory creates catalog sources based on type and configuration
type SourceFactory struct{}

// NewSource creates a new catalog source of the specified type
func (f *SourceFactory) NewSource(sourceType types.SourceType, config types.SourceConfig) (types.CatalogSource, error) {
	switch sourceType {
	case types.SourceCSV:
		return NewCSVSource(config)
	case types.SourceSQLite:
		return NewSQLiteSource(config)
	case types.SourceRedis:
		return NewRedisSource(config)
	default:
		return nil, ErrUnsupportedSource
	}
}

// NewCSVSource creates a new CSV file source
func NewCSVSource(config types.SourceConfig) (types.CatalogSource, error) {
	return file.NewCSVSource(config)
}

// NewSQLiteSource creates a new SQLite source
func NewSQLiteSource(config types.SourceConfig) (types.CatalogSource, error) {
	return sqlite.NewSource(config)
}

// NewRedisSource creates a new Redis source
func NewRedisSource(config types.SourceConfig) (types.CatalogSource, error) {
	return remote.NewRedisSource(config)
}
