// Package options provides functional options for configuring Recommender instances.
package options

import (
	"errors"
	"time"

	"github.com/davrell/gamerec/catalog"
	"github.com/davrell/gamerec/distance"
	"github.com/davrell/gamerec/types"
)

// DefaultTopN is the result count used when callers do not choose one.
const DefaultTopN = 5

// Option represents a configuration option for a Recommender
type Option func(*Config) error

// Config holds the configuration for building a Recommender
type Config struct {
	Source      types.CatalogSource
	Metric      distance.Func
	DefaultTopN int
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Metric:      distance.Euclidean,
		DefaultTopN: DefaultTopN,
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Source == nil {
		return errors.New("catalog source is required - use WithCSVSource, WithStaticSource, etc.")
	}
	if c.DefaultTopN <= 0 {
		return errors.New("default topN must be positive")
	}
	return nil
}

// WithCSVSource sets up a CSV file source
func WithCSVSource(path string) Option {
	return func(cfg *Config) error {
		source, err := catalog.NewCSVSource(types.SourceConfig{
			Path: path,
		})
		if err != nil {
			return err
		}
		cfg.Source = source
		return nil
	}
}

// WithSQLiteSource sets up a SQLite source
func WithSQLiteSource(path string) Option {
	return func(cfg *Config) error {
		source, err := catalog.NewSQLiteSource(types.SourceConfig{
			Path: path,
		})
		if err != nil {
			return err
		}
		cfg.Source = source
		return nil
	}
}

// WithRedisSource sets up a Redis source
func WithRedisSource(addr string, db int) Option {
	return func(cfg *Config) error {
		source, err := catalog.NewRedisSource(types.SourceConfig{
			ConnectionString: addr,
			Database:         db,
		})
		if err != nil {
			return err
		}
		cfg.Source = source
		return nil
	}
}

// WithStaticSource sets up an in-memory source over the given items
func WithStaticSource(items []types.Item) Option {
	return func(cfg *Config) error {
		cfg.Source = catalog.NewStaticSource(items)
		return nil
	}
}

// WithCustomSource allows using a pre-configured catalog source
func WithCustomSource(source types.CatalogSource) Option {
	return func(cfg *Config) error {
		if source == nil {
			return errors.New("source cannot be nil")
		}
		cfg.Source = source
		return nil
	}
}

// WithSnapshotCache wraps the configured source with snapshot caching.
// Must be applied after a source option.
func WithSnapshotCache(size int, ttl time.Duration) Option {
	return func(cfg *Config) error {
		if cfg.Source == nil {
			return errors.New("snapshot cache requires a source - apply a source option first")
		}
		cached, err := catalog.NewCachedSource(cfg.Source, types.SourceConfig{
			CacheSize: size,
			TTL:       ttl,
		})
		if err != nil {
			return err
		}
		cfg.Source = cached
		return nil
	}
}

// WithDistanceFunc sets a custom distance function
func WithDistanceFunc(metric distance.Func) Option {
	return func(cfg *Config) error {
		if metric == nil {
			return errors.New("metric cannot be nil")
		}
		cfg.Metric = metric
		return nil
	}
}

// WithDefaultTopN sets the result count used when callers do not choose one
func WithDefaultTopN(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return errors.New("default topN must be positive")
		}
		cfg.DefaultTopN = n
		return nil
	}
}
