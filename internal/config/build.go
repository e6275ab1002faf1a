package config

import (
	"fmt"

	"github.com/davrell/gamerec/distance"
	"github.com/davrell/gamerec/options"
)

// RecommenderOptions translates the configuration into recommender options.
func (c *Config) RecommenderOptions() ([]options.Option, error) {
	var opts []options.Option

	switch c.Catalog.Source {
	case "csv":
		opts = append(opts, options.WithCSVSource(c.Catalog.Path))
	case "sqlite":
		opts = append(opts, options.WithSQLiteSource(c.Catalog.Path))
	case "redis":
		opts = append(opts, options.WithRedisSource(c.Catalog.RedisURL, c.Catalog.RedisDB))
	default:
		return nil, fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if c.Catalog.CacheEnabled {
		opts = append(opts, options.WithSnapshotCache(c.Catalog.CacheSize, c.Catalog.CacheTTL))
	}

	metric, err := metricByName(c.Recommend.Metric)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		options.WithDistanceFunc(metric),
		options.WithDefaultTopN(c.Recommend.TopN),
	)

	return opts, nil
}

func metricByName(name string) (distance.Func, error) {
	switch name {
	case "euclidean":
		return distance.Euclidean, nil
	case "manhattan":
		return distance.Manhattan, nil
	case "chebyshev":
		return distance.Chebyshev, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q", name)
	}
}
