// Package remote provides network-backed catalog sources.
package remote

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/davrell/gamerec/types"
	"github.com/redis/go-redis/v9"
)

// RedisSource reads the catalog from Redis. Each item is a hash under
// <prefix>item:<name>, and <prefix>names is a list recording insertion
// order so snapshots stay deterministic (SCAN order is not).
type RedisSource struct {
	client *redis.Client
	prefix string
}

const (
	fieldApproval = "approval_count"
	fieldUsage    = "usage_time"
)

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	// Handle redis:// or rediss:// URLs
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			if db, err := strconv.Atoi(dbStr); err == nil {
				opts.DB = db
			}
		}

		return opts, nil
	}

	// For simple address format (host:port), return minimal options
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisSource creates a new Redis source
func NewRedisSource(config types.SourceConfig) (*RedisSource, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Override with explicit config values if provided
	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := "gamerec:"
	if prefixOpt, ok := config.Options["prefix"]; ok {
		if p, ok := prefixOpt.(string); ok {
			prefix = p
		}
	}

	return &RedisSource{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *RedisSource) namesKey() string {
	return s.prefix + "names"
}

func (s *RedisSource) itemKey(name string) string {
	return s.prefix + "item:" + name
}

// Items returns the catalog in the order items were seeded. Names present
// in the order list but missing their hash are skipped.
func (s *RedisSource) Items(ctx context.Context) ([]types.Item, error) {
	names, err := s.client.LRange(ctx, s.namesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog names: %w", err)
	}

	items := make([]types.Item, 0, len(names))
	for _, name := range names {
		fields, err := s.client.HGetAll(ctx, s.itemKey(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get item %q: %w", name, err)
		}
		if len(fields) == 0 {
			continue
		}

		approval, err := strconv.ParseFloat(fields[fieldApproval], 64)
		if err != nil {
			return nil, fmt.Errorf("item %q has invalid approval count %q", name, fields[fieldApproval])
		}
		usage, err := strconv.ParseFloat(fields[fieldUsage], 64)
		if err != nil {
			return nil, fmt.Errorf("item %q has invalid usage time %q", name, fields[fieldUsage])
		}

		items = append(items, types.Item{
			Name:          name,
			ApprovalCount: approval,
			UsageTime:     usage,
		})
	}

	return items, nil
}

// Len returns the number of items in the catalog
func (s *RedisSource) Len(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.namesKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count catalog names: %w", err)
	}
	return int(n), nil
}

// Seed replaces the stored catalog with the given items, preserving their
// order for deterministic reads.
func (s *RedisSource) Seed(ctx context.Context, items []types.Item) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, item := range items {
		pipe.RPush(ctx, s.namesKey(), item.Name)
		pipe.HSet(ctx, s.itemKey(item.Name),
			fieldApproval, item.ApprovalCount,
			fieldUsage, item.UsageTime,
		)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return nil
}

// Flush removes all catalog keys with the configured prefix.
func (s *RedisSource) Flush(ctx context.Context) error {
	pattern := s.prefix + "*"
	var keys []string
	var cursor uint64

	// Use SCAN to get all keys with our prefix
	for {
		result, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys from Redis: %w", err)
		}

		keys = append(keys, result...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to flush catalog: %w", err)
		}
	}

	return nil
}

// Close closes the Redis connection
func (s *RedisSource) Close() error {
	return s.client.Close()
}
