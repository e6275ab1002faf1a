package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/davrell/gamerec/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Fingerprinter is implemented by sources that can cheaply describe the
// current state of their backing store (for file sources, the modification
// time). A changed fingerprint invalidates cached snapshots.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// CachedSource is a read-through snapshot cache around another source.
// Snapshots are keyed by the inner source's fingerprint when available, so a
// change to the backing file is picked up on the next read. Sources without
// a fingerprint fall back to time-bucketed keys with the configured TTL.
type CachedSource struct {
	mu    sync.Mutex
	inner types.CatalogSource
	cache *lru.Cache[string, []types.Item]
	ttl   time.Duration
}

const (
	defaultCacheSize = 8
	defaultCacheTTL  = time.Minute
)

// NewCachedSource wraps inner with snapshot caching.
func NewCachedSource(inner types.CatalogSource, config types.SourceConfig) (*CachedSource, error) {
	size := config.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache, err := lru.New[string, []types.Item](size)
	if err != nil {
		return nil, err
	}

	return &CachedSource{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Items returns the cached snapshot when the inner source is unchanged,
// loading through to it otherwise. Callers always receive a fresh copy.
func (s *CachedSource) Items(ctx context.Context) ([]types.Item, error) {
	key, err := s.snapshotKey(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if items, ok := s.cache.Get(key); ok {
		return cloneItems(items), nil
	}

	items, err := s.inner.Items(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, cloneItems(items))
	return items, nil
}

// Len returns the number of items in the (possibly cached) catalog
func (s *CachedSource) Len(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Invalidate drops all cached snapshots. The next read loads from the
// inner source regardless of fingerprint.
func (s *CachedSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}

// Close closes the inner source.
func (s *CachedSource) Close() error {
	return s.inner.Close()
}

func (s *CachedSource) snapshotKey(ctx context.Context) (string, error) {
	if fp, ok := s.inner.(Fingerprinter); ok {
		return fp.Fingerprint(ctx)
	}
	// No fingerprint available: expire by TTL bucket. Stale buckets age out
	// of the LRU on their own.
	return fmt.Sprintf("ttl:%d", time.Now().UnixNano()/int64(s.ttl)), nil
}

func cloneItems(items []types.Item) []types.Item {
	out := make([]types.Item, len(items))
	copy(out, items)
	return out
}
