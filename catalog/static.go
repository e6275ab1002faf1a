package catalog

import (
	"context"

	"github.com/davrell/gamerec/types"
)

// StaticSource serves a fixed, caller-supplied catalog from memory.
// Useful for tests and for callers that load items themselves.
type StaticSource struct {
	items []types.Item
}

// NewStaticSource creates a source over a copy of the given items.
func NewStaticSource(items []types.Item) *StaticSource {
	copied := make([]types.Item, len(items))
	copy(copied, items)
	return &StaticSource{items: copied}
}

// Items returns a fresh copy of the catalog in insertion order.
func (s *StaticSource) Items(ctx context.Context) ([]types.Item, error) {
	out := make([]types.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Len returns the number of items in the catalog
func (s *StaticSource) Len(ctx context.Context) (int, error) {
	return len(s.items), nil
}

// Close closes the static source (no-op for in-memory)
func (s *StaticSource) Close() error {
	return nil
}
