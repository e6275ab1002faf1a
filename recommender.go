package gamerec

import (
	"context"
	"errors"
	"sort"

	"github.com/davrell/gamerec/distance"
	"github.com/davrell/gamerec/options"
	"github.com/davrell/gamerec/types"
)

// Recommender computes distance-based recommendations over a catalog with a
// configurable source and distance function.
type Recommender struct {
	source      types.CatalogSource
	metric      distance.Func
	defaultTopN int
}

// New creates a Recommender with functional options.
func New(opts ...options.Option) (*Recommender, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewRecommender(cfg.Source, cfg.Metric, cfg.DefaultTopN)
}

// NewRecommender creates a new recommender with the given source, distance
// function, and default result count.
func NewRecommender(source types.CatalogSource, metric distance.Func, defaultTopN int) (*Recommender, error) {
	if source == nil {
		return nil, errors.New("source cannot be nil")
	}
	if metric == nil {
		return nil, errors.New("metric cannot be nil")
	}
	if defaultTopN <= 0 {
		return nil, errors.New("default topN must be positive")
	}

	return &Recommender{
		source:      source,
		metric:      metric,
		defaultTopN: defaultTopN,
	}, nil
}

// DefaultTopN returns the configured default result count.
func (r *Recommender) DefaultTopN() int {
	return r.defaultTopN
}

// Recommend returns up to topN items most similar to the named reference
// item, ordered by ascending distance. Ties preserve catalog order.
//
// A reference name that is not present in the catalog, or an empty catalog,
// yields an empty result rather than an error. If several items share the
// reference name, the first in catalog order supplies the reference
// attributes, and every item carrying that name is excluded from the
// candidates. The catalog snapshot is never mutated; distances are computed
// into a fresh result slice.
func (r *Recommender) Recommend(ctx context.Context, referenceName string, topN int) ([]types.Recommendation, error) {
	if topN <= 0 {
		return nil, errors.New("topN must be positive")
	}

	items, err := r.source.Items(ctx)
	if err != nil {
		return nil, err
	}

	ref, found := findReference(items, referenceName)
	if !found {
		return []types.Recommendation{}, nil
	}
	refVec := ref.Vector()

	recs := make([]types.Recommendation, 0, len(items))
	for _, item := range items {
		if item.Name == referenceName {
			continue
		}
		recs = append(recs, types.Recommendation{
			Item:     item,
			Distance: r.metric(refVec, item.Vector()),
		})
	}

	// Stable sort keeps catalog order among equal distances, which makes the
	// output reproducible for identical input order.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Distance < recs[j].Distance
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs, nil
}

// Closest returns the single most similar item to the named reference, or
// nil if the reference is absent or has no eligible candidates.
func (r *Recommender) Closest(ctx context.Context, referenceName string) (*types.Recommendation, error) {
	recs, err := r.Recommend(ctx, referenceName, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// Items returns the current catalog snapshot in source order.
func (r *Recommender) Items(ctx context.Context) ([]types.Item, error) {
	return r.source.Items(ctx)
}

// Names returns the distinct item names in catalog order, for selector UIs.
func (r *Recommender) Names(ctx context.Context) ([]string, error) {
	items, err := r.source.Items(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		names = append(names, item.Name)
	}
	return names, nil
}

// Len returns the number of items in the catalog.
func (r *Recommender) Len(ctx context.Context) (int, error) {
	return r.source.Len(ctx)
}

// Close closes the underlying catalog source.
func (r *Recommender) Close() error {
	return r.source.Close()
}

// findReference locates the attribute source for referenceName: the first
// item in catalog order carrying that name.
func findReference(items []types.Item, referenceName string) (types.Item, bool) {
	for _, item := range items {
		if item.Name == referenceName {
			return item, true
		}
	}
	return types.Item{}, false
}

// RecommendResult holds the result of an async Recommend operation.
type RecommendResult struct {
	Recommendations []types.Recommendation
	Error           error
}

// RecommendAsync computes recommendations asynchronously.
// Returns a channel that will receive the result when complete.
func (r *Recommender) RecommendAsync(ctx context.Context, referenceName string, topN int) <-chan RecommendResult {
	resultCh := make(chan RecommendResult, 1)
	go func() {
		defer close(resultCh)
		recs, err := r.Recommend(ctx, referenceName, topN)
		resultCh <- RecommendResult{Recommendations: recs, Error: err}
	}()
	return resultCh
}

// ClosestResult holds the result of an async Closest operation.
type ClosestResult struct {
	Match *types.Recommendation
	Error error
}

// ClosestAsync finds the closest item asynchronously.
// Returns a channel that will receive the result when complete.
func (r *Recommender) ClosestAsync(ctx context.Context, referenceName string) <-chan ClosestResult {
	resultCh := make(chan ClosestResult, 1)
	go func() {
		defer close(resultCh)
		match, err := r.Closest(ctx, referenceName)
		resultCh <- ClosestResult{Match: match, Error: err}
	}()
	return resultCh
}
