package gamerec

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/davrell/gamerec/catalog"
	"github.com/davrell/gamerec/distance"
	"github.com/davrell/gamerec/options"
	"github.com/davrell/gamerec/types"
)

func newTestRecommender(t *testing.T, items []types.Item) *Recommender {
	t.Helper()
	rec, err := New(options.WithStaticSource(items))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return rec
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("KnownDistances", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 100, UsageTime: 10},
			{Name: "B", ApprovalCount: 100, UsageTime: 10},
			{Name: "C", ApprovalCount: 0, UsageTime: 0},
		})

		recs, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("Expected 2 recommendations, got %d", len(recs))
		}
		if recs[0].Item.Name != "B" || recs[0].Distance != 0 {
			t.Errorf("Expected B at distance 0 first, got %s at %f", recs[0].Item.Name, recs[0].Distance)
		}
		want := math.Sqrt(100*100 + 10*10)
		if recs[1].Item.Name != "C" || math.Abs(recs[1].Distance-want) > 1e-9 {
			t.Errorf("Expected C at distance %f, got %s at %f", want, recs[1].Item.Name, recs[1].Distance)
		}
	})

	t.Run("AbsentReference", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 1, UsageTime: 1},
		})

		recs, err := rec.Recommend(ctx, "Z", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("Expected empty result for absent reference, got %d", len(recs))
		}
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		rec := newTestRecommender(t, nil)

		recs, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("Expected empty result for empty catalog, got %d", len(recs))
		}
	})

	t.Run("ReferenceExcluded", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 1, UsageTime: 1},
			{Name: "B", ApprovalCount: 2, UsageTime: 2},
		})

		recs, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		for _, r := range recs {
			if r.Item.Name == "A" {
				t.Error("Reference item must not appear in its own recommendations")
			}
		}
	})

	t.Run("DuplicateReferenceNames", func(t *testing.T) {
		// First occurrence supplies the attributes; every item carrying the
		// reference name is excluded from candidates.
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 0, UsageTime: 0},
			{Name: "A", ApprovalCount: 1000, UsageTime: 1000},
			{Name: "B", ApprovalCount: 3, UsageTime: 4},
		})

		recs, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("Expected only B, got %d results", len(recs))
		}
		if recs[0].Item.Name != "B" || recs[0].Distance != 5 {
			t.Errorf("Expected B at distance 5 (from first A), got %s at %f", recs[0].Item.Name, recs[0].Distance)
		}
	})

	t.Run("TopNTruncation", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 0, UsageTime: 0},
			{Name: "B", ApprovalCount: 1, UsageTime: 0},
			{Name: "C", ApprovalCount: 2, UsageTime: 0},
			{Name: "D", ApprovalCount: 3, UsageTime: 0},
		})

		recs, err := rec.Recommend(ctx, "A", 1)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 1 || recs[0].Item.Name != "B" {
			t.Errorf("Expected exactly [B], got %v", recs)
		}

		// topN above the eligible count returns everything, no padding.
		recs, err = rec.Recommend(ctx, "A", 100)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(recs) != 3 {
			t.Errorf("Expected all 3 eligible items, got %d", len(recs))
		}
	})

	t.Run("InvalidTopN", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "A", ApprovalCount: 1, UsageTime: 1},
		})

		if _, err := rec.Recommend(ctx, "A", 0); err == nil {
			t.Error("Expected error for topN = 0")
		}
		if _, err := rec.Recommend(ctx, "A", -1); err == nil {
			t.Error("Expected error for negative topN")
		}
	})

	t.Run("MonotonicOrdering", func(t *testing.T) {
		rec := newTestRecommender(t, []types.Item{
			{Name: "ref", ApprovalCount: 50, UsageTime: 50},
			{Name: "far", ApprovalCount: 500, UsageTime: 0},
			{Name: "near", ApprovalCount: 51, UsageTime: 50},
			{Name: "mid", ApprovalCount: 100, UsageTime: 80},
		})

		recs, err := rec.Recommend(ctx, "ref", 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		for i := 1; i < len(recs); i++ {
			if recs[i-1].Distance > recs[i].Distance {
				t.Errorf("Result not sorted ascending at %d: %f > %f", i, recs[i-1].Distance, recs[i].Distance)
			}
		}
	})

	t.Run("TieStability", func(t *testing.T) {
		// first and second are equidistant from ref; catalog order decides.
		rec := newTestRecommender(t, []types.Item{
			{Name: "ref", ApprovalCount: 0, UsageTime: 0},
			{Name: "first", ApprovalCount: 3, UsageTime: 4},
			{Name: "second", ApprovalCount: 4, UsageTime: 3},
			{Name: "third", ApprovalCount: 1, UsageTime: 0},
		})

		recs, err := rec.Recommend(ctx, "ref", 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if recs[0].Item.Name != "third" {
			t.Fatalf("Expected third closest first, got %s", recs[0].Item.Name)
		}
		if recs[1].Item.Name != "first" || recs[2].Item.Name != "second" {
			t.Errorf("Tied items must keep catalog order, got %s then %s", recs[1].Item.Name, recs[2].Item.Name)
		}
	})

	t.Run("Idempotence", func(t *testing.T) {
		items := []types.Item{
			{Name: "A", ApprovalCount: 10, UsageTime: 1},
			{Name: "B", ApprovalCount: 20, UsageTime: 2},
			{Name: "C", ApprovalCount: 30, UsageTime: 3},
		}
		rec := newTestRecommender(t, items)

		first, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		second, err := rec.Recommend(ctx, "A", 5)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("Identical inputs must yield identical output")
		}
	})

	t.Run("CatalogNotMutated", func(t *testing.T) {
		source := catalog.NewStaticSource([]types.Item{
			{Name: "A", ApprovalCount: 1, UsageTime: 1},
			{Name: "B", ApprovalCount: 2, UsageTime: 2},
		})
		rec, err := New(options.WithCustomSource(source))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		before, _ := source.Items(ctx)
		if _, err := rec.Recommend(ctx, "A", 5); err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		after, _ := source.Items(ctx)
		if !reflect.DeepEqual(before, after) {
			t.Error("Recommend must not mutate the catalog")
		}
	})
}

func TestClosest(t *testing.T) {
	ctx := context.Background()
	rec := newTestRecommender(t, []types.Item{
		{Name: "A", ApprovalCount: 0, UsageTime: 0},
		{Name: "B", ApprovalCount: 1, UsageTime: 0},
		{Name: "C", ApprovalCount: 9, UsageTime: 9},
	})

	t.Run("Found", func(t *testing.T) {
		match, err := rec.Closest(ctx, "A")
		if err != nil {
			t.Fatalf("Closest failed: %v", err)
		}
		if match == nil || match.Item.Name != "B" {
			t.Errorf("Expected B, got %v", match)
		}
	})

	t.Run("AbsentReference", func(t *testing.T) {
		match, err := rec.Closest(ctx, "Z")
		if err != nil {
			t.Fatalf("Closest failed: %v", err)
		}
		if match != nil {
			t.Errorf("Expected nil match, got %v", match)
		}
	})
}

func TestNames(t *testing.T) {
	rec := newTestRecommender(t, []types.Item{
		{Name: "B", ApprovalCount: 1, UsageTime: 1},
		{Name: "A", ApprovalCount: 2, UsageTime: 2},
		{Name: "B", ApprovalCount: 3, UsageTime: 3},
	})

	names, err := rec.Names(context.Background())
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"B", "A"}) {
		t.Errorf("Expected distinct names in catalog order, got %v", names)
	}
}

func TestCustomMetric(t *testing.T) {
	rec, err := New(
		options.WithStaticSource([]types.Item{
			{Name: "ref", ApprovalCount: 0, UsageTime: 0},
			{Name: "X", ApprovalCount: 3, UsageTime: 4},
		}),
		options.WithDistanceFunc(distance.Manhattan),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	recs, err := rec.Recommend(context.Background(), "ref", 1)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if recs[0].Distance != 7 {
		t.Errorf("Expected Manhattan distance 7, got %f", recs[0].Distance)
	}
}

func TestRecommendAsync(t *testing.T) {
	ctx := context.Background()
	rec := newTestRecommender(t, []types.Item{
		{Name: "A", ApprovalCount: 0, UsageTime: 0},
		{Name: "B", ApprovalCount: 1, UsageTime: 1},
	})

	t.Run("Recommend", func(t *testing.T) {
		result := <-rec.RecommendAsync(ctx, "A", 5)
		if result.Error != nil {
			t.Fatalf("RecommendAsync failed: %v", result.Error)
		}
		if len(result.Recommendations) != 1 || result.Recommendations[0].Item.Name != "B" {
			t.Errorf("Expected [B], got %v", result.Recommendations)
		}
	})

	t.Run("Closest", func(t *testing.T) {
		result := <-rec.ClosestAsync(ctx, "A")
		if result.Error != nil {
			t.Fatalf("ClosestAsync failed: %v", result.Error)
		}
		if result.Match == nil || result.Match.Item.Name != "B" {
			t.Errorf("Expected B, got %v", result.Match)
		}
	})
}

func TestNewRecommender(t *testing.T) {
	source := catalog.NewStaticSource(nil)

	if _, err := NewRecommender(nil, distance.Euclidean, 5); err == nil {
		t.Error("Expected error for nil source")
	}
	if _, err := NewRecommender(source, nil, 5); err == nil {
		t.Error("Expected error for nil metric")
	}
	if _, err := NewRecommender(source, distance.Euclidean, 0); err == nil {
		t.Error("Expected error for non-positive default topN")
	}
}
