package options

import (
	"testing"
	"time"

	"github.com/davrell/gamerec/catalog"
	"github.com/davrell/gamerec/distance"
	"github.com/davrell/gamerec/types"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Metric == nil {
		t.Error("Expected default metric to be set")
	}
	if cfg.DefaultTopN != DefaultTopN {
		t.Errorf("Expected default topN %d, got %d", DefaultTopN, cfg.DefaultTopN)
	}
	if cfg.Source != nil {
		t.Error("Expected no default source")
	}
}

func TestValidate(t *testing.T) {
	t.Run("MissingSource", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for missing source")
		}
	})

	t.Run("Valid", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Source = catalog.NewStaticSource(nil)
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected valid config, got %v", err)
		}
	})
}

func TestSourceOptions(t *testing.T) {
	t.Run("WithStaticSource", func(t *testing.T) {
		cfg := NewConfig()
		err := cfg.Apply(WithStaticSource([]types.Item{
			{Name: "A", ApprovalCount: 1, UsageTime: 1},
		}))
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if cfg.Source == nil {
			t.Error("Expected source to be set")
		}
	})

	t.Run("WithCustomSourceNil", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCustomSource(nil)); err == nil {
			t.Error("Expected error for nil source")
		}
	})

	t.Run("WithCSVSourceMissingFile", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCSVSource("does-not-exist.csv")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestWithSnapshotCache(t *testing.T) {
	t.Run("RequiresSource", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithSnapshotCache(4, time.Minute)); err == nil {
			t.Error("Expected error when applied before a source option")
		}
	})

	t.Run("WrapsSource", func(t *testing.T) {
		cfg := NewConfig()
		err := cfg.Apply(
			WithStaticSource(nil),
			WithSnapshotCache(4, time.Minute),
		)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if _, ok := cfg.Source.(*catalog.CachedSource); !ok {
			t.Errorf("Expected CachedSource, got %T", cfg.Source)
		}
	})
}

func TestTuningOptions(t *testing.T) {
	t.Run("WithDistanceFunc", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithDistanceFunc(distance.Chebyshev)); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if cfg.Metric(
			[]float64{0, 0},
			[]float64{3, 4},
		) != 4 {
			t.Error("Expected Chebyshev metric to be applied")
		}
	})

	t.Run("WithDistanceFuncNil", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithDistanceFunc(nil)); err == nil {
			t.Error("Expected error for nil metric")
		}
	})

	t.Run("WithDefaultTopN", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithDefaultTopN(10)); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if cfg.DefaultTopN != 10 {
			t.Errorf("Expected 10, got %d", cfg.DefaultTopN)
		}

		if err := cfg.Apply(WithDefaultTopN(0)); err == nil {
			t.Error("Expected error for non-positive topN")
		}
	})
}
