package distance

import (
	"math"
	"testing"
)

// Test distance functions with known vectors
func TestDistanceFunctions(t *testing.T) {
	vec1 := []float64{100, 10}
	vec2 := []float64{0, 0}
	vec3 := []float64{100, 10} // Same as vec1

	t.Run("Euclidean", func(t *testing.T) {
		// Identical vectors (should be 0)
		d := Euclidean(vec1, vec3)
		if d != 0 {
			t.Errorf("Expected 0, got %f", d)
		}

		// Known distance: sqrt(100^2 + 10^2)
		d = Euclidean(vec1, vec2)
		want := math.Sqrt(100*100 + 10*10)
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("Expected %f, got %f", want, d)
		}

		// Empty vectors
		d = Euclidean([]float64{}, []float64{})
		if !math.IsInf(d, 1) {
			t.Errorf("Expected +Inf for empty vectors, got %f", d)
		}

		// Different length vectors
		d = Euclidean(vec1, []float64{1})
		if !math.IsInf(d, 1) {
			t.Errorf("Expected +Inf for different length vectors, got %f", d)
		}
	})

	t.Run("Manhattan", func(t *testing.T) {
		// Identical vectors (should be 0)
		d := Manhattan(vec1, vec3)
		if d != 0 {
			t.Errorf("Expected 0, got %f", d)
		}

		// Known distance: |100| + |10|
		d = Manhattan(vec1, vec2)
		if d != 110 {
			t.Errorf("Expected 110, got %f", d)
		}

		// Empty vectors
		d = Manhattan([]float64{}, []float64{})
		if !math.IsInf(d, 1) {
			t.Errorf("Expected +Inf for empty vectors, got %f", d)
		}
	})

	t.Run("Chebyshev", func(t *testing.T) {
		// Identical vectors (should be 0)
		d := Chebyshev(vec1, vec3)
		if d != 0 {
			t.Errorf("Expected 0, got %f", d)
		}

		// Known distance: max(|100|, |10|)
		d = Chebyshev(vec1, vec2)
		if d != 100 {
			t.Errorf("Expected 100, got %f", d)
		}

		// Symmetry
		if Chebyshev(vec1, vec2) != Chebyshev(vec2, vec1) {
			t.Error("Expected Chebyshev to be symmetric")
		}
	})
}
