package distance

import "math"

// Chebyshev computes the L∞ distance between two attribute vectors:
// the largest absolute difference across any single attribute.
func Chebyshev(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}

	return max
}
