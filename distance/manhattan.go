package distance

import "math"

// Manhattan computes the L1 (taxicab) distance between two attribute vectors.
func Manhattan(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}
