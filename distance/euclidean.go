package distance

import "math"

// Euclidean computes the unweighted Euclidean distance between two attribute
// vectors. Attributes are compared on their raw scales with no normalization,
// so attributes with larger numeric ranges dominate the metric.
func Euclidean(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return math.Sqrt(sum)
}
