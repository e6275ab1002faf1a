// Package distance provides distance functions for comparing item attribute vectors.
package distance

// Func represents a function that computes the distance between two attribute
// vectors. It should return a non-negative float64 where smaller values
// indicate greater similarity, and +Inf for vectors that cannot be compared.
type Func func(a, b []float64) float64
