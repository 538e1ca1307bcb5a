package testutil

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

// MaxAbs returns the largest absolute element of a.
func MaxAbs(a *sparse.DenseArray) float64 {
	max := 0.0
	for _, v := range a.Elements {
		if av := math.Abs(v); av > max {
			max = av
		}
	}
	return max
}

// MaxAbsDiff returns the largest elementwise absolute difference
// between a and b. The arrays must have the same number of elements.
func MaxAbsDiff(a, b *sparse.DenseArray) float64 {
	max := 0.0
	for i, v := range a.Elements {
		if d := math.Abs(v - b.Elements[i]); d > max {
			max = d
		}
	}
	return max
}

// RequireFinite fails the test if a contains a NaN or infinity.
func RequireFinite(t *testing.T, a *sparse.DenseArray) {
	t.Helper()
	for i, v := range a.Elements {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("element %d is %v", i, v)
		}
	}
}
