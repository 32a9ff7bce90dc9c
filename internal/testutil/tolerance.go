package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireNearlyEqual stops the test when got is NaN or more than eps from want.
func RequireNearlyEqual(tb testing.TB, name string, got, want, eps float64) {
	tb.Helper()

	if d := math.Abs(got - want); !(d <= eps) {
		tb.Fatalf("%s = %v, want %v ±%v", name, got, want, eps)
	}
}

// RequireSliceNearlyEqual compares element-wise with absolute tolerance eps.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); !(d <= eps) {
			tb.Fatalf("[%d] = %v, want %v ±%v", i, got[i], want[i], eps)
		}
	}
}

// RequireFinite stops the test at the first NaN or infinity.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("[%d] = %v, want finite", i, v)
		}
	}
}

// MaxAbsDiff is the L-infinity distance between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch %d != %d", len(a), len(b))
	}

	if len(a) == 0 {
		return 0, nil
	}

	return floats.Distance(a, b, math.Inf(1)), nil
}
