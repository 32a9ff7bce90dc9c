// Package window generates the symmetric tapers applied to a frame before
// its spectrum is taken.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type selects a taper.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// Generalized cosine terms: w(x) = sum a_k cos(2*pi*k*x).
var cosineTerms = map[Type][]float64{
	TypeHann:     {0.5, -0.5},
	TypeHamming:  {0.54, -0.46},
	TypeBlackman: {0.42, -0.5, 0.08},
}

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeHamming:
		return "Hamming"
	case TypeBlackman:
		return "Blackman"
	default:
		return "Unknown"
	}
}

// Coefficients returns the n-point symmetric window, with x = i/(n-1).
// A one-point window is [1]; n <= 0 yields nil.
func Coefficients(t Type, n int) []float64 {
	if n <= 0 {
		return nil
	}

	w := make([]float64, n)
	terms, ok := cosineTerms[t]

	if n == 1 || !ok {
		for i := range w {
			w[i] = 1
		}

		return w
	}

	step := 2 * math.Pi / float64(n-1)
	for i := range w {
		phase := step * float64(i)
		for k, a := range terms {
			w[i] += a * math.Cos(float64(k)*phase)
		}
	}

	return w
}

// Apply multiplies buf in place by the n-point window of type t.
func Apply(t Type, buf []float64) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Coefficients(t, len(buf)))
}
