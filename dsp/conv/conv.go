package conv

import "errors"

var (
	// ErrEmptyInput is returned when the signal has no samples.
	ErrEmptyInput = errors.New("conv: empty input")
	// ErrEmptyKernel is returned when the kernel has no taps.
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode selects which part of the full convolution is returned.
type Mode int

const (
	// ModeFull returns all len(a)+len(b)-1 samples.
	ModeFull Mode = iota
	// ModeSame returns len(a) samples starting at full[(len(b)-1)/2].
	ModeSame
	// ModeValid returns the max(n,m)-min(n,m)+1 samples where a and b overlap completely.
	ModeValid
)

// Direct is Convolve with ModeFull.
func Direct(a, b []float64) ([]float64, error) {
	return Convolve(a, b, ModeFull)
}

// Convolve computes the linear convolution of a and b in the time domain and
// returns the span selected by mode. Only that span is evaluated.
func Convolve(a, b []float64, mode Mode) ([]float64, error) {
	switch {
	case len(a) == 0:
		return nil, ErrEmptyInput
	case len(b) == 0:
		return nil, ErrEmptyKernel
	}

	start, n := span(len(a), len(b), mode)
	out := make([]float64, n)

	for k := range out {
		i := start + k
		// b[j] pairs with a[i-j]; clip j so both indices are in range.
		lo := max(0, i-len(a)+1)
		hi := min(len(b)-1, i)

		var acc float64
		for j := lo; j <= hi; j++ {
			acc += b[j] * a[i-j]
		}
		out[k] = acc
	}

	return out, nil
}

// span returns the first index into the full result and the output length.
func span(n, m int, mode Mode) (start, length int) {
	switch mode {
	case ModeSame:
		return (m - 1) / 2, n
	case ModeValid:
		return min(n, m) - 1, max(n, m) - min(n, m) + 1
	default:
		return 0, n + m - 1
	}
}
