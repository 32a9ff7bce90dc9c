// Package smooth provides moving-average low-pass filtering of 1-D series.
package smooth

import (
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/conv"
)

// DefaultWindow is the moving-average length used for loudness series.
const DefaultWindow = 10

// MovingAverage returns x smoothed by a centred moving average of k taps.
//
// The result is the "same"-length convolution of x with a uniform 1/k
// kernel. Samples beyond either end of x count as zero, so the first and last
// k/2 outputs are pulled toward zero; [MovingAverageCompensated] divides by
// the number of real samples instead.
//
// If len(x) < k, a copy of x is returned unchanged. k <= 1 also returns a
// copy. The input is never modified.
func MovingAverage(x []float64, k int) []float64 {
	if len(x) < k || k <= 1 {
		return append([]float64(nil), x...)
	}

	kernel := make([]float64, k)
	w := 1 / float64(k)
	for i := range kernel {
		kernel[i] = w
	}

	out, err := conv.Convolve(x, kernel, conv.ModeSame)
	if err != nil {
		// Unreachable: x and kernel are both non-empty here.
		return append([]float64(nil), x...)
	}

	return out
}

// MovingAverageCompensated is the edge-aware variant of [MovingAverage]:
// each output is the mean of the real samples under the window, so a
// constant series stays constant all the way to its ends. The window
// alignment is identical to MovingAverage.
func MovingAverageCompensated(x []float64, k int) []float64 {
	if len(x) < k || k <= 1 {
		return append([]float64(nil), x...)
	}

	n := len(x)
	behind := k / 2
	ahead := k - 1 - behind

	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, n)
	for i := range out {
		lo := max(i-behind, 0)
		hi := min(i+ahead, n-1)
		out[i] = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}

	return out
}
