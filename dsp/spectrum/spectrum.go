package spectrum

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/window"
)

// DefaultFFTSize is the transform length used by the analysis pipeline.
const DefaultFFTSize = 2048

// Errors returned by [Transform].
var (
	ErrEmptyInput        = errors.New("spectrum: empty input")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	ErrInvalidFFTSize    = errors.New("spectrum: fft size must be >= 2")
)

// Spectrum is a one-sided magnitude spectrum.
//
// Frequencies and Magnitudes always have FFTSize/2+1 entries; Frequencies
// ascend from 0 Hz in steps of SampleRate/FFTSize.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
	FFTSize     int
	SampleRate  float64
}

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s.Magnitudes) }

// BinWidth returns the spacing between adjacent bins in Hz.
func (s Spectrum) BinWidth() float64 {
	if s.FFTSize <= 0 {
		return 0
	}
	return s.SampleRate / float64(s.FFTSize)
}

// Transform returns the Hamming-windowed magnitude spectrum of samples.
//
// samples is not modified.
func Transform(samples []float64, sampleRate float64, nFFT int) (Spectrum, error) {
	if len(samples) == 0 {
		return Spectrum{}, ErrEmptyInput
	}
	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if nFFT < 2 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, nFFT)
	}

	windowed := append([]float64(nil), samples...)
	window.Apply(window.TypeHamming, windowed)

	seq := make([]float64, nFFT)
	copy(seq, windowed)

	coeffs := fourier.NewFFT(nFFT).Coefficients(nil, seq)

	return Spectrum{
		Frequencies: Frequencies(nFFT, sampleRate),
		Magnitudes:  Magnitude(coeffs),
		FFTSize:     nFFT,
		SampleRate:  sampleRate,
	}, nil
}

// Frequencies returns the nFFT/2+1 bin centre frequencies of a real DFT,
// k*sampleRate/nFFT for k in [0, nFFT/2].
func Frequencies(nFFT int, sampleRate float64) []float64 {
	if nFFT <= 0 {
		return nil
	}

	out := make([]float64, nFFT/2+1)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(nFFT)
	}
	return out
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled, so concurrent callers each get private
// re/im slices and in steady state only the output slice is allocated.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}
