package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/spectrum"
	"github.com/Usama2015/Noise-Environment-Monitor-App/internal/testutil"
)

func TestExtractKnownSpectrum(t *testing.T) {
	freqs := []float64{0, 100, 200, 300, 400}
	mags := []float64{0, 1, 2, 1, 0}

	f, err := Extract(freqs, mags)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	testutil.RequireNearlyEqual(t, "centroid", f.Centroid, 200, 1e-6)
	testutil.RequireNearlyEqual(t, "spread", f.Spread, math.Sqrt(5000), 1e-6)
	testutil.RequireNearlyEqual(t, "rolloff", f.Rolloff, 300, 0)
	testutil.RequireNearlyEqual(t, "entropy", f.Entropy, 1.5, 1e-6)
	testutil.RequireNearlyEqual(t, "dominant", f.DominantFrequency, 200, 0)
	testutil.RequireNearlyEqual(t, "total", f.TotalMagnitude, 4, 0)
	testutil.RequireNearlyEqual(t, "low", f.LowRatio, 0.75, 1e-9)
	testutil.RequireNearlyEqual(t, "mid", f.MidRatio, 0.25, 1e-9)
	testutil.RequireNearlyEqual(t, "high", f.HighRatio, 0, 0)

	if f.Degenerate {
		t.Fatal("unexpected Degenerate")
	}
}

func TestExtractSilence(t *testing.T) {
	freqs := spectrum.Frequencies(2048, 44100)
	mags := make([]float64, len(freqs))

	f, err := Extract(freqs, mags)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, []float64{
		f.Centroid, f.Spread, f.Rolloff, f.Flatness, f.Entropy,
		f.DominantFrequency, f.LowRatio, f.MidRatio, f.HighRatio,
	})

	if !f.Degenerate {
		t.Fatal("expected Degenerate for silence")
	}
	testutil.RequireNearlyEqual(t, "centroid", f.Centroid, 0, 0)
	testutil.RequireNearlyEqual(t, "spread", f.Spread, 0, 0)
	testutil.RequireNearlyEqual(t, "rolloff", f.Rolloff, 22050, 0)
	testutil.RequireNearlyEqual(t, "flatness", f.Flatness, 1, 1e-9)
	testutil.RequireNearlyEqual(t, "entropy", f.Entropy, 0, 0)
	testutil.RequireNearlyEqual(t, "dominant", f.DominantFrequency, 0, 0)

	if f.LowRatio != 0 || f.MidRatio != 0 || f.HighRatio != 0 {
		t.Fatalf("band ratios = %v %v %v, want 0", f.LowRatio, f.MidRatio, f.HighRatio)
	}
}

func TestBandRatiosSumToOne(t *testing.T) {
	signals := map[string][]float64{
		"noise": testutil.DeterministicGaussianNoise(7, 0.3, 88200),
		"tone":  testutil.DeterministicSine(1000, 44100, 0.5, 44100),
		"short": testutil.DeterministicNoise(3, 1, 300),
	}

	for name, x := range signals {
		t.Run(name, func(t *testing.T) {
			s, err := spectrum.Transform(x, 44100, spectrum.DefaultFFTSize)
			if err != nil {
				t.Fatal(err)
			}
			f, err := Extract(s.Frequencies, s.Magnitudes)
			if err != nil {
				t.Fatal(err)
			}

			sum := f.LowRatio + f.MidRatio + f.HighRatio
			if math.Abs(sum-1) > 1e-6 {
				t.Fatalf("band ratio sum = %v", sum)
			}
			if f.Flatness < 0 || f.Flatness > 1+1e-9 {
				t.Fatalf("flatness = %v outside [0,1]", f.Flatness)
			}
			if f.Rolloff < 0 || f.Rolloff > 22050 {
				t.Fatalf("rolloff = %v outside [0, nyquist]", f.Rolloff)
			}
		})
	}
}

func TestFlatnessToneBelowNoise(t *testing.T) {
	tone, err := spectrum.Transform(testutil.DeterministicSine(1000, 44100, 0.5, 44100), 44100, 2048)
	if err != nil {
		t.Fatal(err)
	}
	noise, err := spectrum.Transform(testutil.DeterministicGaussianNoise(1, 0.3, 44100), 44100, 2048)
	if err != nil {
		t.Fatal(err)
	}

	ft, fn := Flatness(tone.Magnitudes), Flatness(noise.Magnitudes)
	if ft >= fn {
		t.Fatalf("tone flatness %v >= noise flatness %v", ft, fn)
	}
	if fn < 0.5 {
		t.Fatalf("noise flatness %v, want > 0.5", fn)
	}
}

func TestFlatnessConstant(t *testing.T) {
	testutil.RequireNearlyEqual(t, "flatness", Flatness(testutil.DC(3, 16)), 1, 1e-9)
}

func TestDominantFrequencyTieResolvesLow(t *testing.T) {
	got := DominantFrequency([]float64{0, 10, 20}, []float64{1, 3, 3})
	if got != 10 {
		t.Fatalf("DominantFrequency() = %v, want 10", got)
	}
}

func TestRolloffFallsBackToLastFrequency(t *testing.T) {
	freqs := []float64{0, 100, 200}
	mags := []float64{1, 1, 1}

	if got := Rolloff(freqs, mags, 1); got != 200 {
		t.Fatalf("Rolloff(1.0) = %v, want 200", got)
	}
	if got := Rolloff(freqs, mags, 0.5); got != 100 {
		t.Fatalf("Rolloff(0.5) = %v, want 100", got)
	}
}

func TestBandRatiosEdges(t *testing.T) {
	freqs := []float64{0, 250, 3999, 4000}
	mags := []float64{1, 1, 1, 1}

	low, mid, high := BandRatios(freqs, mags, DefaultBands())
	testutil.RequireNearlyEqual(t, "low", low, 0.25, 1e-9)
	testutil.RequireNearlyEqual(t, "mid", mid, 0.5, 1e-9)
	testutil.RequireNearlyEqual(t, "high", high, 0.25, 1e-9)
}

func TestHelpersMatchExtract(t *testing.T) {
	s, err := spectrum.Transform(testutil.DeterministicNoise(9, 0.2, 4000), 22050, 1024)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Extract(s.Frequencies, s.Magnitudes)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireNearlyEqual(t, "centroid", Centroid(s.Frequencies, s.Magnitudes), f.Centroid, 1e-9)
	testutil.RequireNearlyEqual(t, "spread", Spread(s.Frequencies, s.Magnitudes), f.Spread, 1e-9)
	testutil.RequireNearlyEqual(t, "rolloff", Rolloff(s.Frequencies, s.Magnitudes, RolloffFraction), f.Rolloff, 0)
	testutil.RequireNearlyEqual(t, "entropy", Entropy(s.Magnitudes), f.Entropy, 1e-9)
	testutil.RequireNearlyEqual(t, "dominant", DominantFrequency(s.Frequencies, s.Magnitudes), f.DominantFrequency, 0)
}

func TestExtractErrors(t *testing.T) {
	if _, err := Extract(nil, nil); !errors.Is(err, ErrEmptySpectrum) {
		t.Fatalf("err = %v, want ErrEmptySpectrum", err)
	}
	if _, err := Extract([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	_, err := ExtractWithBands([]float64{0}, []float64{1}, Bands{Low: 500, High: 100})
	if !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("err = %v, want ErrInvalidBands", err)
	}
}

func TestHelpersRejectMismatchedLengths(t *testing.T) {
	freqs := []float64{0, 100, 200}
	mags := []float64{1, 2}

	tests := []struct {
		name string
		got  float64
	}{
		{"centroid", Centroid(freqs, mags)},
		{"spread", Spread(freqs, mags)},
		{"rolloff", Rolloff(freqs, mags, RolloffFraction)},
		{"dominant", DominantFrequency(freqs, mags)},
		{"rolloff reversed", Rolloff(mags, freqs, RolloffFraction)},
		{"centroid empty", Centroid(nil, nil)},
	}
	for _, tc := range tests {
		if tc.got != 0 {
			t.Errorf("%s = %v, want 0", tc.name, tc.got)
		}
	}

	if low, mid, high := BandRatios(freqs, mags, DefaultBands()); low != 0 || mid != 0 || high != 0 {
		t.Errorf("BandRatios = %v %v %v, want zeros", low, mid, high)
	}
}
