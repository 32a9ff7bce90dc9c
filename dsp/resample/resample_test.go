package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/Usama2015/Noise-Environment-Monitor-App/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("up=0: err = %v, want ErrInvalidRatio", err)
	}
	if _, err := NewRational(1, -2); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("down<0: err = %v, want ErrInvalidRatio", err)
	}
}

func TestNewForRatesRatio(t *testing.T) {
	tests := []struct {
		in, out  float64
		up, down int
	}{
		{44100, 48000, 160, 147},
		{48000, 44100, 147, 160},
		{22050, 44100, 2, 1},
		{16000, 44100, 441, 160},
	}

	for _, tt := range tests {
		c, err := NewForRates(tt.in, tt.out)
		if err != nil {
			t.Fatalf("NewForRates(%v, %v) error = %v", tt.in, tt.out, err)
		}
		up, down := c.Ratio()
		if up != tt.up || down != tt.down {
			t.Fatalf("%v->%v ratio = %d/%d, want %d/%d", tt.in, tt.out, up, down, tt.up, tt.down)
		}
	}

	if _, err := NewForRates(0, 44100); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
	if _, err := NewForRates(44100, math.NaN()); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestStreamingMatchesWhole(t *testing.T) {
	whole, err := NewRational(160, 147)
	if err != nil {
		t.Fatal(err)
	}
	chunked, err := NewRational(160, 147)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(1000, 44100, 1, 8192)
	want := whole.Process(in)

	var got []float64
	for i := 0; i < len(in); i += 257 {
		got = append(got, chunked.Process(in[i:min(len(in), i+257)])...)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestResetRestartsStream(t *testing.T) {
	c, err := NewRational(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(3, 1, 500)
	first := c.Process(in)
	c.Reset()
	second := c.Process(in)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestToRateLength(t *testing.T) {
	tests := []struct {
		in, out float64
		n       int
	}{
		{48000, 44100, 48000},
		{22050, 44100, 1000},
		{44100, 48000, 4410},
		{16000, 44100, 1601},
	}

	for _, tt := range tests {
		out, err := ToRate(testutil.DeterministicNoise(1, 0.5, tt.n), tt.in, tt.out)
		if err != nil {
			t.Fatalf("ToRate(%v->%v) error = %v", tt.in, tt.out, err)
		}
		want := int(math.Ceil(float64(tt.n) * tt.out / tt.in))
		if len(out) != want {
			t.Fatalf("%v->%v len = %d, want %d", tt.in, tt.out, len(out), want)
		}
		testutil.RequireFinite(t, out)
	}
}

func TestToRatePreservesToneAndAlignment(t *testing.T) {
	const freq = 1000.0

	in := testutil.DeterministicSine(freq, 48000, 0.5, 48000)
	out, err := ToRate(in, 48000, 44100)
	if err != nil {
		t.Fatal(err)
	}

	ref := testutil.DeterministicSine(freq, 44100, 0.5, len(out))
	for i := 2000; i < len(out)-2000; i++ {
		if d := math.Abs(out[i] - ref[i]); d > 0.05 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], ref[i])
		}
	}
}

func TestToRateStopband(t *testing.T) {
	in := testutil.DeterministicSine(17000, 48000, 1, 32768)
	out, err := ToRate(in, 48000, 24000)
	if err != nil {
		t.Fatal(err)
	}

	atten := 20 * math.Log10(rms(out[1024:len(out)-1024])/rms(in))
	if atten > -35 {
		t.Fatalf("stopband attenuation %.1f dB, want <= -35 dB", atten)
	}
}

func TestToRateSameRateCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	out, err := ToRate(in, 44100, 44100)
	if err != nil {
		t.Fatal(err)
	}
	out[0] = 9
	if in[0] != 1 {
		t.Fatal("ToRate aliased its input")
	}
}

func TestToRateEmpty(t *testing.T) {
	out, err := ToRate(nil, 48000, 44100)
	if err != nil || len(out) != 0 {
		t.Fatalf("ToRate(nil) = %v, %v", out, err)
	}
	if _, err := ToRate([]float64{1}, -1, 44100); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestApproximateRatio(t *testing.T) {
	num, den := approximateRatio(math.Pi, 1000)
	if num != 355 || den != 113 {
		t.Fatalf("pi ~ %d/%d, want 355/113", num, den)
	}
	if num, den := approximateRatio(math.Inf(1), 10); num != 1 || den != 1 {
		t.Fatalf("inf -> %d/%d, want 1/1", num, den)
	}
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}
