package analysis

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Usama2015/Noise-Environment-Monitor-App/classify"
	"github.com/Usama2015/Noise-Environment-Monitor-App/internal/testutil"
	"github.com/Usama2015/Noise-Environment-Monitor-App/measure/loudness"
	frequencystats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/frequency"
	timestats "github.com/Usama2015/Noise-Environment-Monitor-App/stats/time"
)

const sampleRate = 44100

func TestAnalyzeQuietTone(t *testing.T) {
	x := testutil.DeterministicSine(440, sampleRate, 0.01, testutil.Seconds(2, sampleRate))

	res, err := Analyze(x)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	rec := res.Record
	if rec.AvgDB >= 50 {
		t.Fatalf("AvgDB = %.2f, want < 50", rec.AvgDB)
	}
	if rec.Label != classify.Quiet {
		t.Fatalf("Label = %v, want Quiet", rec.Label)
	}
	if d := math.Abs(rec.DominantFrequency - 440); d > res.Spectrum.BinWidth() {
		t.Fatalf("DominantFrequency = %.2f, want within %.2f of 440", rec.DominantFrequency, res.Spectrum.BinWidth())
	}
	if rec.Duration != 2*time.Second {
		t.Fatalf("Duration = %v, want 2s", rec.Duration)
	}
	if len(res.Loudness) != 42 || len(res.Smoothed) != 42 {
		t.Fatalf("series lengths = %d/%d, want 42", len(res.Loudness), len(res.Smoothed))
	}
	if res.Spectrum.Len() != 1025 {
		t.Fatalf("spectrum bins = %d, want 1025", res.Spectrum.Len())
	}
}

func TestAnalyzeNoisyNoise(t *testing.T) {
	noise := testutil.DeterministicGaussianNoise(42, 0.3, testutil.Seconds(2, sampleRate))
	tone := testutil.DeterministicSine(440, sampleRate, 0.3, testutil.Seconds(2, sampleRate))

	rn, err := Analyze(noise)
	if err != nil {
		t.Fatal(err)
	}
	rt, err := Analyze(tone)
	if err != nil {
		t.Fatal(err)
	}

	if rn.Record.Label != classify.Noisy {
		t.Fatalf("noise Label = %v (%.2f dB), want Noisy", rn.Record.Label, rn.Record.AvgDB)
	}
	if rt.Record.SpectralFlatness >= rn.Record.SpectralFlatness {
		t.Fatalf("tone flatness %.3f >= noise flatness %.3f", rt.Record.SpectralFlatness, rn.Record.SpectralFlatness)
	}
	if math.Abs(1-rn.Record.SpectralFlatness) >= math.Abs(1-rt.Record.SpectralFlatness) {
		t.Fatal("noise flatness is not closer to 1 than tone flatness")
	}

	sum := rn.Record.LowFreqRatio + rn.Record.MidFreqRatio + rn.Record.HighFreqRatio
	if math.Abs(sum-1) > 1e-6 {
		t.Fatalf("band ratio sum = %v", sum)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	x := testutil.DeterministicNoise(5, 0.1, 30000)

	a, err := Analyze(x)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Analyze(x)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Record, b.Record) {
		t.Fatalf("records differ:\n%+v\n%+v", a.Record, b.Record)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	res, err := Analyze(make([]float64, sampleRate))
	if err != nil {
		t.Fatal(err)
	}

	rec := res.Record
	testutil.RequireFinite(t, rec.Values())

	if !rec.Degenerate {
		t.Fatal("expected Degenerate for silence")
	}
	if rec.Label != classify.Quiet {
		t.Fatalf("Label = %v, want Quiet", rec.Label)
	}
	if rec.NoiseType != classify.Silence || math.Abs(rec.Confidence-0.75) > 1e-9 {
		t.Fatalf("NoiseType/Confidence = %q/%v, want Silence/0.75", rec.NoiseType, rec.Confidence)
	}
	if rec.LowFreqRatio != rec.MidFreqRatio || rec.MidFreqRatio != rec.HighFreqRatio {
		t.Fatalf("band ratios differ: %v %v %v", rec.LowFreqRatio, rec.MidFreqRatio, rec.HighFreqRatio)
	}
}

func TestAnalyzeShortInput(t *testing.T) {
	res, err := Analyze([]float64{0.1, -0.1, 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Loudness) != 1 {
		t.Fatalf("len(Loudness) = %d, want 1", len(res.Loudness))
	}
	testutil.RequireFinite(t, res.Record.Values())
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	x := testutil.DeterministicNoise(8, 0.5, 10000)
	orig := append([]float64(nil), x...)

	if _, err := Analyze(x); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestAnalyzeInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		opts    []Option
	}{
		{"empty", nil, nil},
		{"zero rate", []float64{1}, []Option{WithSampleRate(0)}},
		{"negative rate", []float64{1}, []Option{WithSampleRate(-44100)}},
		{"bad bands", []float64{1}, []Option{WithBands(frequencystats.Bands{Low: 4000, High: 250})}},
		{"bad thresholds", []float64{1}, []Option{WithThresholds(classify.Thresholds{QuietUpper: 70, NormalUpper: 50})}},
		{"nan sample", []float64{0.1, math.NaN(), 0.1}, nil},
		{"inf sample", []float64{math.Inf(-1)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(tt.samples, tt.opts...); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStageErrorMapping(t *testing.T) {
	_, summaryErr := timestats.Summarize(nil)

	tests := []struct {
		name      string
		err       error
		want      error
		wantCause error
	}{
		{"empty summary", summaryErr, ErrEmptyInput, timestats.ErrEmptySeries},
		{"empty loudness", loudness.ErrEmptySeries, ErrEmptyInput, loudness.ErrEmptySeries},
		{"empty spectrum", frequencystats.ErrEmptySpectrum, ErrEmptyInput, frequencystats.ErrEmptySpectrum},
		{"bad window", loudness.ErrInvalidWindow, ErrInvalidInput, loudness.ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := stageError(tt.err)
			if !errors.Is(err, tt.want) || !errors.Is(err, tt.wantCause) {
				t.Fatalf("stageError(%v) = %v, want %v wrapping %v", tt.err, err, tt.want, tt.wantCause)
			}
		})
	}
}

func TestValidateSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFTSize = 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fft size 1: err = %v", err)
	}

	cfg = DefaultConfig()
	cfg.LoudnessWindow = 1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("window 1: err = %v", err)
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestEdgeCompensationRaisesMean(t *testing.T) {
	x := testutil.DeterministicSine(440, sampleRate, 0.01, testutil.Seconds(2, sampleRate))

	plain, err := Analyze(x)
	if err != nil {
		t.Fatal(err)
	}
	comp, err := Analyze(x, WithEdgeCompensation())
	if err != nil {
		t.Fatal(err)
	}

	if comp.Record.AvgDB <= plain.Record.AvgDB {
		t.Fatalf("compensated mean %.2f <= plain %.2f", comp.Record.AvgDB, plain.Record.AvgDB)
	}
	if math.Abs(comp.Record.AvgDB-plain.Loudness[0]) > 0.1 {
		t.Fatalf("compensated mean %.2f, want close to window level %.2f", comp.Record.AvgDB, plain.Loudness[0])
	}
}

func TestRecordMap(t *testing.T) {
	rec := FeatureRecord{AvgDB: 1, HighFreqRatio: 13}
	m := rec.Map()

	names := FeatureNames()
	if len(m) != len(names) || len(names) != 13 {
		t.Fatalf("len(Map) = %d, len(names) = %d", len(m), len(names))
	}
	for _, name := range names {
		if _, ok := m[name]; !ok {
			t.Fatalf("missing key %q", name)
		}
	}
	if m["avg_db"] != 1 || m["high_freq_ratio"] != 13 {
		t.Fatalf("Map() = %v", m)
	}

	names[0] = "mutated"
	if FeatureNames()[0] != "avg_db" {
		t.Fatal("FeatureNames returned shared slice")
	}
}
