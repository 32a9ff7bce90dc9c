// Command noiseprobe analyzes recordings and classifies their noise level.
//
// Usage:
//
//	noiseprobe [flags] file ...
//	noiseprobe [flags] -metadata samples/metadata.csv
//
// Each file is decoded, converted to mono at -rate, and reported as one
// table row. Results can also be written as a training table.
//
// Examples:
//
//	noiseprobe library.wav street.mp3
//	noiseprobe -workers 8 -csv features.csv recordings/*.wav
//	noiseprobe -metadata samples/metadata.csv -parquet features.parquet -compression zstd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Usama2015/Noise-Environment-Monitor-App/analysis"
	"github.com/Usama2015/Noise-Environment-Monitor-App/batch"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dataset"
)

type options struct {
	rate        int
	window      int
	smooth      int
	nfft        int
	workers     int
	compensate  bool
	csvPath     string
	parquetPath string
	compression string
	metadata    string
	category    string
	verbose     bool
	jsonLogs    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("noiseprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.IntVar(&o.rate, "rate", 44100, "analysis sample rate in Hz")
	fs.IntVar(&o.window, "window", 4096, "loudness window in samples")
	fs.IntVar(&o.smooth, "smooth", 10, "moving-average length in windows")
	fs.IntVar(&o.nfft, "nfft", 2048, "FFT size")
	fs.IntVar(&o.workers, "workers", 0, "parallel files (0 = GOMAXPROCS)")
	fs.BoolVar(&o.compensate, "compensate-edges", false, "average only in-range levels at the series edges")
	fs.StringVar(&o.csvPath, "csv", "", "write features to this CSV file")
	fs.StringVar(&o.parquetPath, "parquet", "", "write features to this Parquet file")
	fs.StringVar(&o.compression, "compression", "snappy", "Parquet codec: snappy, zstd, gzip, brotli, lz4, none")
	fs.StringVar(&o.metadata, "metadata", "", "CSV with filename,category columns listing the files to analyze")
	fs.StringVar(&o.category, "category", "", "category recorded for files given as arguments")
	fs.BoolVar(&o.verbose, "v", false, "log every file")
	fs.BoolVar(&o.jsonLogs, "json", false, "log as JSON instead of console text")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: noiseprobe [flags] file ...\n\n")
		fmt.Fprintf(stderr, "Analyzes recordings and classifies their noise level.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := newLogger(o.verbose, o.jsonLogs, stderr)
	defer func() { _ = logger.Sync() }()

	inputs, err := collectInputs(o, fs.Args())
	if err != nil {
		logger.Error("reading inputs", zap.Error(err))
		return 1
	}
	if len(inputs) == 0 {
		fs.Usage()
		return 2
	}

	var parquetOpt dataset.ParquetOption
	if o.parquetPath != "" {
		if parquetOpt, err = dataset.WithCompression(o.compression); err != nil {
			logger.Error("invalid flag", zap.Error(err))
			return 2
		}
	}

	analysisOpts := []analysis.Option{
		analysis.WithLoudnessWindow(o.window),
		analysis.WithSmoothingWindow(o.smooth),
		analysis.WithFFTSize(o.nfft),
	}
	if o.compensate {
		analysisOpts = append(analysisOpts, analysis.WithEdgeCompensation())
	}

	runner := batch.New(batch.Options{
		Workers:    o.workers,
		Logger:     logger,
		SampleRate: o.rate,
		Analysis:   analysisOpts,
	})

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.path
	}

	entries, runErr := runner.Run(ctx, paths)

	rows := printTable(stdout, inputs, entries)

	if err := writeOutputs(o, parquetOpt, rows); err != nil {
		logger.Error("writing dataset", zap.Error(err))
		return 1
	}

	if runErr != nil {
		return 1
	}
	return 0
}
