// Package batch analyzes many recordings in parallel with a fixed pool of
// workers. Each job decodes and analyzes its file privately; results come
// back in input order.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Usama2015/Noise-Environment-Monitor-App/analysis"
	"github.com/Usama2015/Noise-Environment-Monitor-App/audiofile"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dsp/core"
)

// Options configures a Runner.
type Options struct {
	// Workers is the pool size. Zero uses GOMAXPROCS.
	Workers int
	// Logger receives one event per file. Nil disables logging.
	Logger *zap.Logger
	// SampleRate is the rate files are converted to before analysis.
	SampleRate int
	// Analysis is applied after the sample rate option.
	Analysis []analysis.Option
}

// Entry is the outcome for one path.
type Entry struct {
	Path   string
	Result analysis.Result
	Err    error
}

// Runner runs the analysis over files.
type Runner struct {
	workers    int
	logger     *zap.Logger
	sampleRate int
	analysis   []analysis.Option

	load func(path string, rate int) (audiofile.Clip, error)
}

// New returns a Runner. Unset options take their defaults.
func New(opts Options) *Runner {
	r := &Runner{
		workers:    opts.Workers,
		logger:     opts.Logger,
		sampleRate: opts.SampleRate,
		analysis:   opts.Analysis,
		load:       audiofile.Load,
	}

	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.sampleRate <= 0 {
		r.sampleRate = int(core.DefaultSampleRate)
	}

	return r
}

// Run analyzes paths and returns one Entry per path in the same order.
//
// The error combines every per-file failure; entries for successful files
// are valid even when it is non-nil. Cancelling ctx stops dispatching new
// files, and undispatched entries carry ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string) ([]Entry, error) {
	entries := make([]Entry, len(paths))
	for i, p := range paths {
		entries[i].Path = p
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(r.workers, max(len(paths), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i].Result, entries[i].Err = r.analyzeFile(paths[i])
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(paths) && ctx.Err() == nil; next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		entries[i].Err = ctx.Err()
	}

	var errs error
	for _, e := range entries {
		if e.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Path, e.Err))
		}
	}

	if errs != nil {
		r.logger.Warn("batch finished with errors",
			zap.Int("files", len(paths)),
			zap.Int("failed", len(multierr.Errors(errs))),
		)
	}

	return entries, errs
}

func (r *Runner) analyzeFile(path string) (analysis.Result, error) {
	start := time.Now()

	clip, err := r.load(path, r.sampleRate)
	if err != nil {
		r.logger.Warn("decode failed", zap.String("path", path), zap.Error(err))
		return analysis.Result{}, err
	}

	opts := make([]analysis.Option, 0, len(r.analysis)+1)
	opts = append(opts, analysis.WithSampleRate(clip.SampleRate))
	opts = append(opts, r.analysis...)

	res, err := analysis.Analyze(clip.Samples, opts...)
	if err != nil {
		r.logger.Warn("analysis failed", zap.String("path", path), zap.Error(err))
		return analysis.Result{}, err
	}

	r.logger.Debug("analyzed",
		zap.String("path", path),
		zap.Stringer("label", res.Record.Label),
		zap.Float64("avg_db", res.Record.AvgDB),
		zap.Duration("audio", clip.Duration()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("degenerate", res.Record.Degenerate),
	)

	return res, nil
}
