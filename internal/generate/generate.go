// Package generate runs the collect-then-serialize sitemap pipeline.
package generate

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/d-kuro/git-sitemap/internal/collector"
	"github.com/d-kuro/git-sitemap/internal/errors"
	"github.com/d-kuro/git-sitemap/internal/history"
	"github.com/d-kuro/git-sitemap/internal/logging"
	"github.com/d-kuro/git-sitemap/internal/sitemap"
)

// Options describes a single run.
type Options struct {
	Root      string
	Collector collector.Config

	// Output is the destination file. Ignored when Writer is set.
	Output string
	// Writer receives the document instead of a file.
	Writer io.Writer

	// Lookup overrides the git history lookup.
	Lookup history.Lookup
	// Timestamp and GitTimeout configure the default git lookup.
	Timestamp  history.TimestampSource
	GitTimeout time.Duration

	Now    func() time.Time
	Logger *logging.Logger
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	URLs     []sitemap.URL
	Output   string
	Duration time.Duration
}

// Run collects pages under opts.Root and writes the sitemap.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithRun(runID)

	lookup := opts.Lookup
	if lookup == nil {
		lookup = history.NewGitLookup(
			history.WithTimestampSource(opts.Timestamp),
			history.WithTimeout(opts.GitTimeout),
		)
	}

	collectorOpts := []collector.Option{collector.WithLogger(logger)}
	if opts.Now != nil {
		collectorOpts = append(collectorOpts, collector.WithNow(opts.Now))
	}

	logger.Info("Starting sitemap run", "root", opts.Root, "base_url", opts.Collector.BaseURL)

	urls, err := collector.New(opts.Collector, lookup, collectorOpts...).Collect(ctx, opts.Root)
	if err != nil {
		logger.Error("Collecting pages failed", "error", err)
		return nil, errors.Wrap(err, "collect pages")
	}

	output := opts.Output
	if opts.Writer != nil {
		output = ""
		if err := sitemap.Encode(opts.Writer, urls); err != nil {
			return nil, errors.OutputWrite("writer", err)
		}
	} else {
		if output == "" {
			return nil, errors.Configuration("output path is required")
		}
		if err := sitemap.WriteFile(output, urls); err != nil {
			logger.Error("Writing sitemap failed", "output", output, "error", err)
			return nil, err
		}
	}

	res := &Result{
		RunID:    runID,
		URLs:     urls,
		Output:   output,
		Duration: time.Since(start),
	}
	logger.Info("Sitemap written", "output", output, "urls", len(urls), "duration", res.Duration)

	return res, nil
}
