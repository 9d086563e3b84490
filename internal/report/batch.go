package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pair is one input/output file pair for batch cleaning.
type Pair struct {
	Input  string
	Output string
}

// BatchCleaner cleans multiple report files concurrently. Each file pair is
// independent, so runs proceed in parallel up to the concurrency limit; a
// failed file does not stop the rest of the batch.
type BatchCleaner struct {
	// cleaner performs the per-file transformation.
	cleaner *Cleaner

	// concurrency caps the number of files cleaned simultaneously.
	concurrency int

	// logger receives batch-level progress output.
	logger *slog.Logger

	// results holds per-pair outcomes, indexed to match the input order.
	results []Result
	mu      sync.Mutex
}

// BatchOption configures a BatchCleaner.
type BatchOption func(*BatchCleaner)

// WithConcurrency sets the maximum number of concurrent file cleans.
// Values below one are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchCleaner) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger for batch progress output.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchCleaner) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchCleaner creates a BatchCleaner around the given Cleaner.
// The default concurrency is 4.
func NewBatchCleaner(cleaner *Cleaner, opts ...BatchOption) *BatchCleaner {
	b := &BatchCleaner{
		cleaner:     cleaner,
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CleanAll cleans every pair, respecting the concurrency limit and context
// cancellation. Results are returned in input order. Per-file failures are
// collected and joined into the returned error; successful pairs still
// produce results when other pairs fail.
func (b *BatchCleaner) CleanAll(ctx context.Context, pairs []Pair) ([]Result, error) {
	b.logger.Info("starting batch clean",
		"total_files", len(pairs),
		"concurrency", b.concurrency,
	)

	start := time.Now()

	b.results = make([]Result, len(pairs))
	fileErrs := make([]error, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := b.cleaner.CleanFile(pair.Input, pair.Output)
			if err != nil {
				b.logger.Warn("clean failed",
					"input", pair.Input,
					"error", err,
				)
				b.mu.Lock()
				fileErrs[i] = fmt.Errorf("%s: %w", pair.Input, err)
				b.mu.Unlock()
				return nil
			}

			b.mu.Lock()
			b.results[i] = result
			b.mu.Unlock()

			b.logger.Debug("clean completed",
				"input", pair.Input,
				"removed", result.Removed,
			)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch clean complete",
		"total_files", len(pairs),
		"elapsed", time.Since(start),
	)

	if err != nil {
		return b.results, err
	}
	return b.results, errors.Join(fileErrs...)
}
