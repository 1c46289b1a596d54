// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchplot

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/addrummond/heap"
	"github.com/petenewcomb/benchplot/internal/sgpool"
	"go.uber.org/zap"
)

// DefaultConcurrency is the number of charts RenderAll draws at once unless
// told otherwise.
const DefaultConcurrency = 4

// Result is the outcome of rendering one chart in a batch.
type Result struct {
	Chart    string
	Path     string
	Duration time.Duration
	Err      error
}

type batchConfig struct {
	concurrency int
}

// A BatchOption configures RenderAll.
type BatchOption func(*batchConfig)

// WithConcurrency sets how many charts may be drawn at once. Values below one
// are treated as one.
func WithConcurrency(n int) BatchOption {
	return func(c *batchConfig) {
		c.concurrency = max(n, 1)
	}
}

type indexedResult struct {
	index  int
	result Result
}

func (a *indexedResult) Cmp(b *indexedResult) int {
	return cmp.Compare(a.index, b.index)
}

// RenderAll draws charts with r, several at a time. Each chart is rendered
// independently. After the first failure, or once ctx is done, no further
// charts are started; renders already running are allowed to finish. The returned results cover
// every chart that was started, in the order the charts were given, and the
// returned error is the first failure encountered.
func RenderAll(ctx context.Context, r Renderer, charts []*Chart, opts ...BatchOption) ([]Result, error) {
	cfg := batchConfig{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := zap.L()
	job := sgpool.NewJob(ctx)
	defer job.CancelAndWait()
	pool := sgpool.NewTaskPool(job, cfg.concurrency)

	// Renders finish in any order; hold results back until every earlier
	// chart has been reported.
	var pending heap.Heap[indexedResult, heap.Min]
	results := make([]Result, 0, len(charts))
	var firstErr error
	report := func(ir indexedResult) {
		heap.PushOrderable(&pending, ir)
		for {
			next, ok := heap.Peek(&pending)
			if !ok || next.index != len(results) {
				return
			}
			_, _ = heap.PopOrderable(&pending)
			results = append(results, next.result)
			if next.result.Err == nil {
				logger.Info("Chart written",
					zap.String("chart", next.result.Chart),
					zap.String("path", next.result.Path),
					zap.Duration("duration", next.result.Duration))
			}
		}
	}

	gather := sgpool.NewGather(
		func(ctx context.Context, ir indexedResult, err error) error {
			report(ir)
			if err != nil && firstErr == nil {
				firstErr = err
				return err
			}
			return nil
		},
	)

	started := 0
	for i, c := range charts {
		err := gather.Scatter(ctx, pool, func(ctx context.Context) (indexedResult, error) {
			startTime := time.Now()
			err := safeRender(ctx, r, c)
			return indexedResult{
				index: i,
				result: Result{
					Chart:    c.ID(),
					Path:     c.Output,
					Duration: time.Since(startTime),
					Err:      err,
				},
			}, err
		})
		if err != nil {
			break
		}
		started++
	}

	// Renders cannot be interrupted, so collect every one still running even
	// after a failure or cancellation.
	for job.InFlight() > 0 {
		_ = job.GatherAll(context.Background())
	}
	if firstErr == nil {
		if err := ctx.Err(); err != nil {
			firstErr = err
		}
	}

	logger.Info("Batch finished",
		zap.Int("charts", len(charts)),
		zap.Int("started", started),
		zap.Int("reported", len(results)),
		zap.Bool("failed", firstErr != nil))
	return results, firstErr
}

// safeRender turns a panicking renderer into an error for its chart.
func safeRender(ctx context.Context, r Renderer, c *Chart) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render %s: %w: %v", c.ID(), ErrRenderPanic, p)
		}
	}()
	return observedRender(ctx, r, c)
}
