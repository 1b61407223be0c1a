package pqharmonics

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/logging"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

// BatchResult is the outcome of one batch document.
type BatchResult struct {
	Path   string
	Report *models.DocumentReport
	Err    error
}

// Batch is the outcome of ProcessBatch. Results follow input order.
type Batch struct {
	RunID   string
	Results []BatchResult
}

// Reports returns the successful reports in input order.
func (b *Batch) Reports() []*models.DocumentReport {
	var out []*models.DocumentReport
	for _, r := range b.Results {
		if r.Err == nil && r.Report != nil {
			out = append(out, r.Report)
		}
	}
	return out
}

// Failed returns the results that carry an error.
func (b *Batch) Failed() []BatchResult {
	var out []BatchResult
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// ProcessBatch processes paths concurrently, at most opts.Workers at a
// time, each within opts.DocumentTimeout. A failing document never stops
// the others; its error is recorded in its result. Cancelling ctx stops
// documents that have not finished.
func ProcessBatch(ctx context.Context, paths []string, opts Options) *Batch {
	if opts.Config == nil {
		opts.Config = opts.ConfigOrDefault()
	}
	batch := &Batch{
		RunID:   uuid.NewString(),
		Results: make([]BatchResult, len(paths)),
	}
	log := logging.Logger().With(zap.String("run_id", batch.RunID))
	log.Info("batch start", zap.Int("documents", len(paths)), zap.Int("workers", opts.WorkerCount()))

	g := new(errgroup.Group)
	g.SetLimit(opts.WorkerCount())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			start := time.Now()
			docCtx, cancel := context.WithTimeout(ctx, opts.Timeout())
			defer cancel()

			report, err := Process(docCtx, path, opts)
			batch.Results[i] = BatchResult{Path: path, Report: report, Err: err}
			if err != nil {
				log.Error("document failed",
					zap.String("path", path),
					zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
					zap.Error(err))
				return nil
			}
			log.Info("document done",
				zap.String("path", path),
				zap.Int("violations", len(report.Violations)),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	_ = g.Wait()

	log.Info("batch done", zap.Int("failed", len(batch.Failed())))
	return batch
}
