package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/halocline/station-map-etl/internal/domain"
	"github.com/halocline/station-map-etl/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw station record into an output event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Retry backoff bounds for failed cycles. A healthy cycle resets the delay.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
	backoff     time.Duration
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		backoff:     initialBackoff,
	}
}

// CheckReadiness returns nil once the pipeline has processed at least one
// record, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any records yet")
	}
	return nil
}

// Run executes ETL cycles until the context is cancelled. A failed cycle is
// retried after an exponentially growing delay.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for ctx.Err() == nil {
		err := p.runCycle(ctx)
		if err == nil || ctx.Err() != nil {
			continue
		}

		p.logger.Error("pipeline cycle failed", "error", err, "retry_in", p.backoff)
		if !sleepWithContext(ctx, p.backoff) {
			break
		}
		p.backoff = min(p.backoff*2, maxBackoff)
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// runCycle performs one extract-transform-load pass. A returned error puts
// the loop into backoff; a cycle that loads records resets it.
func (p *Pipeline) runCycle(ctx context.Context) error {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("extract batch: %w", err)
	}
	if len(rawBatch) == 0 {
		return nil
	}

	p.metrics.RecordsConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	p.backoff = initialBackoff

	outBatch, sources := p.transformBatch(ctx, rawBatch)
	if len(outBatch) == 0 {
		return nil
	}

	if err := p.loader.LoadBatch(ctx, outBatch); err != nil {
		// Nothing is committed: the records come around again.
		return fmt.Errorf("load batch of %d: %w", len(outBatch), err)
	}
	p.metrics.FeaturesProduced.Add(float64(len(outBatch)))

	for _, raw := range sources {
		p.commitOffset(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

// transformBatch converts each record, returning the successful events
// alongside their source events for offset commits. A record that fails to
// transform is skipped, counted, and committed so a malformed log line
// cannot wedge the stream.
func (p *Pipeline) transformBatch(ctx context.Context, rawBatch []domain.RawEvent) ([]domain.OutputEvent, []domain.RawEvent) {
	outBatch := make([]domain.OutputEvent, 0, len(rawBatch))
	sources := make([]domain.RawEvent, 0, len(rawBatch))

	for _, raw := range rawBatch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("transform failed, skipping record",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		outBatch = append(outBatch, out)
		sources = append(sources, raw)
	}

	return outBatch, sources
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
