package pipeline

import (
	"context"
	"time"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Dispatcher triggers the processor for a finalized record. Async mode runs
// the pipeline on a bounded worker pool; sync mode runs it inline. Either
// way the caller's finalize path is already committed: pipeline errors and
// panics stay inside the dispatcher's failure domain.
type Dispatcher struct {
	processor *Processor
	workers   *pool.Pool
	async     bool
	timeout   time.Duration
	logger    *zap.Logger
}

func NewDispatcher(processor *Processor, async bool, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		processor: processor,
		workers:   pool.New().WithMaxGoroutines(2),
		async:     async,
		timeout:   constants.ReportConfig.PipelineTimeout,
		logger:    logger,
	}
}

// Dispatch implements session.ReportTrigger.
func (d *Dispatcher) Dispatch(recordID int64) {
	run := func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Report pipeline panicked",
					zap.Int64("record_id", recordID),
					zap.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.processor.ProcessLatest(ctx); err != nil {
			d.logger.Error("Report pipeline failed",
				zap.Int64("record_id", recordID),
				zap.Error(err),
			)
		}
	}

	if d.async {
		d.logger.Info("Dispatching report pipeline", zap.Int64("record_id", recordID))
		d.workers.Go(run)
		return
	}

	run()
}

// Wait blocks until every dispatched pipeline run has finished. Called
// during shutdown.
func (d *Dispatcher) Wait() {
	d.workers.Wait()
}
