package pipeline

import (
	"context"
	"fmt"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/report"
	"github.com/novatech/interview-agent-go/internal/scoring"
	"github.com/novatech/interview-agent-go/internal/service/mailer"
	"go.uber.org/zap"
)

// RecordSource reads back persisted interview records.
type RecordSource interface {
	MostRecent(ctx context.Context) (*domain.InterviewRecord, error)
}

// MarkOnceFunc claims a per-record delivery slot, returning true only for
// the first claim. It keeps report generation idempotent across re-runs.
type MarkOnceFunc func(ctx context.Context, recordID int64) (bool, error)

// Processor runs the post-interview stage: read the latest record, compute
// the scorecard, compose the report and hand it to delivery. Every failure
// past persistence is contained here; finalize never sees it.
type Processor struct {
	records   RecordSource
	marker    MarkOnceFunc
	engine    *scoring.Engine
	composer  *report.Composer
	deliverer mailer.Deliverer
	logger    *zap.Logger
}

func NewProcessor(
	records RecordSource,
	marker MarkOnceFunc,
	engine *scoring.Engine,
	composer *report.Composer,
	deliverer mailer.Deliverer,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		records:   records,
		marker:    marker,
		engine:    engine,
		composer:  composer,
		deliverer: deliverer,
		logger:    logger,
	}
}

// ProcessLatest evaluates and reports the most recently persisted record.
// A record without an email address is skipped as a no-op; a record whose
// delivery slot was already claimed is skipped as already reported.
func (p *Processor) ProcessLatest(ctx context.Context) error {
	record, err := p.records.MostRecent(ctx)
	if err != nil {
		return fmt.Errorf("failed to read latest record: %w", err)
	}
	if record == nil {
		p.logger.Warn("No interview records to process")
		return nil
	}

	if !record.HasEmail() {
		p.logger.Info("Record has no email address, skipping report",
			zap.Int64("record_id", record.ID),
		)
		return nil
	}

	if p.marker != nil {
		claimed, err := p.marker(ctx, record.ID)
		if err != nil {
			// Idempotence guard degraded; report anyway rather than
			// risk losing the candidate's result.
			p.logger.Warn("Sent-marker check failed, proceeding",
				zap.Int64("record_id", record.ID),
				zap.Error(err),
			)
		} else if !claimed {
			p.logger.Info("Report already sent for record, skipping",
				zap.Int64("record_id", record.ID),
			)
			return nil
		}
	}

	card := p.engine.Score(record.AnswersJoined)
	p.logger.Info("Record scored",
		zap.Int64("record_id", record.ID),
		zap.Int("confidence", card.Confidence),
		zap.Int("knowledge", card.Knowledge),
		zap.Int("placeholder_confidence", record.ConfidenceScore),
	)

	composed, err := p.composer.Compose(ctx, record, card)
	if err != nil {
		return fmt.Errorf("failed to compose report: %w", err)
	}

	deliverCtx, cancel := context.WithTimeout(ctx, constants.ReportConfig.DeliveryTimeout)
	defer cancel()

	if err := p.deliverer.Deliver(deliverCtx, composed); err != nil {
		// Logged, not retried; the persisted record is unaffected.
		p.logger.Error("Report delivery failed",
			zap.Int64("record_id", record.ID),
			zap.String("recipient", composed.Recipient),
			zap.Error(err),
		)
		return nil
	}

	return nil
}
