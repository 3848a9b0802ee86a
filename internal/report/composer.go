package report

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/service/ai"
	"go.uber.org/zap"
)

// placeholderNarrative substitutes for generated feedback when every
// provider fails. The report still ships.
const placeholderNarrative = "<p>AI Analysis unavailable.</p>"

// NarrativeGenerator phrases the feedback sections of a report.
// *ai.TextManager satisfies it.
type NarrativeGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// Composer assembles the transport-ready assessment report for one record.
type Composer struct {
	generator NarrativeGenerator
	logger    *zap.Logger
}

func NewComposer(generator NarrativeGenerator, logger *zap.Logger) *Composer {
	return &Composer{
		generator: generator,
		logger:    logger,
	}
}

type badge struct {
	Label      string
	Background string
	Color      string
}

type scoreBar struct {
	Label string
	Score int
	Color string
}

type dashboardData struct {
	Badge     badge
	Bars      []scoreBar
	Narrative template.HTML
}

// Compose scores the status band, requests the narrative and renders the
// dashboard body. Narrative failure degrades to the placeholder; the only
// error path is template rendering itself.
func (c *Composer) Compose(ctx context.Context, record *domain.InterviewRecord, card domain.Scorecard) (*domain.Report, error) {
	average := card.Average()
	status := domain.StatusFor(average)

	narrative := c.narrativeFor(ctx, record, card)

	body, err := executeReportTemplate("report", dashboardData{
		Badge: badgeFor(status),
		Bars: []scoreBar{
			{Label: "Technical Knowledge", Score: card.Knowledge, Color: colorFor(card.Knowledge)},
			{Label: "Communication Confidence", Score: card.Confidence, Color: colorFor(card.Confidence)},
		},
		Narrative: template.HTML(narrative),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report body: %w", err)
	}

	subjectEmoji := "📊"
	if average > 75 {
		subjectEmoji = "🌟"
	}

	c.logger.Info("Report composed",
		zap.Int64("record_id", record.ID),
		zap.Int("average", average),
		zap.String("status", string(status)),
	)

	return &domain.Report{
		Recipient: record.CandidateEmail,
		Subject:   fmt.Sprintf("%s Interview Result: %s (Score: %d%%)", subjectEmoji, record.CandidateName, average),
		HTML:      body,
	}, nil
}

func (c *Composer) narrativeFor(ctx context.Context, record *domain.InterviewRecord, card domain.Scorecard) string {
	if c.generator == nil {
		return placeholderNarrative
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ReportConfig.NarrativeTimeout)
	defer cancel()

	text, metadata, err := c.generator.GenerateText(ctx, narrativePrompt(record, card), nil)
	if err != nil {
		c.logger.Warn("Narrative generation failed, using placeholder",
			zap.Int64("record_id", record.ID),
			zap.Error(err),
		)
		return placeholderNarrative
	}

	c.logger.Debug("Narrative generated",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
	)

	return stripCodeFences(text)
}

func narrativePrompt(record *domain.InterviewRecord, card domain.Scorecard) string {
	return fmt.Sprintf(`You are a Senior Tech Lead. Write a short, constructive feedback report (HTML) for %s.
Scores: Knowledge %d/100, Confidence %d/100.
Answers: %q

Structure:
<h3>🚀 Executive Summary</h3>
<p>2 sentences summary.</p>
<h3>💡 Key Strengths</h3>
<ul><li>Bullet point 1</li><li>Bullet point 2</li></ul>
<h3>🔧 Areas to Improve</h3>
<p>Constructive feedback.</p>

Keep it strictly HTML content (no <html> tags).`,
		record.CandidateName, card.Knowledge, card.Confidence, record.AnswersJoined)
}

// stripCodeFences removes markdown fence markers the generator may wrap its
// HTML fragment in.
func stripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```html", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func badgeFor(status domain.ReportStatus) badge {
	switch status {
	case domain.StatusRecommended:
		return badge{Label: "HIRE RECOMMENDED", Background: "#dcfce7", Color: "#166534"}
	case domain.StatusUnderReview:
		return badge{Label: "UNDER REVIEW", Background: "#fef9c3", Color: "#854d0e"}
	default:
		return badge{Label: "NEEDS IMPROVEMENT", Background: "#fee2e2", Color: "#991b1b"}
	}
}

// colorFor shares its thresholds with the status classification.
func colorFor(score int) string {
	switch {
	case score >= 75:
		return "#16a34a"
	case score >= 50:
		return "#ca8a04"
	default:
		return "#dc2626"
	}
}
