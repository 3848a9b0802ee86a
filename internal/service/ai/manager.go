package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/util"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// TextManager fronts the narrative generators: Gemini primary, OpenAI
// fallback, with a shared circuit breaker so a failing upstream does not
// stall every report.
type TextManager struct {
	primary        TextProvider
	fallback       TextProvider
	enableFallback bool
	circuitBreaker *util.CircuitBreaker
	logger         *zap.Logger
}

type TextManagerConfig struct {
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GeminiModel    string
	OpenAIModel    string
	EnableFallback bool
}

func NewTextManager(ctx context.Context, cfg TextManagerConfig, logger *zap.Logger) (*TextManager, error) {
	if cfg.GeminiAPIKey == "" && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("no AI provider configured")
	}

	var primary TextProvider
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}

		model := cfg.GeminiModel
		if model == "" {
			model = "gemini-2.5-flash"
		}
		primary = NewGeminiProvider(client, model, logger)
	}

	openaiModel := cfg.OpenAIModel
	if openaiModel == "" {
		openaiModel = "gpt-4.1-mini"
	}
	openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, openaiModel, logger)

	tm := &TextManager{
		primary: primary,
		logger:  logger,
		circuitBreaker: util.NewCircuitBreaker(
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger,
		),
	}

	if tm.primary == nil {
		// OpenAI only: promote it to primary, no fallback tier.
		tm.primary = openaiProvider
		logger.Info("OpenAI configured as primary text provider", zap.String("model", openaiModel))
		return tm, nil
	}

	tm.enableFallback = cfg.EnableFallback && openaiProvider != nil
	if tm.enableFallback {
		tm.fallback = openaiProvider
		logger.Info("OpenAI fallback enabled", zap.String("model", openaiModel))
	} else {
		logger.Info("OpenAI fallback disabled")
	}

	return tm, nil
}

// GenerateText asks the primary provider for a completion, falling back
// once when enabled. Service failures feed the circuit breaker.
func (tm *TextManager) GenerateText(ctx context.Context, prompt string, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	if !tm.circuitBreaker.CanExecute() {
		status := tm.circuitBreaker.GetStatus()
		tm.logger.Error("Text generation unavailable (Circuit OPEN)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		)
		return "", nil, fmt.Errorf("text generation temporarily unavailable")
	}

	primaryResult, primaryErr := tm.primary.Generate(ctx, prompt, opts)
	if primaryErr == nil {
		tm.circuitBreaker.RecordSuccess()
		return primaryResult.Text, &GenerateMetadata{
			Provider: tm.primary.Name(),
			Model:    primaryResult.Model,
		}, nil
	}

	if tm.enableFallback && tm.fallback != nil {
		fallbackResult, fallbackErr := tm.fallback.Generate(ctx, prompt, opts)
		if fallbackErr == nil {
			tm.circuitBreaker.RecordSuccess()
			return fallbackResult.Text, &GenerateMetadata{
				Provider:     tm.fallback.Name(),
				Model:        fallbackResult.Model,
				UsedFallback: true,
			}, nil
		}

		tm.recordFailure(primaryErr)
		tm.recordFailure(fallbackErr)
		return "", nil, fallbackErr
	}

	tm.recordFailure(primaryErr)
	return "", nil, primaryErr
}

// GetCircuitStatus exposes the breaker snapshot for diagnostics.
func (tm *TextManager) GetCircuitStatus() util.CircuitBreakerStatus {
	return tm.circuitBreaker.GetStatus()
}

func (tm *TextManager) recordFailure(err error) {
	if err == nil {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}
	tm.circuitBreaker.RecordFailure(timeout)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota")
}
