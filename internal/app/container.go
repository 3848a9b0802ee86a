package app

import (
	"context"
	"fmt"

	"github.com/novatech/interview-agent-go/internal/config"
	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/gateway"
	"github.com/novatech/interview-agent-go/internal/pipeline"
	"github.com/novatech/interview-agent-go/internal/report"
	"github.com/novatech/interview-agent-go/internal/scoring"
	"github.com/novatech/interview-agent-go/internal/script"
	"github.com/novatech/interview-agent-go/internal/service/ai"
	"github.com/novatech/interview-agent-go/internal/service/cache"
	"github.com/novatech/interview-agent-go/internal/service/database"
	"github.com/novatech/interview-agent-go/internal/service/interview"
	"github.com/novatech/interview-agent-go/internal/service/mailer"
	"github.com/novatech/interview-agent-go/internal/session"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the gateway.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Gateway    *gateway.Gateway
	Dispatcher *pipeline.Dispatcher

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (DB, cache, AI clients) happens here so the gateway and session code stay
// focused on interview logic.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Persistence
	postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	if err := postgresSvc.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	repo := interview.NewRepository(postgresSvc, logger)

	// Cache (report idempotence)
	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	// Narrative generation is optional: without any AI key the reports
	// carry the placeholder narrative.
	var generator report.NarrativeGenerator
	if cfg.Gemini.APIKey != "" || cfg.OpenAI.APIKey != "" {
		textManager, tmErr := ai.NewTextManager(ctx, ai.TextManagerConfig{
			GeminiAPIKey:   cfg.Gemini.APIKey,
			OpenAIAPIKey:   cfg.OpenAI.APIKey,
			GeminiModel:    cfg.Gemini.Model,
			OpenAIModel:    cfg.OpenAI.Model,
			EnableFallback: cfg.OpenAI.EnableFallback,
		}, logger)
		if tmErr != nil {
			return nil, fmt.Errorf("failed to create text manager: %w", tmErr)
		}
		generator = textManager
	} else {
		logger.Warn("No AI provider configured, reports will use the placeholder narrative")
	}

	// Scoring and report pipeline
	engine := scoring.NewEngine(logger)
	composer := report.NewComposer(generator, logger)
	deliverer := mailer.NewResendClient(nil, cfg.Resend.APIKey, cfg.Resend.From, logger)

	marker := func(markCtx context.Context, recordID int64) (bool, error) {
		key := fmt.Sprintf("report:sent:%d", recordID)
		return cacheSvc.MarkOnce(markCtx, key, constants.ReportConfig.SentMarkerTTL)
	}

	processor := pipeline.NewProcessor(repo, marker, engine, composer, deliverer, logger)
	dispatcher := pipeline.NewDispatcher(processor, cfg.Interview.AsyncReports, logger)

	// Conversational surface
	catalog := script.NewCatalog()
	registry := session.NewRegistry()
	gw := gateway.NewGateway(cfg.Gateway.ListenAddr, catalog, registry, repo, dispatcher, logger)

	logger.Info("Application services assembled",
		zap.Int("tools", registry.Count()),
		zap.Bool("async_reports", cfg.Interview.AsyncReports),
	)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Gateway:    gw,
		Dispatcher: dispatcher,
		closers:    closers,
	}, nil
}
