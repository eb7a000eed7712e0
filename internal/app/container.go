package app

import (
	"context"
	"fmt"

	"github.com/hotker/blog-collector-go/internal/collector"
	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/cover"
	"github.com/hotker/blog-collector-go/internal/editorial"
	"github.com/hotker/blog-collector-go/internal/ledger"
	"github.com/hotker/blog-collector-go/internal/persona"
	"github.com/hotker/blog-collector-go/internal/pipeline"
	"github.com/hotker/blog-collector-go/internal/provider"
	"github.com/hotker/blog-collector-go/internal/publisher"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Container bundles the assembled pipeline and its cleanup hooks.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Driver *pipeline.Driver

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all services for one pipeline run. All heavy-weight
// initialization (API clients, ledger backends) happens here so the driver
// stays focused on sequencing.
func Build(ctx context.Context, cfg *config.Config, sources *config.Sources, logger *zap.Logger) (container *Container, err error) {
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

	// Text generation backends, primary first.
	openaiProvider := provider.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger)

	var geminiProvider *provider.GeminiProvider
	var genaiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		geminiProvider, err = provider.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		genaiClient = geminiProvider.Client()
	}

	var providers []provider.Provider
	if openaiProvider != nil {
		providers = append(providers, openaiProvider)
	}
	if cfg.Gemini.EnableFallback && geminiProvider != nil {
		providers = append(providers, geminiProvider)
		logger.Info("Gemini fallback enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Info("Gemini fallback disabled")
	}

	gateway := provider.NewGateway(logger, providers...)

	// Editorial room
	registry := persona.NewRegistry(cfg.Editorial.EnabledPersonas)
	orchestrator := editorial.NewOrchestrator(gateway, registry, cfg.Editorial, logger)

	// Dedup ledger
	var led ledger.Ledger
	switch cfg.Ledger.Backend {
	case "redis":
		redisLedger, redisErr := ledger.NewRedisLedger(ctx, ledger.RedisLedgerConfig{
			Host:     cfg.Ledger.Redis.Host,
			Port:     cfg.Ledger.Redis.Port,
			Password: cfg.Ledger.Redis.Password,
			DB:       cfg.Ledger.Redis.DB,
		}, logger)
		if redisErr != nil {
			return nil, fmt.Errorf("failed to create redis ledger: %w", redisErr)
		}
		closers = append(closers, func() {
			_ = redisLedger.Close()
		})
		led = redisLedger
	default:
		fileLedger, fileErr := ledger.NewFileLedger(cfg.Ledger.FilePath)
		if fileErr != nil {
			return nil, fmt.Errorf("failed to open ledger file: %w", fileErr)
		}
		led = fileLedger
	}

	// Collection and publication edges
	articleCollector := collector.NewCollector(sources.Sources, logger)
	coverResolver := cover.NewResolver(gateway, genaiClient, cfg.Cover, logger)

	githubPublisher, err := publisher.NewGitHubPublisher(ctx, cfg.GitHub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create github publisher: %w", err)
	}

	driver := pipeline.NewDriver(
		articleCollector,
		orchestrator,
		coverResolver,
		githubPublisher,
		led,
		registry,
		pipeline.Config{
			MaxArticlesPerRun: cfg.Pipeline.MaxArticlesPerRun,
			CandidateLimit:    cfg.Pipeline.CandidateLimit,
			MinContentLength:  cfg.Pipeline.MinContentLength,
			MaxArticleAge:     cfg.Pipeline.MaxArticleAge,
			PostDir:           cfg.GitHub.PostDir,
		},
		logger,
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Driver:  driver,
		closers: closers,
	}, nil
}
