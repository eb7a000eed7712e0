package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotker/blog-collector-go/internal/app"
	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/util"
	"go.uber.org/zap"
)

const runTimeout = 30 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Blog collector starting...",
		zap.String("version", "1.0.0-go"),
		zap.String("target_repo", cfg.GitHub.TargetRepo),
		zap.Int("max_articles", cfg.Pipeline.MaxArticlesPerRun),
	)

	sources, err := config.LoadSources(cfg.Pipeline.SourcesFile)
	if err != nil {
		logger.Error("Failed to load sources", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Sources loaded", zap.Int("count", len(sources.Sources)))

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// A killed run leaves the in-flight article unpublished and the ledger
	// unchanged for it, which is safe: the next run picks it up again.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	container, err := app.Build(ctx, cfg, sources, logger)
	if err != nil {
		logger.Error("Failed to assemble pipeline", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	summary, err := container.Driver.Run(ctx)
	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Run complete",
		zap.Int("published", summary.Published),
		zap.Int("skipped", summary.Skipped),
	)
}
