package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsTriage/internal/analyzer"
	"NewsTriage/internal/classifier"
	"NewsTriage/internal/config"
	"NewsTriage/internal/infrastructure/feed"
	"NewsTriage/internal/infrastructure/gnews"
	"NewsTriage/internal/infrastructure/ml"
	"NewsTriage/internal/infrastructure/parser"
	"NewsTriage/internal/infrastructure/storage"
	"NewsTriage/internal/logging"
	"NewsTriage/internal/scanner"
	"NewsTriage/internal/triage"
	"NewsTriage/internal/usecase"
)

// Application wires configs to use cases and owns the process-wide resources.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *classifier.Registry
	archive  *storage.PostgresRepository
	pipeline *usecase.Pipeline
}

// New builds the triage application. The classifier registry is created once
// here and shared by every article of the run.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	backend := ml.NewClient(cfg.Inference)
	registry := classifier.NewRegistry(backend, cfg.Models, cfg.Classifier, baseLogger)

	deps := usecase.PipelineDeps{
		Store:    storage.NewJSONStore(cfg.Files),
		Analyzer: analyzer.New(registry, cfg.Classifier, baseLogger.With("component", "analyzer")),
		Router:   triage.NewRouter(cfg.Classifier.LowConfidencePolicy),
		Refiner:  triage.NewRefiner(cfg.Classifier.NeutralSentimentLabel),
		Workers:  cfg.Classifier.Workers,
		Logger:   baseLogger.With("component", "pipeline"),
	}

	var archive *storage.PostgresRepository
	if cfg.Database.DSN != "" {
		db, err := storage.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			_ = registry.Close()
			return nil, err
		}
		archive = storage.NewPostgresRepository(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			_ = archive.Close()
			_ = registry.Close()
			return nil, err
		}
		deps.Archive = archive
		baseLogger.Info("archive enabled", "table", "triaged_articles")
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		registry: registry,
		archive:  archive,
		pipeline: usecase.NewPipeline(deps),
	}, nil
}

// Run performs a single batch triage run.
func (a *Application) Run(ctx context.Context) (usecase.Report, error) {
	return a.pipeline.Run(ctx)
}

// Close releases the classifier backend and the archive connection.
func (a *Application) Close() error {
	var errs []error
	if err := a.registry.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close classifiers: %w", err))
	}
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close archive: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Sources returns the registry of raw-article scanners known to the fetch command.
func Sources(cfg config.Config, logger *slog.Logger) *scanner.Registry {
	registry := scanner.NewRegistry()
	registry.Register(gnews.NewScanner(nil, cfg.Sources.GNews.Endpoint, cfg.Sources.GNews.APIKey))
	registry.Register(feed.NewScanner(logger.With("component", "scanner.rss")))
	return registry
}

// NewFetcher builds the fetch use case for the named source strategy.
func NewFetcher(cfg config.Config, strategy string, baseLogger *slog.Logger) *usecase.Fetcher {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	req := scanner.Request{
		Query:    cfg.Sources.GNews.Query,
		Language: cfg.Sources.GNews.Lang,
		Max:      cfg.Sources.GNews.Max,
		Feeds:    cfg.Sources.Feeds,
	}
	source := parser.NewStrategySource(Sources(cfg, baseLogger), strategy, req, baseLogger.With("component", "source"))
	return usecase.NewFetcher(source, storage.NewJSONStore(cfg.Files), baseLogger.With("component", "fetch"))
}
