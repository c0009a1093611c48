package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsTriage/internal/logging"
	"NewsTriage/internal/ports"
)

// ErrNoSource is returned when the fetcher has nothing to pull from.
var ErrNoSource = errors.New("no article source configured")

// Fetcher pulls raw articles from a source and stores them as the input artifact.
type Fetcher struct {
	source ports.ArticleSource
	writer ports.RawArticleWriter
	logger *slog.Logger
}

// NewFetcher wires a source to the artifact writer.
func NewFetcher(source ports.ArticleSource, writer ports.RawArticleWriter, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Fetcher{source: source, writer: writer, logger: logger}
}

// Run fetches and persists the raw article list, returning how many were written.
func (f *Fetcher) Run(ctx context.Context) (int, error) {
	if f.source == nil {
		return 0, ErrNoSource
	}

	articles, err := f.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch articles: %w", err)
	}
	if err := f.writer.SaveArticles(ctx, articles); err != nil {
		return 0, fmt.Errorf("save articles: %w", err)
	}

	f.logger.Info("articles fetched", "count", len(articles))
	return len(articles), nil
}
