package parser

import (
	"context"
	"fmt"
	"log/slog"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
	"NewsTriage/internal/scanner"
)

// StrategySource implements ArticleSource via a registered scanner strategy.
type StrategySource struct {
	registry *scanner.Registry
	strategy string
	request  scanner.Request
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource binds one named strategy and its request.
func NewStrategySource(reg *scanner.Registry, strategy string, req scanner.Request, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		strategy: strategy,
		request:  req,
		logger:   log,
	}
}

// Fetch runs the strategy and normalizes the text fields of every article.
func (s *StrategySource) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.strategy)
	if err != nil {
		return nil, err
	}

	s.debug("fetch articles", "scanner", s.strategy, "query", s.request.Query, "feeds", len(s.request.Feeds))
	results, err := strategy.Scan(ctx, s.request)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.strategy, err)
	}

	for i := range results {
		results[i].Title = CleanText(results[i].Title)
		if results[i].Image == "" {
			results[i].Image = FirstImage(results[i].Description)
		}
		results[i].Description = CleanText(results[i].Description)
		if results[i].Source.Name == "" {
			results[i].Source.Name = domain.DefaultSourceName
		}
	}

	if s.request.Max > 0 && len(results) > s.request.Max {
		results = results[:s.request.Max]
	}

	s.debug("strategy source done", "total_articles", len(results))
	return results, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
