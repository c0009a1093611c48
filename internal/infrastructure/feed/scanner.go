package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/scanner"
)

// Scanner reads RSS/Atom feeds and maps their items to raw articles.
type Scanner struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ scanner.Scanner = (*Scanner)(nil)

// NewScanner builds a feed scanner with a default gofeed parser.
func NewScanner(log *slog.Logger) *Scanner {
	return &Scanner{parser: gofeed.NewParser(), logger: log}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "rss"
}

// Scan parses every feed in req.Feeds. A broken feed is logged and skipped;
// the scan only fails when no feed could be read.
func (s *Scanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	if len(req.Feeds) == 0 {
		return nil, fmt.Errorf("no feeds configured")
	}

	var (
		articles []domain.RawArticle
		ok       int
		lastErr  error
	)
	for _, url := range req.Feeds {
		feed, err := s.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			lastErr = err
			if s.logger != nil {
				s.logger.Warn("parse feed failed", "feed", url, "error", err)
			}
			continue
		}
		ok++
		for _, item := range feed.Items {
			articles = append(articles, fromItem(feed, item))
		}
		if s.logger != nil {
			s.logger.Debug("feed loaded", "feed", url, "items", len(feed.Items))
		}
	}

	if ok == 0 {
		return nil, fmt.Errorf("all %d feeds failed: %w", len(req.Feeds), lastErr)
	}
	return articles, nil
}

func fromItem(feed *gofeed.Feed, item *gofeed.Item) domain.RawArticle {
	description := item.Description
	if description == "" {
		description = item.Content
	}

	return domain.RawArticle{
		Title:       item.Title,
		Description: description,
		URL:         item.Link,
		Image:       itemImage(item),
		Source: domain.RawSource{
			Name: strings.TrimSpace(feed.Title),
			URL:  feed.Link,
		},
	}
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
