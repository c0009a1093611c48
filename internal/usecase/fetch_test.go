package usecase

import (
	"context"
	"errors"
	"testing"

	"NewsTriage/internal/domain"
)

type staticSource struct {
	articles []domain.RawArticle
	err      error
}

func (s staticSource) Fetch(context.Context) ([]domain.RawArticle, error) {
	return s.articles, s.err
}

type memoryWriter struct {
	saved []domain.RawArticle
	err   error
}

func (m *memoryWriter) SaveArticles(_ context.Context, a []domain.RawArticle) error {
	m.saved = a
	return m.err
}

func TestFetcherRun(t *testing.T) {
	t.Parallel()

	writer := &memoryWriter{}
	source := staticSource{articles: []domain.RawArticle{{Title: "a"}, {Title: "b"}}}

	n, err := NewFetcher(source, writer, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if n != 2 || len(writer.saved) != 2 {
		t.Fatalf("expected two saved articles, got %d/%d", n, len(writer.saved))
	}
}

func TestFetcherErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewFetcher(nil, &memoryWriter{}, nil).Run(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}

	fetchErr := errors.New("quota exceeded")
	writer := &memoryWriter{}
	if _, err := NewFetcher(staticSource{err: fetchErr}, writer, nil).Run(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if writer.saved != nil {
		t.Fatal("nothing may be written when the fetch fails")
	}

	writeErr := errors.New("read-only")
	if _, err := NewFetcher(staticSource{}, &memoryWriter{err: writeErr}, nil).Run(context.Background()); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
}
