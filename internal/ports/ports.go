package ports

import (
	"context"

	"NewsTriage/internal/domain"
)

// Inference runs hosted models. Implementations may fail; classifier adapters
// turn failures into sentinel results.
type Inference interface {
	// Classify returns the label distribution of a text-classification model,
	// ordered as the backend returned it.
	Classify(ctx context.Context, model, text string) ([]domain.LabelScore, error)
	// Distribution is Classify with the backend asked for every label, not
	// just its default top entries.
	Distribution(ctx context.Context, model, text string) ([]domain.LabelScore, error)
	// ZeroShot scores text against candidate labels in single-label mode,
	// highest score first.
	ZeroShot(ctx context.Context, model, text string, labels []string) ([]domain.LabelScore, error)
	// Summarize returns a summary bounded by maxLength/minLength tokens.
	Summarize(ctx context.Context, model, text string, maxLength, minLength int) (string, error)
}

// Analyzer classifies one raw article. ok is false when the article has no text.
type Analyzer interface {
	Analyze(ctx context.Context, raw domain.RawArticle) (article domain.AnalyzedArticle, ok bool)
}

// ArticleSource pulls raw articles from upstream providers.
type ArticleSource interface {
	Fetch(ctx context.Context) ([]domain.RawArticle, error)
}

// ArtifactStore loads the input artifact and persists the output artifacts.
type ArtifactStore interface {
	LoadArticles(ctx context.Context) ([]domain.RawArticle, error)
	SaveBuckets(ctx context.Context, buckets domain.BucketSet) error
	SaveObjective(ctx context.Context, objective []domain.AnalyzedArticle) error
}

// RawArticleWriter persists a fetched raw-article list as the input artifact.
type RawArticleWriter interface {
	SaveArticles(ctx context.Context, articles []domain.RawArticle) error
}

// ArticleArchive keeps triaged articles for history and downstream queries.
type ArticleArchive interface {
	// Seen reports which identity keys were archived by runs other than runID.
	Seen(ctx context.Context, runID string, keys []string) (map[string]bool, error)
	SaveTriaged(ctx context.Context, runID string, bucket domain.Bucket, article domain.AnalyzedArticle) error
}
