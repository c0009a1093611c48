package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"NewsTriage/internal/config"
	"NewsTriage/internal/domain"
)

func newStore(t *testing.T) (*JSONStore, config.FilesConfig) {
	t.Helper()
	dir := t.TempDir()
	files := config.FilesConfig{
		Input:     filepath.Join(dir, "news.json"),
		Buckets:   filepath.Join(dir, "out", "news_filtered.json"),
		Objective: filepath.Join(dir, "out", "news_objective.json"),
	}
	return NewJSONStore(files), files
}

func sample(title, url string) domain.AnalyzedArticle {
	return domain.AnalyzedArticle{
		Title:               title,
		OriginalDescription: "desc & more",
		URL:                 url,
		ImageURL:            "https://img/" + title,
		SourceName:          "Wire",
		Sentiment:           "5 stars",
		SentimentConfidence: 0.91,
		StarRating:          5,
		Veracity:            domain.VeracityTrue,
		VeracityConfidence:  0.77,
		Category:            domain.CategoryGoodObjective,
		Topic:               "economy",
		TopicConfidence:     0.4,
		Emotion:             "neutral",
		EmotionConfidence:   0.8,
		EmotionDetails:      []domain.LabelScore{{Label: "neutral", Score: 0.8}, {Label: "joy", Score: 0.2}},
		Summary:             "summary",
	}
}

func TestLoadArticles(t *testing.T) {
	t.Parallel()

	store, files := newStore(t)
	raw := `[{"title":"A","description":null,"url":"https://a","image":"","source":{"name":"Src"}},{"title":"B"}]`
	if err := os.WriteFile(files.Input, []byte(raw), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	articles, err := store.LoadArticles(context.Background())
	if err != nil {
		t.Fatalf("LoadArticles error: %v", err)
	}
	if len(articles) != 2 || articles[0].Source.Name != "Src" || articles[1].SourceName() != domain.DefaultSourceName {
		t.Fatalf("unexpected articles: %+v", articles)
	}
}

func TestLoadArticlesErrors(t *testing.T) {
	t.Parallel()

	store, files := newStore(t)
	if _, err := store.LoadArticles(context.Background()); !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}

	if err := os.WriteFile(files.Input, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, err := store.LoadArticles(context.Background()); !errors.Is(err, ErrInputCorrupt) {
		t.Fatalf("expected ErrInputCorrupt, got %v", err)
	}
}

func TestBucketsRoundTrip(t *testing.T) {
	t.Parallel()

	store, files := newStore(t)
	set := domain.NewBucketSet()
	set.Add(domain.BucketFeatured, sample("one", "https://x/1"))
	set.Add(domain.BucketWorst, sample("two", "https://x/2"))

	if err := store.SaveBuckets(context.Background(), set); err != nil {
		t.Fatalf("SaveBuckets error: %v", err)
	}

	raw, err := os.ReadFile(files.Buckets)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	for _, key := range []string{`"featured"`, `"best": []`, `"worst"`, `"article_url"`, `"emotion_details"`, "desc & more"} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("artifact missing %s:\n%s", key, raw)
		}
	}
	if strings.Contains(string(raw), "inconclusive") {
		t.Fatalf("empty inconclusive bucket should be omitted:\n%s", raw)
	}

	got, err := store.LoadBuckets(context.Background())
	if err != nil {
		t.Fatalf("LoadBuckets error: %v", err)
	}
	if !reflect.DeepEqual(got, set) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, set)
	}
}

func TestSaveObjectivePlaceholder(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	if err := store.SaveObjective(context.Background(), nil); err != nil {
		t.Fatalf("SaveObjective error: %v", err)
	}

	articles, message, err := store.LoadObjective(context.Background())
	if err != nil {
		t.Fatalf("LoadObjective error: %v", err)
	}
	if len(articles) != 0 || message != domain.NoObjectiveMessage {
		t.Fatalf("expected placeholder, got %v %q", articles, message)
	}
}

func TestSaveObjectiveArticles(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	want := []domain.AnalyzedArticle{sample("one", "https://x/1")}
	if err := store.SaveObjective(context.Background(), want); err != nil {
		t.Fatalf("SaveObjective error: %v", err)
	}

	got, message, err := store.LoadObjective(context.Background())
	if err != nil {
		t.Fatalf("LoadObjective error: %v", err)
	}
	if message != "" || !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected objective artifact: %+v %q", got, message)
	}
}

func TestSaveArticles(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	in := []domain.RawArticle{{Title: "A", URL: "https://a", Source: domain.RawSource{Name: "S"}}}
	if err := store.SaveArticles(context.Background(), in); err != nil {
		t.Fatalf("SaveArticles error: %v", err)
	}
	got, err := store.LoadArticles(context.Background())
	if err != nil {
		t.Fatalf("LoadArticles error: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("unexpected articles: %+v", got)
	}
}
