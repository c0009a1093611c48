package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"NewsTriage/internal/config"
	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
)

var (
	// ErrInputNotFound means the input artifact does not exist.
	ErrInputNotFound = errors.New("input artifact not found")
	// ErrInputCorrupt means the input artifact is not a valid article list.
	ErrInputCorrupt = errors.New("input artifact is not valid JSON")
)

// JSONStore reads and writes the pipeline artifacts as indented JSON files.
type JSONStore struct {
	inputPath     string
	bucketsPath   string
	objectivePath string
}

var (
	_ ports.ArtifactStore    = (*JSONStore)(nil)
	_ ports.RawArticleWriter = (*JSONStore)(nil)
)

// NewJSONStore binds the configured file names.
func NewJSONStore(files config.FilesConfig) *JSONStore {
	return &JSONStore{
		inputPath:     files.Input,
		bucketsPath:   files.Buckets,
		objectivePath: files.Objective,
	}
}

// LoadArticles reads the raw article list.
func (s *JSONStore) LoadArticles(ctx context.Context) ([]domain.RawArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.inputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, s.inputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.inputPath, err)
	}

	var articles []domain.RawArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputCorrupt, s.inputPath, err)
	}
	return articles, nil
}

// SaveArticles writes a fetched raw article list as the input artifact.
func (s *JSONStore) SaveArticles(_ context.Context, articles []domain.RawArticle) error {
	if articles == nil {
		articles = []domain.RawArticle{}
	}
	return writeJSON(s.inputPath, articles)
}

// SaveBuckets writes the featured/best/worst artifact.
func (s *JSONStore) SaveBuckets(_ context.Context, buckets domain.BucketSet) error {
	return writeJSON(s.bucketsPath, buckets)
}

// SaveObjective writes the objective set, or a placeholder message when it is empty.
func (s *JSONStore) SaveObjective(_ context.Context, objective []domain.AnalyzedArticle) error {
	if len(objective) == 0 {
		return writeJSON(s.objectivePath, domain.ObjectivePlaceholder{Message: domain.NoObjectiveMessage})
	}
	return writeJSON(s.objectivePath, objective)
}

// LoadBuckets reads a previously written bucket artifact.
func (s *JSONStore) LoadBuckets(_ context.Context) (domain.BucketSet, error) {
	var set domain.BucketSet
	data, err := os.ReadFile(s.bucketsPath)
	if err != nil {
		return set, fmt.Errorf("read %s: %w", s.bucketsPath, err)
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("decode %s: %w", s.bucketsPath, err)
	}
	return set, nil
}

// LoadObjective reads the objective artifact. When the file holds the
// placeholder, the returned slice is empty and the message is set.
func (s *JSONStore) LoadObjective(_ context.Context) ([]domain.AnalyzedArticle, string, error) {
	data, err := os.ReadFile(s.objectivePath)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", s.objectivePath, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var placeholder domain.ObjectivePlaceholder
		if err := json.Unmarshal(trimmed, &placeholder); err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", s.objectivePath, err)
		}
		return []domain.AnalyzedArticle{}, placeholder.Message, nil
	}

	var articles []domain.AnalyzedArticle
	if err := json.Unmarshal(trimmed, &articles); err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", s.objectivePath, err)
	}
	return articles, "", nil
}

// writeJSON writes to a temporary file first and renames it into place so
// readers never observe a half-written artifact.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", path, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
