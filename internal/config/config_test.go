package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"NewsTriage/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{configPathEnv, inferenceKeyEnv, gnewsKeyEnv, databaseDSNEnv, logLevelEnv} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load("")
	if cfg.Files.Input != "news.json" || cfg.Files.Buckets != "news_filtered.json" || cfg.Files.Objective != "news_objective.json" {
		t.Fatalf("unexpected default files: %+v", cfg.Files)
	}
	if cfg.Classifier.TrueToken != "LABEL_1" || cfg.Classifier.FalseToken != "LABEL_0" {
		t.Fatalf("unexpected tokens: %+v", cfg.Classifier)
	}
	if cfg.Classifier.LowConfidenceThreshold != 0.30 {
		t.Fatalf("unexpected threshold: %v", cfg.Classifier.LowConfidenceThreshold)
	}
	if cfg.Classifier.LowConfidencePolicy != domain.PolicyAnnotate {
		t.Fatalf("unexpected policy: %s", cfg.Classifier.LowConfidencePolicy)
	}
	if len(cfg.Classifier.Topics) != 10 {
		t.Fatalf("expected 10 topics, got %d", len(cfg.Classifier.Topics))
	}
	if cfg.Classifier.Workers != 1 {
		t.Fatalf("expected 1 worker, got %d", cfg.Classifier.Workers)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
files:
  input: in.json
inference:
  timeout: 5s
classifier:
  lowConfidencePolicy: inconclusive
  workers: 4
  topics: [sports, politics]
database:
  dsn: postgres://file
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(databaseDSNEnv, "postgres://env")
	t.Setenv(inferenceKeyEnv, "hf_token")

	cfg := Load(path)
	if cfg.Files.Input != "in.json" {
		t.Fatalf("expected file override, got %s", cfg.Files.Input)
	}
	if cfg.Files.Buckets != "news_filtered.json" {
		t.Fatalf("expected default to survive merge, got %s", cfg.Files.Buckets)
	}
	if cfg.Inference.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.Inference.Timeout)
	}
	if cfg.Classifier.LowConfidencePolicy != domain.PolicyInconclusive {
		t.Fatalf("unexpected policy: %s", cfg.Classifier.LowConfidencePolicy)
	}
	if cfg.Classifier.Workers != 4 {
		t.Fatalf("unexpected workers: %d", cfg.Classifier.Workers)
	}
	if len(cfg.Classifier.Topics) != 2 {
		t.Fatalf("unexpected topics: %v", cfg.Classifier.Topics)
	}
	if cfg.Database.DSN != "postgres://env" {
		t.Fatalf("env should win over file, got %s", cfg.Database.DSN)
	}
	if cfg.Inference.APIKey != "hf_token" {
		t.Fatalf("unexpected api key: %s", cfg.Inference.APIKey)
	}
}

func TestLoadThresholdPresence(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name string
		yaml string
		want float64
	}{
		{"zero disables the diagnostic", "classifier:\n  lowConfidenceThreshold: 0\n", 0},
		{"explicit value", "classifier:\n  lowConfidenceThreshold: 0.5\n", 0.5},
		{"absent keeps default", "classifier:\n  workers: 2\n", 0.30},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", tc.name, err)
		}
		if got := Load(path).Classifier.LowConfidenceThreshold; got != tc.want {
			t.Errorf("%s: threshold = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("classifier:\n  lowConfidencePolicy: drop\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)
	if cfg.Classifier.LowConfidencePolicy != domain.PolicyAnnotate {
		t.Fatalf("expected fallback to annotate, got %s", cfg.Classifier.LowConfidencePolicy)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.Models.Sentiment != Default().Models.Sentiment {
		t.Fatalf("expected default model, got %s", cfg.Models.Sentiment)
	}
}
