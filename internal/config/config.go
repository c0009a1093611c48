package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"NewsTriage/internal/domain"
)

const (
	configPathEnv    = "NEWS_TRIAGE_CONFIG"
	inferenceKeyEnv  = "HUGGINGFACE_API_KEY"
	gnewsKeyEnv      = "GNEWS_API_KEY"
	databaseDSNEnv   = "DATABASE_DSN"
	logLevelEnv      = "LOG_LEVEL"
	defaultEndpoint  = "https://api-inference.huggingface.co"
	defaultGNewsBase = "https://gnews.io/api/v4/top-headlines"
)

const unsetThreshold = -1

// DefaultTopics is the zero-shot candidate label set.
var DefaultTopics = []string{
	"health", "technology", "education", "sports", "economy",
	"entertainment", "politics", "science", "environment", "culture",
}

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Files      FilesConfig      `yaml:"files"`
	Inference  InferenceConfig  `yaml:"inference"`
	Models     ModelConfig      `yaml:"models"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Database   DatabaseConfig   `yaml:"database"`
	Sources    SourcesConfig    `yaml:"sources"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FilesConfig names the input artifact and the two output artifacts.
type FilesConfig struct {
	Input     string `yaml:"input"`
	Buckets   string `yaml:"buckets"`
	Objective string `yaml:"objective"`
}

// InferenceConfig describes the hosted model endpoint.
type InferenceConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	APIKey        string        `yaml:"apiKey"`
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retryAttempts"`
	RetryDelay    time.Duration `yaml:"retryDelay"`
}

// ModelConfig maps every signal to a model id.
type ModelConfig struct {
	Sentiment string `yaml:"sentiment"`
	Veracity  string `yaml:"veracity"`
	Topic     string `yaml:"topic"`
	Emotion   string `yaml:"emotion"`
	Summary   string `yaml:"summary"`
}

// ClassifierConfig carries the triage thresholds and label conventions.
type ClassifierConfig struct {
	Topics                 []string                   `yaml:"topics"`
	FalseToken             string                     `yaml:"falseToken"`
	TrueToken              string                     `yaml:"trueToken"`
	LowConfidenceThreshold float64                    `yaml:"lowConfidenceThreshold"`
	LowConfidencePolicy    domain.LowConfidencePolicy `yaml:"lowConfidencePolicy"`
	SummaryMaxLength       int                        `yaml:"summaryMaxLength"`
	SummaryMinLength       int                        `yaml:"summaryMinLength"`
	NeutralSentimentLabel  string                     `yaml:"neutralSentimentLabel"`
	Workers                int                        `yaml:"workers"`
}

// DatabaseConfig describes the optional Postgres archive. Empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SourcesConfig groups raw-article sources used by the fetch command.
type SourcesConfig struct {
	GNews GNewsConfig `yaml:"gnews"`
	Feeds []string    `yaml:"feeds"`
}

// GNewsConfig holds GNews search API parameters.
type GNewsConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Query    string `yaml:"query"`
	Lang     string `yaml:"lang"`
	Max      int    `yaml:"max"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over NEWS_TRIAGE_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			// A threshold absent from the file stays negative; 0 is a valid setting.
			fileCfg := Config{Classifier: ClassifierConfig{LowConfidenceThreshold: unsetThreshold}}
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(inferenceKeyEnv); v != "" {
		c.Inference.APIKey = v
	}
	if v := os.Getenv(gnewsKeyEnv); v != "" {
		c.Sources.GNews.APIKey = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalize() {
	if !c.Classifier.LowConfidencePolicy.Valid() {
		log.Printf("config: unknown lowConfidencePolicy %q, reverting to %s",
			c.Classifier.LowConfidencePolicy, domain.PolicyAnnotate)
		c.Classifier.LowConfidencePolicy = domain.PolicyAnnotate
	}
	if c.Classifier.Workers < 1 {
		c.Classifier.Workers = 1
	}
	if c.Classifier.SummaryMinLength > c.Classifier.SummaryMaxLength {
		log.Printf("config: summaryMinLength %d exceeds summaryMaxLength %d, swapping",
			c.Classifier.SummaryMinLength, c.Classifier.SummaryMaxLength)
		c.Classifier.SummaryMinLength, c.Classifier.SummaryMaxLength =
			c.Classifier.SummaryMaxLength, c.Classifier.SummaryMinLength
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Files.Input != "" {
		base.Files.Input = override.Files.Input
	}
	if override.Files.Buckets != "" {
		base.Files.Buckets = override.Files.Buckets
	}
	if override.Files.Objective != "" {
		base.Files.Objective = override.Files.Objective
	}

	if override.Inference.Endpoint != "" {
		base.Inference.Endpoint = override.Inference.Endpoint
	}
	if override.Inference.APIKey != "" {
		base.Inference.APIKey = override.Inference.APIKey
	}
	if override.Inference.Timeout > 0 {
		base.Inference.Timeout = override.Inference.Timeout
	}
	if override.Inference.RetryAttempts > 0 {
		base.Inference.RetryAttempts = override.Inference.RetryAttempts
	}
	if override.Inference.RetryDelay > 0 {
		base.Inference.RetryDelay = override.Inference.RetryDelay
	}

	if override.Models.Sentiment != "" {
		base.Models.Sentiment = override.Models.Sentiment
	}
	if override.Models.Veracity != "" {
		base.Models.Veracity = override.Models.Veracity
	}
	if override.Models.Topic != "" {
		base.Models.Topic = override.Models.Topic
	}
	if override.Models.Emotion != "" {
		base.Models.Emotion = override.Models.Emotion
	}
	if override.Models.Summary != "" {
		base.Models.Summary = override.Models.Summary
	}

	if len(override.Classifier.Topics) > 0 {
		base.Classifier.Topics = override.Classifier.Topics
	}
	if override.Classifier.FalseToken != "" {
		base.Classifier.FalseToken = override.Classifier.FalseToken
	}
	if override.Classifier.TrueToken != "" {
		base.Classifier.TrueToken = override.Classifier.TrueToken
	}
	if override.Classifier.LowConfidenceThreshold >= 0 {
		base.Classifier.LowConfidenceThreshold = override.Classifier.LowConfidenceThreshold
	}
	if override.Classifier.LowConfidencePolicy != "" {
		base.Classifier.LowConfidencePolicy = override.Classifier.LowConfidencePolicy
	}
	if override.Classifier.SummaryMaxLength > 0 {
		base.Classifier.SummaryMaxLength = override.Classifier.SummaryMaxLength
	}
	if override.Classifier.SummaryMinLength > 0 {
		base.Classifier.SummaryMinLength = override.Classifier.SummaryMinLength
	}
	if override.Classifier.NeutralSentimentLabel != "" {
		base.Classifier.NeutralSentimentLabel = override.Classifier.NeutralSentimentLabel
	}
	if override.Classifier.Workers > 0 {
		base.Classifier.Workers = override.Classifier.Workers
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Sources.GNews.Endpoint != "" {
		base.Sources.GNews.Endpoint = override.Sources.GNews.Endpoint
	}
	if override.Sources.GNews.APIKey != "" {
		base.Sources.GNews.APIKey = override.Sources.GNews.APIKey
	}
	if override.Sources.GNews.Query != "" {
		base.Sources.GNews.Query = override.Sources.GNews.Query
	}
	if override.Sources.GNews.Lang != "" {
		base.Sources.GNews.Lang = override.Sources.GNews.Lang
	}
	if override.Sources.GNews.Max > 0 {
		base.Sources.GNews.Max = override.Sources.GNews.Max
	}
	if len(override.Sources.Feeds) > 0 {
		base.Sources.Feeds = override.Sources.Feeds
	}

	return base
}

// Default returns the built-in configuration without file or env overrides.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Files: FilesConfig{
			Input:     "news.json",
			Buckets:   "news_filtered.json",
			Objective: "news_objective.json",
		},
		Inference: InferenceConfig{
			Endpoint:      defaultEndpoint,
			Timeout:       60 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    5 * time.Second,
		},
		Models: ModelConfig{
			Sentiment: "nlptown/bert-base-multilingual-uncased-sentiment",
			Veracity:  "mrm8488/bert-tiny-finetuned-fake-news-detection",
			Topic:     "facebook/bart-large-mnli",
			Emotion:   "j-hartmann/emotion-english-distilroberta-base",
			Summary:   "facebook/bart-large-cnn",
		},
		Classifier: ClassifierConfig{
			Topics:                 append([]string(nil), DefaultTopics...),
			FalseToken:             "LABEL_0",
			TrueToken:              "LABEL_1",
			LowConfidenceThreshold: 0.30,
			LowConfidencePolicy:    domain.PolicyAnnotate,
			SummaryMaxLength:       150,
			SummaryMinLength:       40,
			NeutralSentimentLabel:  domain.NeutralSentimentLabel,
			Workers:                1,
		},
		Sources: SourcesConfig{
			GNews: GNewsConfig{
				Endpoint: defaultGNewsBase,
				Lang:     "en",
				Max:      10,
			},
		},
	}
}
