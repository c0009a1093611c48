// Package analyzer turns one raw article into a fully populated AnalyzedArticle.
package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"NewsTriage/internal/classifier"
	"NewsTriage/internal/config"
	"NewsTriage/internal/domain"
	"NewsTriage/internal/logging"
	"NewsTriage/internal/ports"
	"NewsTriage/internal/triage"
)

// textSeparator joins title and description into the analysis text.
const textSeparator = ". "

// Analyzer runs every classifier over an article and composes the record.
type Analyzer struct {
	registry  *classifier.Registry
	threshold float64
	policy    domain.LowConfidencePolicy
	logger    *slog.Logger
}

var _ ports.Analyzer = (*Analyzer)(nil)

// New builds an Analyzer around a shared classifier registry.
func New(registry *classifier.Registry, opts config.ClassifierConfig, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Discard()
	}
	policy := opts.LowConfidencePolicy
	if !policy.Valid() {
		policy = domain.PolicyAnnotate
	}
	return &Analyzer{
		registry:  registry,
		threshold: opts.LowConfidenceThreshold,
		policy:    policy,
		logger:    logger,
	}
}

// Analyze classifies raw. The boolean is false when the article carries no
// text at all; such articles are skipped, not treated as errors.
func (a *Analyzer) Analyze(ctx context.Context, raw domain.RawArticle) (domain.AnalyzedArticle, bool) {
	if strings.TrimSpace(raw.Title) == "" && strings.TrimSpace(raw.Description) == "" {
		a.logger.Debug("skipping article without text", "url", raw.URL)
		return domain.AnalyzedArticle{}, false
	}
	text := raw.Title + textSeparator + raw.Description

	sentiment := a.registry.Sentiment.Classify(ctx, text)
	stars := ParseStars(sentiment.Label)

	lowConfidence := false
	if !sentiment.Sentinel() && sentiment.Score < a.threshold {
		lowConfidence = true
		a.logger.Warn("low sentiment confidence",
			"title", raw.Title,
			"label", sentiment.Label,
			"confidence", sentiment.Score,
			"threshold", a.threshold,
			"policy", a.policy,
		)
	}

	veracity := a.registry.Veracity.Classify(ctx, text)
	topic := a.registry.Topic.Classify(ctx, text)
	emotion := a.registry.Emotion.Classify(ctx, text)
	summary := a.registry.Summary.Summarize(ctx, text)

	category := triage.Resolve(stars, veracity.Verdict)
	if lowConfidence && a.policy == domain.PolicyUndetermined {
		category = domain.CategoryVeracityUndetermined
	}

	details := emotion.Ranking
	if details == nil {
		details = []domain.LabelScore{}
	}

	return domain.AnalyzedArticle{
		Title:               raw.Title,
		OriginalDescription: raw.Description,
		URL:                 raw.URL,
		ImageURL:            raw.Image,
		SourceName:          raw.SourceName(),
		Sentiment:           sentiment.Label,
		SentimentConfidence: sentiment.Score,
		StarRating:          stars,
		Veracity:            veracity.Verdict,
		VeracityConfidence:  veracity.Score,
		Category:            category,
		Topic:               topic.Label,
		TopicConfidence:     topic.Score,
		Emotion:             emotion.Label,
		EmotionConfidence:   emotion.Score,
		EmotionDetails:      details,
		Summary:             summary,
		LowConfidence:       lowConfidence,
	}, true
}

// ParseStars reads the star rating from a label such as "4 stars".
// Anything that does not start with a digit in 1..5 yields 0.
func ParseStars(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}
	c := label[0]
	if c < '1' || c > '5' {
		return 0
	}
	return int(c - '0')
}
