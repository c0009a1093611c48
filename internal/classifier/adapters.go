// Package classifier wraps the inference backend into one adapter per signal.
// Adapters never return errors: a failing call is logged and replaced by a
// sentinel result so that every analyzed article stays well-formed.
package classifier

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
)

// SummaryUnavailable replaces the summary when the summarizer fails.
const SummaryUnavailable = "Summary not available."

type adapter struct {
	signal  string
	model   string
	backend ports.Inference
	logger  *slog.Logger
}

func (a adapter) fail(err error) {
	if a.logger != nil {
		a.logger.Warn("classifier failed", "signal", a.signal, "model", a.model, "error", err)
	}
}

func best(scores []domain.LabelScore) (domain.LabelScore, bool) {
	if len(scores) == 0 {
		return domain.LabelScore{}, false
	}
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return top, true
}

// Sentiment scores text on the 1-5 star scale.
type Sentiment struct{ adapter }

// Classify returns the top star label, e.g. "4 stars".
func (s *Sentiment) Classify(ctx context.Context, text string) domain.ClassifierResult {
	scores, err := s.backend.Classify(ctx, s.model, text)
	if err != nil {
		s.fail(err)
		return domain.SentinelResult()
	}
	top, ok := best(scores)
	if !ok {
		s.fail(errNoPrediction)
		return domain.SentinelResult()
	}
	return domain.ClassifierResult{Label: top.Label, Score: top.Score}
}

// Veracity translates the fake-news model's positional tokens into a verdict.
type Veracity struct {
	adapter
	trueToken  string
	falseToken string
}

// Classify returns VeracityTrue, VeracityFalse or VeracityUnknown with its confidence.
func (v *Veracity) Classify(ctx context.Context, text string) domain.VeracityResult {
	scores, err := v.backend.Classify(ctx, v.model, text)
	if err != nil {
		v.fail(err)
		return domain.VeracityResult{Verdict: domain.VeracityUnknown}
	}
	top, ok := best(scores)
	if !ok {
		v.fail(errNoPrediction)
		return domain.VeracityResult{Verdict: domain.VeracityUnknown}
	}
	return domain.VeracityResult{Verdict: v.translate(top.Label), Score: top.Score}
}

func (v *Veracity) translate(token string) domain.Veracity {
	switch token {
	case v.falseToken:
		return domain.VeracityFalse
	case v.trueToken:
		return domain.VeracityTrue
	default:
		return domain.VeracityUnknown
	}
}

// Topic picks one label out of a fixed candidate set.
type Topic struct {
	adapter
	labels []string
}

// Classify returns the single best topic and its confidence.
func (t *Topic) Classify(ctx context.Context, text string) domain.ClassifierResult {
	scores, err := t.backend.ZeroShot(ctx, t.model, text, t.labels)
	if err != nil {
		t.fail(err)
		return domain.SentinelResult()
	}
	top, ok := best(scores)
	if !ok {
		t.fail(errNoPrediction)
		return domain.SentinelResult()
	}
	return domain.ClassifierResult{Label: top.Label, Score: top.Score}
}

// Emotion returns the full emotion distribution.
type Emotion struct{ adapter }

// Classify returns the dominant emotion with the ranking sorted by score, highest first.
func (e *Emotion) Classify(ctx context.Context, text string) domain.ClassifierResult {
	scores, err := e.backend.Distribution(ctx, e.model, text)
	if err != nil {
		e.fail(err)
		return emptyEmotion()
	}
	if len(scores) == 0 {
		e.fail(errNoPrediction)
		return emptyEmotion()
	}

	ranked := make([]domain.LabelScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	return domain.ClassifierResult{Label: ranked[0].Label, Score: ranked[0].Score, Ranking: ranked}
}

func emptyEmotion() domain.ClassifierResult {
	r := domain.SentinelResult()
	r.Ranking = []domain.LabelScore{}
	return r
}

// Summary condenses text, leaving short inputs untouched.
type Summary struct {
	adapter
	maxLength int
	minLength int
}

// Summarize returns the input unchanged when it has fewer than minLength/2
// words, SummaryUnavailable on failure, and the model summary otherwise.
func (s *Summary) Summarize(ctx context.Context, text string) string {
	if float64(len(strings.Fields(text))) < float64(s.minLength)/2 {
		return text
	}

	summary, err := s.backend.Summarize(ctx, s.model, text, s.maxLength, s.minLength)
	if err != nil {
		s.fail(err)
		return SummaryUnavailable
	}
	if strings.TrimSpace(summary) == "" {
		s.fail(errNoPrediction)
		return SummaryUnavailable
	}
	return summary
}
