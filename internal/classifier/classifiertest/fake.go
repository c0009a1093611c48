// Package classifiertest provides a scripted inference backend for tests.
package classifiertest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"NewsTriage/internal/config"
	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
)

// ErrUnavailable is returned for signals listed in Fake.Fail.
var ErrUnavailable = errors.New("classifiertest: model unavailable")

// Script is the canned output for one article.
type Script struct {
	Sentiment      string
	SentimentScore float64
	Veracity       string
	VeracityScore  float64
	Topic          string
	TopicScore     float64
	Emotions       []domain.LabelScore
	Summary        string
}

// Fake answers inference calls from scripts keyed by article title. Texts are
// matched by the "title. " prefix the analyzer builds; unmatched texts get Default.
type Fake struct {
	Models  config.ModelConfig
	Scripts map[string]Script
	Default Script
	// Fail lists signals ("sentiment", "veracity", "topic", "emotion", "summary") that error.
	Fail map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

var _ ports.Inference = (*Fake)(nil)

// New returns a Fake wired to the default model ids.
func New() *Fake {
	return &Fake{
		Models:  config.Default().Models,
		Scripts: map[string]Script{},
		Fail:    map[string]bool{},
	}
}

// Calls reports how many times a signal was invoked.
func (f *Fake) Calls(signal string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[signal]
}

func (f *Fake) record(signal string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[signal]++
	if f.Fail[signal] {
		return ErrUnavailable
	}
	return nil
}

func (f *Fake) script(text string) Script {
	for title, s := range f.Scripts {
		if strings.HasPrefix(text, title+". ") {
			return s
		}
	}
	return f.Default
}

// Classify serves the sentiment and veracity models.
func (f *Fake) Classify(_ context.Context, model, text string) ([]domain.LabelScore, error) {
	s := f.script(text)
	switch model {
	case f.Models.Sentiment:
		if err := f.record("sentiment"); err != nil {
			return nil, err
		}
		return []domain.LabelScore{{Label: s.Sentiment, Score: s.SentimentScore}}, nil
	case f.Models.Veracity:
		if err := f.record("veracity"); err != nil {
			return nil, err
		}
		return []domain.LabelScore{{Label: s.Veracity, Score: s.VeracityScore}}, nil
	}
	return nil, errors.New("classifiertest: unknown model " + model)
}

// Distribution serves the emotion model.
func (f *Fake) Distribution(_ context.Context, model, text string) ([]domain.LabelScore, error) {
	if model != f.Models.Emotion {
		return nil, errors.New("classifiertest: unknown model " + model)
	}
	if err := f.record("emotion"); err != nil {
		return nil, err
	}
	return append([]domain.LabelScore(nil), f.script(text).Emotions...), nil
}

// ZeroShot serves the topic model.
func (f *Fake) ZeroShot(_ context.Context, _ string, text string, _ []string) ([]domain.LabelScore, error) {
	if err := f.record("topic"); err != nil {
		return nil, err
	}
	s := f.script(text)
	return []domain.LabelScore{{Label: s.Topic, Score: s.TopicScore}}, nil
}

// Summarize serves the summary model.
func (f *Fake) Summarize(_ context.Context, _ string, text string, _, _ int) (string, error) {
	if err := f.record("summary"); err != nil {
		return "", err
	}
	return f.script(text).Summary, nil
}
