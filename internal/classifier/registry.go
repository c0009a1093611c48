package classifier

import (
	"errors"
	"io"
	"log/slog"

	"NewsTriage/internal/config"
	"NewsTriage/internal/ports"
)

var errNoPrediction = errors.New("model returned no prediction")

// Registry owns the adapters for one process. Build it once, share it across
// articles and Close it when the run is over.
type Registry struct {
	Sentiment *Sentiment
	Veracity  *Veracity
	Topic     *Topic
	Emotion   *Emotion
	Summary   *Summary

	backend ports.Inference
}

// NewRegistry binds every adapter to its model on the given backend.
func NewRegistry(backend ports.Inference, models config.ModelConfig, opts config.ClassifierConfig, logger *slog.Logger) *Registry {
	base := func(signal, model string) adapter {
		var l *slog.Logger
		if logger != nil {
			l = logger.With("component", "classifier."+signal)
		}
		return adapter{signal: signal, model: model, backend: backend, logger: l}
	}

	topics := opts.Topics
	if len(topics) == 0 {
		topics = config.DefaultTopics
	}

	return &Registry{
		Sentiment: &Sentiment{adapter: base("sentiment", models.Sentiment)},
		Veracity: &Veracity{
			adapter:    base("veracity", models.Veracity),
			trueToken:  opts.TrueToken,
			falseToken: opts.FalseToken,
		},
		Topic:   &Topic{adapter: base("topic", models.Topic), labels: append([]string(nil), topics...)},
		Emotion: &Emotion{adapter: base("emotion", models.Emotion)},
		Summary: &Summary{
			adapter:   base("summary", models.Summary),
			maxLength: opts.SummaryMaxLength,
			minLength: opts.SummaryMinLength,
		},
		backend: backend,
	}
}

// Close releases the backend if it holds resources.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	if c, ok := r.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
