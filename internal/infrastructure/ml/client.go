package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"NewsTriage/internal/config"
	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
	"NewsTriage/internal/retry"
)

// ErrEmptyResponse is returned when the model answered without any prediction.
var ErrEmptyResponse = errors.New("inference returned no predictions")

// Client talks to a Hugging Face compatible inference service.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	retry    retry.Config
}

var _ ports.Inference = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(cfg config.InferenceConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
		retry: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		},
	}
}

type request struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

// Classify runs a text-classification model and returns every label it scored.
func (c *Client) Classify(ctx context.Context, model, text string) ([]domain.LabelScore, error) {
	var raw json.RawMessage
	if err := c.post(ctx, model, request{Inputs: text}, &raw); err != nil {
		return nil, err
	}
	return decodeClassification(raw)
}

// distributionTopK is far above the label count of any classification head
// in use, so the backend never truncates the ranking.
const distributionTopK = 100

// Distribution runs a text-classification model and asks for every label.
func (c *Client) Distribution(ctx context.Context, model, text string) ([]domain.LabelScore, error) {
	payload := request{
		Inputs:     text,
		Parameters: map[string]any{"top_k": distributionTopK},
	}

	var raw json.RawMessage
	if err := c.post(ctx, model, payload, &raw); err != nil {
		return nil, err
	}
	return decodeClassification(raw)
}

// ZeroShot runs a zero-shot model in single-label mode.
func (c *Client) ZeroShot(ctx context.Context, model, text string, labels []string) ([]domain.LabelScore, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("zero-shot requires candidate labels")
	}
	payload := request{
		Inputs: text,
		Parameters: map[string]any{
			"candidate_labels": labels,
			"multi_label":      false,
		},
	}

	var raw json.RawMessage
	if err := c.post(ctx, model, payload, &raw); err != nil {
		return nil, err
	}
	return decodeZeroShot(raw)
}

// Summarize runs a summarization model with greedy decoding.
func (c *Client) Summarize(ctx context.Context, model, text string, maxLength, minLength int) (string, error) {
	payload := request{
		Inputs: text,
		Parameters: map[string]any{
			"max_length": maxLength,
			"min_length": minLength,
			"do_sample":  false,
		},
	}

	var resp []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := c.post(ctx, model, payload, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", ErrEmptyResponse
	}
	return resp[0].SummaryText, nil
}

func (c *Client) post(ctx context.Context, model string, payload request, v any) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("inference client is not configured")
	}
	if c.endpoint == "" || model == "" {
		return fmt.Errorf("inference client misconfigured")
	}

	payload.Options = map[string]any{"wait_for_model": true}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := c.endpoint + "/models/" + model
	return retry.WithRetry(ctx, c.retry, func() error {
		return c.do(ctx, url, body, v)
	})
}

func (c *Client) do(ctx context.Context, url string, body []byte, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		statusErr := fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(detail)))
		// 503 means the model is still loading; other 4xx will not heal by retrying.
		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError &&
			resp.StatusCode != http.StatusTooManyRequests {
			return retry.Permanent(statusErr)
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return retry.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// decodeClassification accepts both [[{label,score}]] and [{label,score}].
func decodeClassification(raw json.RawMessage) ([]domain.LabelScore, error) {
	var nested [][]domain.LabelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, ErrEmptyResponse
		}
		return nested[0], nil
	}

	var flat []domain.LabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if len(flat) == 0 {
		return nil, ErrEmptyResponse
	}
	return flat, nil
}

// decodeZeroShot accepts {labels,scores} and [{label,score}] and sorts by score.
func decodeZeroShot(raw json.RawMessage) ([]domain.LabelScore, error) {
	var out []domain.LabelScore

	var columnar struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := json.Unmarshal(raw, &columnar); err == nil && len(columnar.Labels) > 0 {
		if len(columnar.Labels) != len(columnar.Scores) {
			return nil, fmt.Errorf("zero-shot: %d labels but %d scores", len(columnar.Labels), len(columnar.Scores))
		}
		out = make([]domain.LabelScore, len(columnar.Labels))
		for i := range columnar.Labels {
			out[i] = domain.LabelScore{Label: columnar.Labels[i], Score: columnar.Scores[i]}
		}
	} else if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode zero-shot: %w", err)
	}

	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	if c != nil && c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}
