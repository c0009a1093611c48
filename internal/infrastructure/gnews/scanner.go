package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/scanner"
)

// Scanner pulls headlines from the GNews API.
type Scanner struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

var _ scanner.Scanner = (*Scanner)(nil)

// NewScanner wires an HTTP client; nil uses a 20s timeout client.
func NewScanner(client *http.Client, endpoint, apiKey string) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scanner{client: client, endpoint: endpoint, apiKey: apiKey}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "gnews"
}

type response struct {
	TotalArticles int                 `json:"totalArticles"`
	Articles      []domain.RawArticle `json:"articles"`
}

// Scan fetches one page of articles matching the request.
func (s *Scanner) Scan(ctx context.Context, req scanner.Request) ([]domain.RawArticle, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("gnews api key is not configured")
	}

	pageURL, err := buildURL(s.endpoint, s.apiKey, req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "NewsTriage/1.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gnews returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return payload.Articles, nil
}

func buildURL(base, apiKey string, req scanner.Request) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid gnews endpoint %s: %w", base, err)
	}

	query := parsed.Query()
	if req.Query != "" {
		query.Set("q", req.Query)
	}
	if req.Language != "" {
		query.Set("lang", req.Language)
	}
	if req.Max > 0 {
		query.Set("max", strconv.Itoa(req.Max))
	}
	query.Set("apikey", apiKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
