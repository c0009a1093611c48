package gnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"NewsTriage/internal/scanner"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	u, err := buildURL("https://gnews.io/api/v4/top-headlines?category=general", "key", scanner.Request{
		Query: "climate", Language: "es", Max: 25,
	})
	if err != nil {
		t.Fatalf("buildURL returned error: %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	q := parsed.Query()
	if q.Get("category") != "general" || q.Get("q") != "climate" || q.Get("lang") != "es" ||
		q.Get("max") != "25" || q.Get("apikey") != "key" {
		t.Fatalf("unexpected query: %s", parsed.RawQuery)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "key" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{
		  "totalArticles": 1,
		  "articles": [{
		    "title": "Rates unchanged",
		    "description": "The bank held rates.",
		    "url": "https://news.example/rates",
		    "image": "https://news.example/rates.jpg",
		    "source": {"name": "Example Wire", "url": "https://news.example"}
		  }]
		}`))
	}))
	defer server.Close()

	articles, err := NewScanner(server.Client(), server.URL, "key").Scan(context.Background(), scanner.Request{Max: 10})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Source.Name != "Example Wire" || articles[0].Image != "https://news.example/rates.jpg" {
		t.Fatalf("unexpected article: %+v", articles[0])
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := NewScanner(server.Client(), server.URL, "key").Scan(context.Background(), scanner.Request{}); err == nil {
		t.Fatal("expected status error")
	}
	if _, err := NewScanner(nil, server.URL, "").Scan(context.Background(), scanner.Request{}); err == nil {
		t.Fatal("expected missing key error")
	}
}
