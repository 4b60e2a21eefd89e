package tavily_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alan-mat/deepresearch/internal/api"
	dhttp "github.com/alan-mat/deepresearch/internal/http"
	"github.com/alan-mat/deepresearch/internal/provider/tavily"
)

func TestSearch(t *testing.T) {
	var got tavily.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path '/search', got '%s'", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tvly-key" {
			t.Errorf("expected bearer auth, got '%s'", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		io.WriteString(w, `{
			"query": "solar energy",
			"results": [
				{"title": "A", "url": "https://a.example", "content": "Solar is renewable", "score": 0.9},
				{"title": "B", "url": "https://b.example", "content": "Panels convert light", "score": 0.8}
			],
			"response_time": 1.2
		}`)
	}))
	defer srv.Close()

	p := tavily.New(srv.URL, "tvly-key")
	resp, err := p.Search(context.Background(), api.WebSearchRequest{Query: "solar energy"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if got.Query != "solar energy" {
		t.Errorf("expected query 'solar energy', got '%s'", got.Query)
	}
	if got.MaxResults != tavily.SearchDefaultLimit {
		t.Errorf("expected max_results %d, got %d", tavily.SearchDefaultLimit, got.MaxResults)
	}
	if got.SearchDepth != tavily.SearchDepth {
		t.Errorf("expected search_depth '%s', got '%s'", tavily.SearchDepth, got.SearchDepth)
	}

	contents := resp.Contents()
	if len(contents) != 2 {
		t.Fatalf("expected 2 results, got %d", len(contents))
	}
	if contents[0] != "Solar is renewable" || contents[1] != "Panels convert light" {
		t.Errorf("unexpected result order: %v", contents)
	}
	if resp.Results[0].Url != "https://a.example" {
		t.Errorf("expected url 'https://a.example', got '%s'", resp.Results[0].Url)
	}
}

func TestSearchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavily.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxResults != 3 {
			t.Errorf("expected max_results 3, got %d", req.MaxResults)
		}
		io.WriteString(w, `{"results": []}`)
	}))
	defer srv.Close()

	p := tavily.New(srv.URL, "")
	resp, err := p.Search(context.Background(), api.WebSearchRequest{Query: "q", Limit: 3})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
}

func TestSearchErrors(t *testing.T) {
	p := tavily.New("http://127.0.0.1:0", "")
	if _, err := p.Search(context.Background(), api.WebSearchRequest{}); err == nil {
		t.Error("expected error for empty query")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":{"error":"Unauthorized: missing or invalid API key."}}`)
	}))
	defer srv.Close()

	p = tavily.New(srv.URL, "bad")
	_, err := p.Search(context.Background(), api.WebSearchRequest{Query: "q"})

	var statusErr *dhttp.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("expected code 401, got %d", statusErr.Code)
	}
}
