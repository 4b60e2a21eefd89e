package searxng_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/provider/searxng"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got '%s'", r.Method)
		}
		if r.URL.Path != "/search" {
			t.Errorf("expected path '/search', got '%s'", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "solar energy" {
			t.Errorf("expected q 'solar energy', got '%s'", q.Get("q"))
		}
		if q.Get("format") != "json" {
			t.Errorf("expected format 'json', got '%s'", q.Get("format"))
		}

		results := make([]string, 0, 8)
		for i := range 8 {
			results = append(results, fmt.Sprintf(`{"title":"t%d","url":"https://%d.example","content":"snippet %d","score":1}`, i, i, i))
		}
		io.WriteString(w, `{"query":"solar energy","results":[`+strings.Join(results, ",")+`]}`)
	}))
	defer srv.Close()

	p := searxng.New(srv.URL)
	resp, err := p.Search(context.Background(), api.WebSearchRequest{Query: "solar energy"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(resp.Results) != searxng.SearchDefaultLimit {
		t.Fatalf("expected %d results, got %d", searxng.SearchDefaultLimit, len(resp.Results))
	}
	for i, doc := range resp.Results {
		want := fmt.Sprintf("snippet %d", i)
		if doc.Content != want {
			t.Errorf("expected content '%s', got '%s'", want, doc.Content)
		}
	}
}

func TestSearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := searxng.New(srv.URL)
	if _, err := p.Search(context.Background(), api.WebSearchRequest{Query: "q"}); err == nil {
		t.Error("expected error for forbidden response")
	}
	if _, err := p.Search(context.Background(), api.WebSearchRequest{}); err == nil {
		t.Error("expected error for empty query")
	}
}
