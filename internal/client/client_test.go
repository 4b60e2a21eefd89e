package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/client"
	dhttp "github.com/alan-mat/deepresearch/internal/http"
)

func TestResearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/research" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req api.ResearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(api.ResearchResponse{Response: "- summary of " + req.Query})
	}))
	defer srv.Close()

	got, err := client.New(srv.URL).Research(context.Background(), "solar energy")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != "- summary of solar energy" {
		t.Errorf("unexpected response '%s'", got)
	}
}

func TestResearchMissingResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	got, err := client.New(srv.URL).Research(context.Background(), "q")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != client.NoData {
		t.Errorf("expected '%s', got '%s'", client.NoData, got)
	}
}

func TestResearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"Internal Server Error"}`)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Research(context.Background(), "q")

	var statusErr *dhttp.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("expected code 500, got %d", statusErr.Code)
	}
}
