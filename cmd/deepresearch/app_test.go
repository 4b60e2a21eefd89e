package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alan-mat/deepresearch/internal/config"
	"github.com/alan-mat/deepresearch/internal/provider"
	"github.com/alan-mat/deepresearch/internal/transport"
)

func TestNewApp(t *testing.T) {
	conf := config.Default()
	conf.Server.ResponsesDir = filepath.Join(t.TempDir(), "responses")
	conf.Search.APIKey = "tvly-test"
	conf.Generator.APIKey = "gemini-test"

	a, err := newApp(context.Background(), conf)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer a.Close()

	if a.pipeline == nil || a.store == nil {
		t.Fatal("app is missing pipeline or store")
	}
	if a.store.Dir() != conf.Server.ResponsesDir {
		t.Errorf("expected responses dir '%s', got '%s'", conf.Server.ResponsesDir, a.store.Dir())
	}
	if _, ok := a.transport.(*transport.MemoryTransport); !ok {
		t.Errorf("expected memory transport without redis address, got %T", a.transport)
	}
}

func TestNewPipelineInvalidProvider(t *testing.T) {
	conf := config.Default()
	conf.Search.Provider = "bing"
	if _, err := newPipeline(context.Background(), conf); !errors.Is(err, provider.ErrInvalidWebSearcherType) {
		t.Errorf("expected ErrInvalidWebSearcherType, got %v", err)
	}

	conf = config.Default()
	conf.Generator.Provider = "llama"
	if _, err := newPipeline(context.Background(), conf); !errors.Is(err, provider.ErrInvalidGeneratorType) {
		t.Errorf("expected ErrInvalidGeneratorType, got %v", err)
	}
}

func TestNewPipelineSearxng(t *testing.T) {
	for _, name := range []string{"searxng", "SearXNG"} {
		conf := config.Default()
		conf.Search.Provider = name
		conf.Search.Searxng.BaseURL = "http://localhost:8080"
		conf.Generator.Provider = "openai"
		conf.Generator.APIKey = "sk-test"

		if _, err := newPipeline(context.Background(), conf); err != nil {
			t.Errorf("expected nil error for provider '%s', got %v", name, err)
		}
	}
}
