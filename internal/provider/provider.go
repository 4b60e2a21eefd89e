package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/provider/cohere"
	"github.com/alan-mat/deepresearch/internal/provider/gemini"
	"github.com/alan-mat/deepresearch/internal/provider/openai"
	"github.com/alan-mat/deepresearch/internal/provider/searxng"
	"github.com/alan-mat/deepresearch/internal/provider/tavily"
)

var (
	ErrInvalidWebSearcherType = errors.New("no web searcher found for given type")
	ErrInvalidGeneratorType   = errors.New("no generator found for given type")
)

type WebSearcherType string

const (
	WebSearcherTavily  WebSearcherType = "tavily"
	WebSearcherSearxng WebSearcherType = "searxng"
)

type GeneratorType string

const (
	GeneratorGemini GeneratorType = "gemini"
	GeneratorOpenAI GeneratorType = "openai"
	GeneratorCohere GeneratorType = "cohere"
)

type WebSearcher interface {
	Search(context.Context, api.WebSearchRequest) (*api.WebSearchResponse, error)
}

type Generator interface {
	Generate(context.Context, api.GenerationRequest) (api.CompletionStream, error)
}

// Options carries the credentials and endpoint of a provider. An empty
// BaseURL selects the provider's public endpoint.
type Options struct {
	APIKey  string
	BaseURL string
}

func NewWebSearcher(t WebSearcherType, opts Options) (WebSearcher, error) {
	switch WebSearcherType(strings.ToLower(string(t))) {
	case WebSearcherTavily, "":
		endpoint := opts.BaseURL
		if endpoint == "" {
			endpoint = tavily.Endpoint
		}
		return tavily.New(endpoint, opts.APIKey), nil
	case WebSearcherSearxng:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("searxng requires a base url")
		}
		return searxng.New(opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidWebSearcherType, t)
	}
}

func NewGenerator(ctx context.Context, t GeneratorType, opts Options) (Generator, error) {
	switch GeneratorType(strings.ToLower(string(t))) {
	case GeneratorGemini, "":
		return gemini.New(ctx, opts.APIKey), nil
	case GeneratorOpenAI:
		return openai.New(opts.APIKey, opts.BaseURL), nil
	case GeneratorCohere:
		return cohere.New(opts.APIKey, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidGeneratorType, t)
	}
}
