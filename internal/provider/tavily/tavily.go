package tavily

import (
	"context"
	"fmt"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/http"
)

const (
	Endpoint           = "https://api.tavily.com"
	SearchDefaultLimit = 5
	SearchDepth        = "advanced"
)

type SearchRequest struct {
	Query                    string `json:"query"`
	Topic                    string `json:"topic"`
	SearchDepth              string `json:"search_depth"`
	MaxResults               int    `json:"max_results"`
	IncludeAnswer            bool   `json:"include_answer"`
	IncludeRawContent        bool   `json:"include_raw_content"`
	IncludeImages            bool   `json:"include_images"`
	IncludeImageDescriptions bool   `json:"include_image_descriptions"`
}

type SearchResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
	Images []struct {
		Url         string `json:"url"`
		Description string `json:"description"`
	} `json:"images"`
	Results      []*SearchResult `json:"results"`
	ResponseTime float32         `json:"response_time"`
}

type SearchResult struct {
	Title   string  `json:"title"`
	Url     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Raw     string  `json:"raw_content"`
}

type TavilyProvider struct {
	client http.Client
}

// New returns a provider talking to the Tavily API at endpoint.
// Requests are attempted once.
func New(endpoint string, apiKey string) *TavilyProvider {
	c := http.NewClient(
		endpoint,
		http.WithApiKey(apiKey),
	)
	return &TavilyProvider{
		client: c,
	}
}

func (p TavilyProvider) Endpoint() string {
	return p.client.Endpoint()
}

func (p TavilyProvider) Search(ctx context.Context, req api.WebSearchRequest) (*api.WebSearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	limit := SearchDefaultLimit
	if req.Limit > 0 {
		limit = req.Limit
	}

	payload := SearchRequest{
		Query:       req.Query,
		Topic:       "general",
		SearchDepth: SearchDepth,
		MaxResults:  limit,
	}

	var searchResponse SearchResponse
	if err := p.client.Request(ctx, http.MethodPost, "/search", payload, &searchResponse); err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}

	docs := make([]*api.ScoredDocument, 0, len(searchResponse.Results))
	for _, result := range searchResponse.Results {
		if result == nil {
			continue
		}
		docs = append(docs, &api.ScoredDocument{
			Content: result.Content,
			Score:   result.Score,
			Title:   result.Title,
			Url:     result.Url,
		})
	}

	return &api.WebSearchResponse{
		Query:   req.Query,
		Results: docs,
	}, nil
}
