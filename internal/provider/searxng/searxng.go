// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package searxng

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/http"
)

const SearchDefaultLimit = 5

type SearchResponse struct {
	Query   string          `json:"query"`
	Results []*SearchResult `json:"results"`
}

type SearchResult struct {
	Title         string  `json:"title"`
	Url           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// SearxngProvider queries a self-hosted SearXNG instance through its JSON
// output format. The instance must have the json format enabled.
type SearxngProvider struct {
	client http.Client
}

func New(baseURL string) *SearxngProvider {
	return &SearxngProvider{
		client: http.NewClient(baseURL),
	}
}

func (p SearxngProvider) Search(ctx context.Context, req api.WebSearchRequest) (*api.WebSearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	limit := SearchDefaultLimit
	if req.Limit > 0 {
		limit = req.Limit
	}

	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", "general")

	var searchResponse SearchResponse
	if err := p.client.RequestQuery(ctx, http.MethodGet, "/search", q, nil, &searchResponse); err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}

	// SearXNG has no result limit parameter
	docs := make([]*api.ScoredDocument, 0, limit)
	for _, result := range searchResponse.Results {
		if len(docs) == limit {
			break
		}
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
