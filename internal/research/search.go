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

package research

import (
	"context"

	"github.com/alan-mat/deepresearch/internal/api"
)

// MaxResults is the number of snippets requested from the search provider.
const MaxResults = 5

// NoInformation replaces the snippet list when a search returns no results.
const NoInformation = "No relevant information found."

var noResults = []string{NoInformation}

// NoResults returns the snippet list reported for an empty search. It is
// recognised by identity, so a real snippet reading [NoInformation] is still
// summarized. The returned slice must not be modified.
func NoResults() []string {
	return noResults[:1:1]
}

func isNoResults(snippets []string) bool {
	return len(snippets) == 1 && &snippets[0] == &noResults[0]
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

type WebSearcher interface {
	Search(context.Context, api.WebSearchRequest) (*api.WebSearchResponse, error)
}

// WebSearch adapts a web search provider to a [Searcher] returning the
// content of each result.
type WebSearch struct {
	searcher WebSearcher
	limit    int
}

func NewWebSearch(searcher WebSearcher, limit int) *WebSearch {
	if limit <= 0 {
		limit = MaxResults
	}
	return &WebSearch{
		searcher: searcher,
		limit:    limit,
	}
}

func (w *WebSearch) Search(ctx context.Context, query string) ([]string, error) {
	resp, err := w.searcher.Search(ctx, api.WebSearchRequest{
		Query: query,
		Limit: w.limit,
	})
	if err != nil {
		return nil, err
	}

	var snippets []string
	if resp != nil {
		snippets = resp.Contents()
	}
	if len(snippets) > w.limit {
		snippets = snippets[:w.limit]
	}

	if len(snippets) == 0 {
		return NoResults(), nil
	}
	return snippets, nil
}
