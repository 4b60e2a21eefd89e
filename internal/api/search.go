package api

type WebSearchRequest struct {
	// Required
	Query string

	// Optional
	Limit int
}

type WebSearchResponse struct {
	Query   string
	Results []*ScoredDocument
}

type ScoredDocument struct {
	// Required
	Content string
	Score   float64

	// Optional
	Title string
	Url   string
}

// Contents returns the content of every result, in ranking order.
func (r WebSearchResponse) Contents() []string {
	contents := make([]string, 0, len(r.Results))
	for _, doc := range r.Results {
		if doc == nil {
			continue
		}
		contents = append(contents, doc.Content)
	}
	return contents
}
