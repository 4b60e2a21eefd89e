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

package client

import (
	"context"
	"time"

	"github.com/alan-mat/deepresearch/internal/api"
	"github.com/alan-mat/deepresearch/internal/http"
)

const (
	DefaultEndpoint = "http://localhost:8000"

	// NoData is shown when the service answers without a response field.
	NoData = "No data found."
)

// Client calls the research API.
type Client struct {
	client http.Client
}

func New(endpoint string) *Client {
	return &Client{
		client: http.NewClient(endpoint, http.WithTimeout(5*time.Minute)),
	}
}

// Research submits query and returns the summary. Non-200 answers are
// returned as *http.StatusError.
func (c *Client) Research(ctx context.Context, query string) (string, error) {
	var resp struct {
		Response *string `json:"response"`
	}

	err := c.client.Request(ctx, http.MethodPost, "/research", api.ResearchRequest{Query: query}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Response == nil {
		return NoData, nil
	}
	return *resp.Response, nil
}
