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
	"fmt"
	"log/slog"

	"github.com/alan-mat/deepresearch/internal/api"
)

const (
	NoRelevantData = "No relevant data found."
	NoResponse     = "No response generated."
	ErrorPrefix    = "Error: "
)

type Generator interface {
	Generate(context.Context, api.GenerationRequest) (api.CompletionStream, error)
}

type Summarizer struct {
	generator   Generator
	model       string
	temperature float32
}

type SummarizerOption func(*Summarizer)

// WithModel overrides the generator's default model.
func WithModel(name string) SummarizerOption {
	return func(s *Summarizer) {
		s.model = name
	}
}

func WithTemperature(temperature float32) SummarizerOption {
	return func(s *Summarizer) {
		s.temperature = temperature
	}
}

func NewSummarizer(generator Generator, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{
		generator:   generator,
		temperature: api.DefaultTemperature,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize always returns a displayable summary. Generation failures are
// reported in-band as "Error: <message>".
func (s *Summarizer) Summarize(ctx context.Context, snippets []string) string {
	text, err := s.Generate(ctx, snippets)
	return Describe(text, err)
}

// Generate asks the model for a summary of snippets. The model is not
// called when there is nothing to summarize.
func (s *Summarizer) Generate(ctx context.Context, snippets []string) (text string, err error) {
	if !hasInformation(snippets) {
		return NoRelevantData, nil
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic during generation", "panic", r)
			text, err = "", fmt.Errorf("%v", r)
		}
	}()

	req := api.FromPrompt(FormatPrompt(snippets))
	req.ModelName = s.model
	req.Temperature = s.temperature

	stream, err := s.generator.Generate(ctx, *req)
	if err != nil {
		return "", err
	}

	text, err = api.StreamReadAll(ctx, stream)
	if err != nil {
		return "", err
	}

	if text == "" {
		return NoResponse, nil
	}
	return text, nil
}

// Describe folds a generation result into the summary shown to users.
func Describe(text string, err error) string {
	if err != nil {
		return ErrorPrefix + err.Error()
	}
	return text
}

func hasInformation(snippets []string) bool {
	return len(snippets) > 0 && !isNoResults(snippets)
}
