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
	"time"
)

type Stage int

const (
	StageSearching Stage = iota
	StageSummarizing
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageSearching:
		return "searching"
	case StageSummarizing:
		return "summarizing"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// State is the data carried through a single pipeline run.
type State struct {
	Query    string
	Data     []string
	Response string
	Stage    Stage
}

type StageError struct {
	Stage Stage
	Cause error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Cause)
}

func (e StageError) Unwrap() error {
	return e.Cause
}

// Observer is notified after every executed stage. err is the stage's
// failure, including generation failures that end up in the response text.
type Observer func(stage Stage, elapsed time.Duration, err error)

type Pipeline struct {
	searcher   Searcher
	summarizer *Summarizer
	observers  []Observer
}

type PipelineOption func(*Pipeline)

func WithObserver(o Observer) PipelineOption {
	return func(p *Pipeline) {
		p.observers = append(p.observers, o)
	}
}

func NewPipeline(searcher Searcher, summarizer *Summarizer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		searcher:   searcher,
		summarizer: summarizer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run searches for query and summarizes the results. Only search failures
// are returned as errors; the returned state then holds the failed stage.
func (p *Pipeline) Run(ctx context.Context, query string) (*State, error) {
	state := &State{
		Query: query,
		Stage: StageSearching,
	}

	slog.Debug("executing stage", "stage", state.Stage, "query", query)
	start := time.Now()
	data, err := p.searcher.Search(ctx, query)
	p.observe(StageSearching, time.Since(start), err)
	if err != nil {
		return state, StageError{Stage: StageSearching, Cause: err}
	}
	state.Data = data
	state.Stage = StageSummarizing

	slog.Debug("executing stage", "stage", state.Stage, "query", query, "snippets", len(data))
	start = time.Now()
	text, err := p.summarizer.Generate(ctx, data)
	p.observe(StageSummarizing, time.Since(start), err)
	if err != nil {
		slog.Warn("summary generation failed", "query", query, "err", err)
	}
	state.Response = Describe(text, err)
	state.Stage = StageDone

	return state, nil
}

func (p *Pipeline) observe(stage Stage, elapsed time.Duration, err error) {
	for _, o := range p.observers {
		o(stage, elapsed, err)
	}
}
