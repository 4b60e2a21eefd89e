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

package transport

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	TraceExpiry = time.Hour * 24

	ErrTraceNotFound = errors.New("trace not found")
)

// Transport stores request traces.
type Transport interface {
	SetTrace(ctx context.Context, trace *Trace) error
	GetTrace(ctx context.Context, traceId string) (*Trace, error)
}

type Trace struct {
	ID          string      `json:"id"`
	Status      TraceStatus `json:"status"`
	StartedAt   int64       `json:"started_at"`
	CompletedAt int64       `json:"completed_at"`
	Query       string      `json:"query"`

	// FailReason contains the error message related to the failing
	// of this trace. This field must be nil, unless Status is set to TraceStatusFailed.
	FailReason *string `json:"fail_reason,omitempty"`
}

func NewTrace(id string, query string) *Trace {
	return &Trace{
		ID:        id,
		Status:    TraceStatusRunning,
		StartedAt: time.Now().UnixNano(),
		Query:     query,
	}
}

func (t *Trace) Complete() {
	if t.Status != TraceStatusRunning {
		return
	}

	t.CompletedAt = time.Now().UnixNano()
	t.Status = TraceStatusCompleted
}

func (t *Trace) Fail(reason error) {
	if t.Status != TraceStatusRunning {
		return
	}

	t.CompletedAt = time.Now().UnixNano()
	t.Status = TraceStatusFailed

	errString := reason.Error()
	t.FailReason = &errString
}

// Duration is the time between start and completion, or zero for a
// running trace.
func (t *Trace) Duration() time.Duration {
	if t.CompletedAt == 0 {
		return 0
	}
	return time.Duration(t.CompletedAt - t.StartedAt)
}

type TraceStatus int

const (
	TraceStatusUnspecified TraceStatus = iota
	TraceStatusRunning
	TraceStatusCompleted
	TraceStatusFailed
)

func (s TraceStatus) String() string {
	switch s {
	case TraceStatusRunning:
		return "running"
	case TraceStatusCompleted:
		return "completed"
	case TraceStatusFailed:
		return "failed"
	default:
		return "unspecified"
	}
}

// MemoryTransport keeps traces in process memory. Traces are never evicted.
type MemoryTransport struct {
	mu     sync.RWMutex
	traces map[string]Trace
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{
		traces: make(map[string]Trace),
	}
}

func (t *MemoryTransport) SetTrace(ctx context.Context, trace *Trace) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traces[trace.ID] = *trace
	return nil
}

func (t *MemoryTransport) GetTrace(ctx context.Context, traceId string) (*Trace, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	trace, ok := t.traces[traceId]
	if !ok {
		return nil, ErrTraceNotFound
	}
	return &trace, nil
}
