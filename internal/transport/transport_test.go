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

package transport_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alan-mat/deepresearch/internal/transport"
)

func TestTraceComplete(t *testing.T) {
	trace := transport.NewTrace("test-id", "solar energy")
	now := time.Now().UnixNano()

	if trace.Status != transport.TraceStatusRunning {
		t.Errorf("expected status '%s', got '%s'", transport.TraceStatusRunning, trace.Status)
	}
	if trace.Duration() != 0 {
		t.Error("running trace reported a non-zero duration")
	}

	trace.Complete()
	if trace.CompletedAt < now {
		t.Errorf("invalid trace completed at time, expected '%v' or later, got '%v'", now, trace.CompletedAt)
	}
	completedAt := trace.CompletedAt
	if trace.Status != transport.TraceStatusCompleted {
		t.Error("invalid trace status after call to Complete()")
	}

	// calling complete on an already completed trace
	trace.Complete()
	if trace.CompletedAt != completedAt {
		t.Error("Complete() call on already completed trace overrid the completion time")
	}

	// may not fail completed trace
	trace.Fail(errors.New("trace failed!"))
	if trace.Status != transport.TraceStatusCompleted {
		t.Error("invalid trace status after failing a completed trace")
	}
	if trace.FailReason != nil {
		t.Error("fail reason set on already completed trace")
	}
}

func TestTraceFail(t *testing.T) {
	trace := transport.NewTrace("test-id", "solar energy")
	reason := "search stage failed"

	trace.Fail(errors.New(reason))
	if trace.Status != transport.TraceStatusFailed {
		t.Error("invalid trace status after call to Fail()")
	}
	if trace.FailReason == nil || *trace.FailReason != reason {
		t.Errorf("invalid trace fail reason, expected '%s', got '%v'", reason, trace.FailReason)
	}
	completedAt := trace.CompletedAt

	// may not complete failed trace
	trace.Complete()
	if trace.CompletedAt != completedAt {
		t.Error("Complete() call on already failed trace overrid the completion time")
	}
	if trace.Status != transport.TraceStatusFailed {
		t.Error("invalid trace status after calling complete on already failed trace")
	}
}

func TestMemoryTransport(t *testing.T) {
	ctx := context.Background()
	tr := transport.NewMemoryTransport()

	if _, err := tr.GetTrace(ctx, "missing"); !errors.Is(err, transport.ErrTraceNotFound) {
		t.Errorf("expected ErrTraceNotFound, got %v", err)
	}

	trace := transport.NewTrace("id-1", "solar energy")
	if err := tr.SetTrace(ctx, trace); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	// stored traces are snapshots
	trace.Complete()

	got, err := tr.GetTrace(ctx, "id-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Status != transport.TraceStatusRunning {
		t.Errorf("expected stored status '%s', got '%s'", transport.TraceStatusRunning, got.Status)
	}

	tr.SetTrace(ctx, trace)
	got, _ = tr.GetTrace(ctx, "id-1")
	if got.Status != transport.TraceStatusCompleted || got.Query != "solar energy" {
		t.Errorf("unexpected stored trace %+v", got)
	}
}
