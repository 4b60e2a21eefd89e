package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsHandler(t *testing.T) {
	RecordRequest(OutcomeOK)
	ObserveStage("searching", 1200*time.Millisecond, nil)
	ObserveStage("summarizing", 3*time.Second, errors.New("quota exceeded"))

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to fetch metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	output := string(body)

	if !strings.Contains(output, `deepresearch_requests_total{outcome="ok"}`) {
		t.Errorf("expected deepresearch_requests_total metric for outcome ok")
	}
	if !strings.Contains(output, `deepresearch_stage_duration_seconds_bucket{stage="searching",status="ok"`) {
		t.Errorf("expected deepresearch_stage_duration_seconds metric for searching stage")
	}
	if !strings.Contains(output, `deepresearch_stage_duration_seconds_count{stage="summarizing",status="error"}`) {
		t.Errorf("expected failed summarizing stage to be recorded")
	}
}
