package storage_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alan-mat/deepresearch/internal/storage"
)

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"solar energy":       "solar_energy.md",
		"  two  spaces ":     "__two__spaces_.md",
		"tabs\tstay":         "tabs\tstay.md",
		"what is Go? (2025)": "what_is_Go?_(2025).md",
		"":                   ".md",
	}
	for query, want := range tests {
		if got := storage.FileName(query); got != want {
			t.Errorf("expected '%s', got '%s'", want, got)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "responses")
	s, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("storage directory was not created: %v", err)
	}

	content := "- Solar energy is **renewable**\n- Ünïcode survives"
	path, err := s.Write("solar energy", content)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if path != filepath.Join(dir, "solar_energy.md") {
		t.Errorf("unexpected path '%s'", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(b) != content {
		t.Errorf("expected '%s', got '%s'", content, b)
	}

	got, err := s.Read("solar energy")
	if err != nil || got != content {
		t.Errorf("expected '%s', got '%s' (err %v)", content, got, err)
	}

	if _, err := s.Write("solar energy", "second"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	got, _ = s.Read("solar energy")
	if got != "second" {
		t.Errorf("expected file to be overwritten, got '%s'", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected exactly one file in storage directory, got %d", len(entries))
	}
}

func TestFileStoreRelativeSegments(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewFileStore(filepath.Join(root, "responses"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	path, err := s.Write("../outside", "x")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := filepath.Join(root, "outside.md")
	if path != want {
		t.Errorf("expected '%s', got '%s'", want, path)
	}
	b, err := os.ReadFile(want)
	if err != nil || string(b) != "x" {
		t.Errorf("expected 'x' in parent directory, got '%s' (err %v)", b, err)
	}

	// absolute names stay under the storage directory
	path, err = s.Write("/abs", "y")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if path != filepath.Join(root, "responses", "abs.md") {
		t.Errorf("unexpected path '%s'", path)
	}
}

func TestFileStoreMissingSubdirectory(t *testing.T) {
	s, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := s.Write("a/b", "x"); err == nil {
		t.Error("expected error when writing into a missing subdirectory")
	}
}

func TestFileStoreConcurrentWrites(t *testing.T) {
	s, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	contents := make(map[string]bool)
	var wg sync.WaitGroup
	for i := range 16 {
		content := strings.Repeat(fmt.Sprintf("writer %d\n", i), 1000)
		contents[content] = true

		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Write("same query", content); err != nil {
				t.Errorf("unexpected write error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Read("same query")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !contents[got] {
		t.Error("file holds an interleaved or partial write")
	}
}
