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

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const Extension = ".md"

type Store interface {
	Write(query string, content string) (string, error)
	Read(query string) (string, error)
}

// FileStore keeps one markdown file per query in a single directory.
// Later writes of the same query replace earlier ones.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// FileName derives the response file name for query, replacing spaces
// with underscores. No other characters are altered.
func FileName(query string) string {
	return strings.ReplaceAll(query, " ", "_") + Extension
}

// Path returns the location of the response file for query. The name is
// joined to the storage directory as is, so relative segments such as ".."
// are honoured.
func (s *FileStore) Path(query string) string {
	return filepath.Join(s.dir, FileName(query))
}

// Write stores content as the response for query and returns the file path.
func (s *FileStore) Write(query string, content string) (string, error) {
	return s.WriteFile(FileName(query), content)
}

func (s *FileStore) Read(query string) (string, error) {
	b, err := os.ReadFile(s.Path(query))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile stores content under name. The content is written to a
// temporary file first, so readers never observe a partial write.
func (s *FileStore) WriteFile(name string, content string) (string, error) {
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write '%s': %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", name, err)
	}
	return path, nil
}
