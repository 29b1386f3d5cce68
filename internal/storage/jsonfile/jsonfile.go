// Package jsonfile is the flat-file Store: one JSON document on disk,
// read whole and replaced whole.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"condoadmin/internal/storage"

	"golang.org/x/exp/slog"
)

type Store struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With("component", "jsonfile_store", "path", path),
	}
}

// Ensure creates an empty document at path unless a file already exists there.
func Ensure(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return storage.Unavailable("stat data file", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return storage.Unavailable("create data directory", err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		return storage.Unavailable("create data file", err)
	}
	return nil
}

func (s *Store) Path() string {
	return s.path
}

// Read loads and decodes the whole file. A missing or malformed file is
// reported as storage.ErrStorageUnavailable.
func (s *Store) Read(_ context.Context) (*storage.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Error("failed to read data file", "error", err)
		return nil, storage.Unavailable("read data file", err)
	}

	doc := storage.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.log.Error("data file is not a valid document", "error", err)
		return nil, storage.Unavailable("decode data file", err)
	}
	return doc, nil
}

// Write replaces the file with doc. The new content goes to a temp file in the
// same directory first and is renamed over the old one.
func (s *Store) Write(_ context.Context, doc *storage.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return storage.Unavailable("encode document", err)
	}
	data = append(data, '\n')

	if err := s.replace(data); err != nil {
		s.log.Error("failed to write data file", "error", err)
		return storage.Unavailable("write data file", err)
	}
	return nil
}

func (s *Store) replace(data []byte) error {
	dir := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
