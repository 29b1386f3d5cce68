// Package memory keeps the document as serialised bytes in process memory.
// Every Read decodes a fresh copy, so callers never share state with the store.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"condoadmin/internal/storage"
)

type Store struct {
	mu   sync.Mutex
	data []byte
}

// New returns a store seeded with doc. A nil doc starts empty.
func New(doc *storage.Document) (*Store, error) {
	if doc == nil {
		doc = storage.NewDocument()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, storage.Unavailable("encode document", err)
	}
	return &Store{data: data}, nil
}

// NewFromJSON seeds the store with raw JSON. The bytes are validated on first Read.
func NewFromJSON(raw []byte) *Store {
	return &Store{data: append([]byte(nil), raw...)}
}

func (s *Store) Read(_ context.Context) (*storage.Document, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()

	doc := storage.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, storage.Unavailable("decode document", err)
	}
	return doc, nil
}

func (s *Store) Write(_ context.Context, doc *storage.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return storage.Unavailable("encode document", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}
