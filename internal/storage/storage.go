// Package storage describes the document store every collection operation runs against.
//
// The whole state lives in one Document. A Store loads it in full on every Read and
// replaces it in full on every Write; there is no cache and no partial update.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrStorageUnavailable is returned when the backing data cannot be read, parsed or written.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store loads and saves the entire Document.
type Store interface {
	Read(ctx context.Context) (*Document, error)
	Write(ctx context.Context, doc *Document) error
	Close() error
}

// Unavailable wraps err so that errors.Is(err, ErrStorageUnavailable) holds.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// Guard serialises read-transform-write cycles over a Store.
// Writers hold the lock for the whole cycle, so two concurrent mutations
// can no longer overwrite each other.
type Guard struct {
	store Store
	mu    sync.RWMutex
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// View loads a fresh Document and hands it to fn. Nothing is written back.
func (g *Guard) View(ctx context.Context, fn func(doc *Document) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, err := g.store.Read(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads a fresh Document, applies fn and writes the result back.
// If fn fails the Document is discarded and the error is returned as is.
func (g *Guard) Update(ctx context.Context, fn func(doc *Document) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.store.Read(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return g.store.Write(ctx, doc)
}

func (g *Guard) Close() error {
	return g.store.Close()
}
