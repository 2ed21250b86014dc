// Package jsonstore persists a collection of records as one JSON array.
//
// Every mutation reads the whole array, transforms it in memory and writes the
// whole array back. Collection serializes those read-modify-write cycles within
// a process; it does not coordinate between processes sharing one backend.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrCorrupt is returned when the stored document is not a JSON array of the
// expected record type.
var ErrCorrupt = errors.New("jsonstore: corrupt document")

// emptyArray is what a freshly created document holds.
var emptyArray = []byte("[]")

// Backend reads and writes the raw bytes of one document.
type Backend interface {
	// Read returns the stored bytes. exists is false when nothing has been
	// stored yet; err is reserved for real I/O failures.
	Read(ctx context.Context) (data []byte, exists bool, err error)

	// Write replaces the stored bytes in full.
	Write(ctx context.Context, data []byte) error
}

// Collection is a typed view over a Backend holding a JSON array of T.
type Collection[T any] struct {
	backend Backend
	name    string
	mu      sync.Mutex
}

// NewCollection returns a collection stored in backend. name is only used in
// error messages.
func NewCollection[T any](name string, backend Backend) *Collection[T] {
	return &Collection[T]{backend: backend, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// LoadAll returns every record in storage order. A missing document is created
// holding an empty array.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	data, exists, err := c.backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	if exists {
		return c.decode(data)
	}

	// An Update may have stored the first document since the read above.
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// load reads the document, creating it when missing. c.mu must be held.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, exists, err := c.backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	if !exists {
		if err := c.backend.Write(ctx, emptyArray); err != nil {
			return nil, fmt.Errorf("create %s: %w", c.name, err)
		}
		return []T{}, nil
	}
	return c.decode(data)
}

// SaveAll overwrites the document with items, pretty printed.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}

// Update loads the collection, passes it to fn and saves what fn returns.
// Concurrent Update calls on the same Collection run one at a time. fn must
// treat its argument as read-only and return a new slice; when fn fails nothing
// is written and its error is returned unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := c.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Collection[T]) decode(data []byte) ([]T, error) {
	// An empty file is treated like a fresh one rather than a parse error.
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
