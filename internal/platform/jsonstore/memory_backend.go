package jsonstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps a document in memory. Tests use it, and the memory
// storage driver runs the service on it without persistence.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   []byte
	exists bool
	writes int
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns an empty backend. Pass initial to start with a
// stored document.
func NewMemoryBackend(initial ...string) *MemoryBackend {
	b := &MemoryBackend{}
	if len(initial) > 0 {
		b.data = []byte(initial[0])
		b.exists = true
	}
	return b
}

func (b *MemoryBackend) Read(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.exists {
		return nil, false, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, true, nil
}

func (b *MemoryBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.exists = true
	b.writes++
	return nil
}

// Bytes returns the stored document.
func (b *MemoryBackend) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.data...)
}

// Writes returns how many times Write has succeeded.
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}
