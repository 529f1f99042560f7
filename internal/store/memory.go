package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process backend.  Documents are kept encoded so that
// readers never share memory with writers, exactly as with the other
// backends.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Read implements Documents.
func (m *Memory) Read(_ context.Context, name string, v any) error {
	m.mu.RLock()
	bs, ok := m.docs[name]
	m.mu.RUnlock()
	if !ok {
		return ErrNotExist
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return nil
}

// Replace implements Documents.
func (m *Memory) Replace(_ context.Context, name string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	m.mu.Lock()
	m.docs[name] = bs
	m.mu.Unlock()
	return nil
}

// Put stores raw bytes under name.  Tests use it to plant malformed
// documents.
func (m *Memory) Put(name string, raw []byte) {
	m.mu.Lock()
	m.docs[name] = raw
	m.mu.Unlock()
}
