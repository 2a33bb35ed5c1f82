// Package storage is the persistence gateway: it serializes the store
// snapshot to an opaque blob store, debounced so rapid edits coalesce
// into one write.
package storage

import "sync"

// BlobStore persists a single opaque snapshot blob. Load returns
// (nil, nil) when nothing has been stored yet.
type BlobStore interface {
	Save(data []byte) error
	Load() ([]byte, error)
}

// MemoryBlobStore is an in-memory BlobStore for tests and ephemeral runs.
type MemoryBlobStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

// Save stores a copy of data.
func (m *MemoryBlobStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

// Load returns a copy of the stored blob, nil if nothing was saved.
func (m *MemoryBlobStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}
