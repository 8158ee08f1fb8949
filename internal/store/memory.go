package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryDocuments is an in-process DocumentRepo. It backs tests and the
// --memory flag of the CLI.
type MemoryDocuments struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryDocuments returns an empty MemoryDocuments.
func NewMemoryDocuments() *MemoryDocuments {
	return &MemoryDocuments{docs: make(map[string][]byte)}
}

func (m *MemoryDocuments) Load(_ context.Context, profile string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[profile]
	if !ok {
		return nil, nil
	}
	return slices.Clone(data), nil
}

func (m *MemoryDocuments) Save(_ context.Context, profile string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[profile] = slices.Clone(data)
	return nil
}

func (m *MemoryDocuments) Clear(_ context.Context, profile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, profile)
	return nil
}
