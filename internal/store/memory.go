package store

import (
	"context"
	"sync"

	"taskmind/internal/task"
)

// MemoryStore keeps the collection in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	doc   task.Collection
	saves int
	// SaveErr, when set, is returned by Save and nothing is stored.
	SaveErr error
}

func NewMemoryStore(tasks ...task.Task) *MemoryStore {
	return &MemoryStore{doc: task.Collection{Tasks: append([]task.Task{}, tasks...)}}
}

func (m *MemoryStore) Load(_ context.Context) task.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return normalize(m.doc)
}

func (m *MemoryStore) Save(_ context.Context, c task.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.doc = c.Clone()
	m.saves++
	return nil
}

// Saves reports how many successful Save calls happened.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
