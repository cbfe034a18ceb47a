// Package repository applies task operations to the collection held by a Store.
//
// Every mutation loads the whole collection, changes one task, and saves the
// whole collection back. Mutations within one process are serialized; writers
// in other processes sharing the same document still race.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"taskmind/internal/store"
	"taskmind/internal/task"
)

type Repository struct {
	store store.Store
	newID func() string
	mu    sync.Mutex
}

type Option func(*Repository)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{store: s, newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns all tasks, or only those whose status matches filter when it is
// non-empty. An unknown filter matches nothing.
func (r *Repository) List(ctx context.Context, filter string) []task.Task {
	tasks := r.store.Load(ctx).Tasks
	if filter == "" {
		return tasks
	}
	want, ok := task.ParseStatus(filter)
	if !ok {
		return []task.Task{}
	}
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}

// Pending is List filtered to pending tasks.
func (r *Repository) Pending(ctx context.Context) []task.Task {
	return r.List(ctx, string(task.StatusPending))
}

func (r *Repository) Create(ctx context.Context, in task.CreateInput) (task.Task, error) {
	draft, err := task.ValidateCreate(in)
	if err != nil {
		return task.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.store.Load(ctx)
	created := draft.WithID(r.uniqueID(doc))
	doc.Tasks = append(doc.Tasks, created)
	if err := r.store.Save(ctx, doc); err != nil {
		return task.Task{}, fmt.Errorf("save collection: %w", err)
	}
	return created, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (task.Task, error) {
	next, err := task.ValidateStatusUpdate(status)
	if err != nil {
		return task.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.store.Load(ctx)
	idx := doc.IndexOf(id)
	if idx < 0 {
		return task.Task{}, &task.NotFoundError{ID: id}
	}
	doc.Tasks[idx].Status = next
	if err := r.store.Save(ctx, doc); err != nil {
		return task.Task{}, fmt.Errorf("save collection: %w", err)
	}
	return doc.Tasks[idx], nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.store.Load(ctx)
	idx := doc.IndexOf(id)
	if idx < 0 {
		return &task.NotFoundError{ID: id}
	}
	kept := make([]task.Task, 0, len(doc.Tasks)-1)
	kept = append(kept, doc.Tasks[:idx]...)
	kept = append(kept, doc.Tasks[idx+1:]...)
	doc.Tasks = kept
	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

func (r *Repository) uniqueID(doc task.Collection) string {
	for {
		id := r.newID()
		if id != "" && doc.IndexOf(id) < 0 {
			return id
		}
	}
}
