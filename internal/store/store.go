// Package store persists the whole task collection as one document.
package store

import (
	"context"

	"taskmind/internal/task"
)

// Store loads and saves the full collection. Load never fails: an absent or
// unreadable document yields an empty collection.
type Store interface {
	Load(ctx context.Context) task.Collection
	Save(ctx context.Context, c task.Collection) error
}

// ReadError describes a document that could not be read back. It is logged by
// the backends and replaced with an empty collection.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	if e == nil {
		return ""
	}
	return "read " + e.Source + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

func emptyCollection() task.Collection {
	return task.Collection{Tasks: []task.Task{}}
}

// normalize returns a copy with off-enum status and priority values coerced to
// pending and medium, so hand-edited documents still list valid tasks.
func normalize(c task.Collection) task.Collection {
	if c.Tasks == nil {
		return emptyCollection()
	}
	out := c.Clone()
	for i := range out.Tasks {
		out.Tasks[i].Status = task.StatusOrDefault(string(out.Tasks[i].Status))
		out.Tasks[i].Priority = task.PriorityOrDefault(string(out.Tasks[i].Priority))
	}
	return out
}
