package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"taskmind/internal/task"
)

// JSONFileStore keeps the collection in a single `{"tasks": [...]}` file.
type JSONFileStore struct {
	path   string
	logger *slog.Logger
}

func NewJSONFileStore(path string, logger *slog.Logger) *JSONFileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONFileStore{path: path, logger: logger}
}

func (s *JSONFileStore) Path() string {
	return s.path
}

// Init writes an empty document when none exists yet.
func (s *JSONFileStore) Init(ctx context.Context) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.Save(ctx, emptyCollection())
}

func (s *JSONFileStore) Load(_ context.Context) task.Collection {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("task document unreadable, using empty collection", "err", &ReadError{Source: s.path, Err: err})
		}
		return emptyCollection()
	}
	var doc task.Collection
	if err := json.Unmarshal(b, &doc); err != nil {
		s.logger.Warn("task document unparsable, using empty collection", "err", &ReadError{Source: s.path, Err: err})
		return emptyCollection()
	}
	return normalize(doc)
}

func (s *JSONFileStore) Save(_ context.Context, c task.Collection) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return writeJSONAtomically(s.path, normalize(c))
}

func writeJSONAtomically(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
