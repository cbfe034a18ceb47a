package store

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	dbmodel "taskmind/internal/db"
	"taskmind/internal/task"
)

// SQLiteStore keeps the collection in the tasks table, one row per task, and
// still loads and saves it as a whole.
type SQLiteStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSQLiteStore uses an already opened DB. Caller owns closing it.
func NewSQLiteStore(db *gorm.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) task.Collection {
	rows := make([]dbmodel.Task, 0)
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		s.logger.Warn("task table unreadable, using empty collection", "err", &ReadError{Source: "sqlite tasks", Err: err})
		return emptyCollection()
	}
	out := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, task.Task{
			ID:          row.TaskID,
			Title:       row.Title,
			Description: row.Description,
			Status:      task.Status(row.Status),
			Priority:    task.Priority(row.Priority),
		})
	}
	return normalize(task.Collection{Tasks: out})
}

func (s *SQLiteStore) Save(ctx context.Context, c task.Collection) error {
	rows := make([]dbmodel.Task, 0, len(c.Tasks))
	for i, t := range c.Tasks {
		rows = append(rows, dbmodel.Task{
			TaskID:      t.ID,
			Position:    i,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
		})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&dbmodel.Task{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
