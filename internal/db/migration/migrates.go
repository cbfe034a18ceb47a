package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskmind/internal/task"
)

// Options carries inputs that data migrations may need.
type Options struct {
	// JSONPath points at a db.json document to import into an empty tasks table.
	JSONPath string
	// Logger receives step messages. Nil drops them.
	Logger *slog.Logger
}

type step struct {
	name string
	// run reports false when the step had nothing to do and should be retried next time.
	run func(*Migration) (bool, error)
}

var steps = []step{
	{name: "0001_import_json_document", run: importJSONDocument},
}

// Migration is passed to each migration step. DB is set by RunAll.
type Migration struct {
	DB   *gorm.DB
	Opts Options
	logs []string
}

func (m *Migration) Log(v ...interface{}) {
	m.logs = append(m.logs, fmt.Sprint(v...))
}

type appliedRow struct {
	Name      string `gorm:"column:name;primaryKey"`
	AppliedAt int64  `gorm:"column:applied_at"`
}

func (appliedRow) TableName() string { return "applied_migrations" }

// RunAll runs every registered step that has not been recorded as applied.
func RunAll(db *gorm.DB, opts Options) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	ctx := &Migration{DB: db, Opts: opts}
	for _, s := range steps {
		var n int64
		if err := db.Model(&appliedRow{}).Where("name = ?", s.name).Count(&n).Error; err != nil {
			return fmt.Errorf("migration %s lookup failed: %w", s.name, err)
		}
		if n > 0 {
			continue
		}
		ctx.logs = nil
		done, err := s.run(ctx)
		if opts.Logger != nil {
			for _, line := range ctx.logs {
				opts.Logger.Info(line, "migration", s.name)
			}
		}
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", s.name, err)
		}
		if !done {
			continue
		}
		if err := db.Create(&appliedRow{Name: s.name, AppliedAt: time.Now().UTC().Unix()}).Error; err != nil {
			return fmt.Errorf("migration %s record failed: %w", s.name, err)
		}
	}
	return nil
}

type taskRow struct {
	TaskID      string `gorm:"column:task_id;primaryKey"`
	Position    int    `gorm:"column:position"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`
	Status      string `gorm:"column:status"`
	Priority    string `gorm:"column:priority"`
}

func (taskRow) TableName() string { return "tasks" }

func importJSONDocument(m *Migration) (bool, error) {
	path := strings.TrimSpace(m.Opts.JSONPath)
	if path == "" {
		return false, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var existing int64
	if err := m.DB.Model(&taskRow{}).Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		m.Log("tasks table not empty, skip import")
		return true, nil
	}
	var doc task.Collection
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.Log("unparsable json document, skip import: ", err)
		return true, nil
	}
	if len(doc.Tasks) == 0 {
		return true, nil
	}
	rows := make([]taskRow, 0, len(doc.Tasks))
	seen := make(map[string]struct{}, len(doc.Tasks))
	for i, t := range doc.Tasks {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, taskRow{
			TaskID:      id,
			Position:    i,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(task.StatusOrDefault(string(t.Status))),
			Priority:    string(task.PriorityOrDefault(string(t.Priority))),
		})
	}
	if len(rows) == 0 {
		return true, nil
	}
	if err := m.DB.Create(&rows).Error; err != nil {
		return false, err
	}
	m.Log("imported ", len(rows), " tasks from ", path)
	return true, nil
}
