package db

type Task struct {
	TaskID      string `gorm:"column:task_id;primaryKey"`
	Position    int    `gorm:"column:position;not null;default:0"`
	Title       string `gorm:"column:title;not null;default:''"`
	Description string `gorm:"column:description;not null;default:''"`
	Status      string `gorm:"column:status;not null;default:'pending'"`
	Priority    string `gorm:"column:priority;not null;default:'medium'"`
}

func (Task) TableName() string { return "tasks" }

// AppliedMigration records a data migration step that already ran.
type AppliedMigration struct {
	Name      string `gorm:"column:name;primaryKey"`
	AppliedAt int64  `gorm:"column:applied_at;not null;default:0"`
}

func (AppliedMigration) TableName() string { return "applied_migrations" }
