package db

import (
	"errors"

	"gorm.io/gorm"

	"taskmind/internal/db/migration"
)

// SyncSchema creates/updates tables and indexes from models.
func SyncSchema(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is required")
	}
	if err := db.AutoMigrate(
		&Task{},
		&AppliedMigration{},
	); err != nil {
		return err
	}
	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// MigrateUp syncs schema then runs the registered data migrations once each.
func MigrateUp(db *gorm.DB, opts migration.Options) error {
	if err := SyncSchema(db); err != nil {
		return err
	}
	return migration.RunAll(db, opts)
}
