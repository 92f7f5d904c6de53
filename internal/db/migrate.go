package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres database driver and the file
	// source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/config"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

// coreTables must exist after any migration path.
var coreTables = []string{"clients", "profiles", "groups", "group_members"}

// Migrate brings the schema up to date. With MIGRATIONS enabled the SQL
// files under cfg.App.MigrationsDir run through golang-migrate; otherwise
// AutoMigrate keeps local development moving without migration files.
func Migrate(db *gorm.DB, cfg *config.Config, log *logger.Logger) error {
	if cfg.App.Migrations {
		log.Info("running sql migrations", "dir", cfg.App.MigrationsDir)
		if err := runSQLMigrations(cfg.App.MigrationsDir, cfg.Database.URL()); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
	} else {
		log.Info("automigrating models")
		for _, m := range modelList() {
			if err := db.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	for _, table := range coreTables {
		if !db.Migrator().HasTable(table) {
			return fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return nil
}

// modelList is ordered so referenced tables migrate before their dependents.
func modelList() []any {
	return []any{
		&models.Client{},
		&models.Industry{},
		&models.Profile{},
		&models.Group{},
		&models.GroupMember{},
		&models.Assessment{},
		&models.Dimension{},
		&models.Field{},
		&models.FeedbackEntry{},
		&models.Benchmark{},
	}
}

func runSQLMigrations(dir, databaseURL string) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
