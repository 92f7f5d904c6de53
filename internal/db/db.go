// Package db bootstraps the PostgreSQL connection, brings the schema up to
// date and loads reference data.
package db

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/config"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

var passwordPattern = regexp.MustCompile(`(password=)(\S+)`)

// Connect opens the database, retrying while it comes up. GORM's own SQL
// logging stays silent unless DB_DEBUG is set.
func Connect(cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	dsn := cfg.DSN()
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err == nil {
			break
		}
		log.Warn("database not ready, retrying", "attempt", attempt, "error", err)
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping: %w", pingErr)
	}

	log.Info("database connected", "dsn", maskPassword(dsn))
	return db, nil
}

func maskPassword(dsn string) string {
	return passwordPattern.ReplaceAllString(dsn, `${1}***`)
}
