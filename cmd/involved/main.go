// Command involved is the admin entry point for the talent data layer: it
// brings the database schema up to date and loads reference and demo data.
package main

import (
	"flag"
	stdlog "log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/config"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/db"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run the reference-data seed and exit")
	demoFlag        = flag.Bool("demo", false, "Also load the demo dataset when seeding")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file when present.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger init failed: %v", err)
	}
	defer log.Sync()

	dbConn, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}

	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn, cfg, log); err != nil {
			log.Fatal("migration failed", "error", err)
		}
		log.Info("migrations completed")
		return
	}

	if *seedOnlyFlag {
		runSeed(dbConn, log)
		log.Info("seeding completed")
		return
	}

	if err := db.Migrate(dbConn, cfg, log); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	if cfg.App.Seed || *demoFlag {
		runSeed(dbConn, log)
	}
	log.Info("database ready", "env", cfg.App.Env, "db", cfg.Database.DBName)
}

func runSeed(dbConn *gorm.DB, log *logger.Logger) {
	if err := db.Seed(dbConn, log); err != nil {
		log.Fatal("seeding failed", "error", err)
	}
	if *demoFlag {
		if err := db.SeedDemo(dbConn, log); err != nil {
			log.Fatal("demo seeding failed", "error", err)
		}
	}
}
