// Standalone runner for the maintenance migration registry, for operators
// who apply fix-ups ahead of a deploy instead of on startup.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ovenledger/bakehouse-api/internal/config"
	"github.com/ovenledger/bakehouse-api/internal/db"
	"github.com/ovenledger/bakehouse-api/internal/logger"
	"github.com/ovenledger/bakehouse-api/internal/maintenance"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = maintenance.Run(postgresDB); err != nil {
		return fmt.Errorf("failed to run maintenance migrations -> %w", err)
	}

	zap.L().Info("maintenance run finished")

	return nil
}
