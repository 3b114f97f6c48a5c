// Package maintenance holds one-off data fix-ups that run outside the
// regular schema sync: index rebuilds and backfills for databases created
// by older releases. Migrations are versioned with goose and recorded in
// the database, so running the registry twice is a no-op.
package maintenance

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Run applies every pending migration in version order.
func Run(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose.SetDialect -> %w", err)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose.Up -> %w", err)
	}

	zap.L().Info("maintenance migrations applied")

	return nil
}
