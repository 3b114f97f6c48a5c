package maintenance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/ovenledger/bakehouse-api/internal/domain"
)

func init() {
	goose.AddMigrationContext(upNormalizeBranches, downNormalizeBranches)
}

// upNormalizeBranches trims stray whitespace from every branch column and
// defaults blank values, so branch comparisons done in SQL agree with the
// defaulting applied on new writes.
func upNormalizeBranches(ctx context.Context, tx *sql.Tx) error {
	columns := []struct {
		table  string
		column string
	}{
		{"users", "branch"},
		{"products", "branch"},
		{"sales", "branch"},
		{"stock_transfers", "from_branch"},
		{"stock_transfers", "to_branch"},
	}

	for _, c := range columns {
		trimQuery := fmt.Sprintf(
			"UPDATE %s SET %s = btrim(%s) WHERE %s <> btrim(%s)",
			c.table, c.column, c.column, c.column, c.column,
		)
		trimRes, err := tx.ExecContext(ctx, trimQuery)
		if err != nil {
			return fmt.Errorf("trim %s.%s -> %w", c.table, c.column, err)
		}
		trimmed, _ := trimRes.RowsAffected()

		defaultQuery := fmt.Sprintf(
			"UPDATE %s SET %s = $1 WHERE %s IS NULL OR %s = ''",
			c.table, c.column, c.column, c.column,
		)
		defaultRes, err := tx.ExecContext(ctx, defaultQuery, domain.DefaultBranch)
		if err != nil {
			return fmt.Errorf("default %s.%s -> %w", c.table, c.column, err)
		}
		defaulted, _ := defaultRes.RowsAffected()

		zap.L().Info("normalized branch values",
			zap.String("table", c.table),
			zap.String("column", c.column),
			zap.Int64("trimmed", trimmed),
			zap.Int64("defaulted", defaulted),
		)
	}

	return nil
}

// The original values are gone once normalized.
func downNormalizeBranches(ctx context.Context, tx *sql.Tx) error {
	return nil
}
