package maintenance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func init() {
	goose.AddMigrationContext(upBackfillAddedBy, downBackfillAddedBy)
}

// upBackfillAddedBy attributes products recorded before creator tracking to
// the shop owner. AdminID is always the owning admin's user ID, which makes
// it a correct, if coarse, creator.
func upBackfillAddedBy(ctx context.Context, tx *sql.Tx) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET added_by = admin_id WHERE added_by = 0 OR added_by IS NULL")
	if err != nil {
		return fmt.Errorf("backfill products.added_by -> %w", err)
	}

	backfilled, _ := res.RowsAffected()
	zap.L().Info("backfilled product creators", zap.Int64("backfilled", backfilled))

	return nil
}

func downBackfillAddedBy(ctx context.Context, tx *sql.Tx) error {
	return nil
}
