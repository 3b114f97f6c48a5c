package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTransferNotFound   = errors.New("stock transfer not found")
	ErrInvalidTransition  = errors.New("invalid transfer status transition")
	ErrTransferIsTerminal = errors.New("transfer already completed or cancelled")
)

type StockTransfer struct {
	ID uint `gorm:"primaryKey"`

	AdminID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`

	Quantity   int    `gorm:"not null;check:quantity >= 1"`
	FromBranch string `gorm:"not null"`
	ToBranch   string `gorm:"not null"`

	Status        string `gorm:"not null;default:'Pending'"`
	ApprovedBy    *uint
	CompletedDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TransferDAO struct {
	db *gorm.DB
}

func NewTransferDAO(db *gorm.DB) *TransferDAO {
	return &TransferDAO{
		db: db,
	}
}

func (d *TransferDAO) Insert(ctx context.Context, transfer StockTransfer) (StockTransfer, error) {
	result := d.db.WithContext(ctx).Create(&transfer)
	if result.Error != nil {
		return StockTransfer{}, result.Error
	}

	return transfer, nil
}

func (d *TransferDAO) FindByID(ctx context.Context, adminID, id uint) (StockTransfer, error) {
	var transfer StockTransfer

	result := d.db.WithContext(ctx).First(&transfer, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StockTransfer{}, ErrTransferNotFound
		}

		return StockTransfer{}, result.Error
	}

	if transfer.AdminID != adminID {
		return StockTransfer{}, ErrTenantMismatch
	}

	return transfer, nil
}

func (d *TransferDAO) FindAll(ctx context.Context, adminID uint, status string) ([]StockTransfer, error) {
	query := d.db.WithContext(ctx).Where("admin_id = ?", adminID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var transfers []StockTransfer
	result := query.Order("id").Find(&transfers)
	if result.Error != nil {
		return nil, result.Error
	}

	return transfers, nil
}

// UpdateStatus moves a transfer to a non-completing state (In Transit or
// Cancelled). The WHERE clause re-checks the current status so two racing
// transitions cannot both win.
func (d *TransferDAO) UpdateStatus(ctx context.Context, adminID, id uint, from []string, to string, approvedBy *uint) (StockTransfer, error) {
	updates := map[string]interface{}{"status": to}
	if approvedBy != nil {
		updates["approved_by"] = *approvedBy
	}

	result := d.db.WithContext(ctx).Model(&StockTransfer{}).
		Where("id = ? AND admin_id = ? AND status IN ?", id, adminID, from).
		Updates(updates)
	if result.Error != nil {
		return StockTransfer{}, result.Error
	}

	if result.RowsAffected == 0 {
		// Re-read to tell a bad transition apart from a missing or foreign row.
		current, err := d.FindByID(ctx, adminID, id)
		if err != nil {
			return StockTransfer{}, err
		}

		if current.Status == "Completed" || current.Status == "Cancelled" {
			return StockTransfer{}, ErrTransferIsTerminal
		}

		return StockTransfer{}, ErrInvalidTransition
	}

	return d.FindByID(ctx, adminID, id)
}

// Complete finalizes a transfer: atomically decrement the source product,
// increment (or create) the destination branch's row for the same product
// name, and mark the transfer Completed with a completion date. Everything
// happens in one transaction; a stock shortage rolls the whole step back.
func (d *TransferDAO) Complete(ctx context.Context, adminID, id uint, approvedBy *uint) (StockTransfer, error) {
	var completed StockTransfer

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transfer StockTransfer
		if err := tx.First(&transfer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransferNotFound
			}

			return err
		}
		if transfer.AdminID != adminID {
			return ErrTenantMismatch
		}

		// Claim the transfer first; losing a race leaves stock untouched.
		now := time.Now()
		updates := map[string]interface{}{
			"status":         "Completed",
			"completed_date": now,
		}
		if approvedBy != nil {
			updates["approved_by"] = *approvedBy
		}

		claim := tx.Model(&StockTransfer{}).
			Where("id = ? AND admin_id = ? AND status IN ?", id, adminID, []string{"Pending", "In Transit"}).
			Updates(updates)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			if transfer.Status == "Completed" || transfer.Status == "Cancelled" {
				return ErrTransferIsTerminal
			}

			return ErrInvalidTransition
		}

		var source Product
		if err := tx.First(&source, transfer.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}

			return err
		}
		if source.AdminID != adminID {
			return ErrTenantMismatch
		}

		if err := adjustQuantityTx(tx, adminID, source.ID, -transfer.Quantity); err != nil {
			return err
		}

		var dest Product
		err := tx.Where("admin_id = ? AND name = ? AND branch = ?", adminID, source.Name, transfer.ToBranch).
			First(&dest).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			dest = Product{
				AdminID:    adminID,
				Branch:     transfer.ToBranch,
				Name:       source.Name,
				Category:   source.Category,
				Quantity:   transfer.Quantity,
				Price:      source.Price,
				CostPrice:  source.CostPrice,
				ExpiryDate: source.ExpiryDate,
				AddedBy:    source.AddedBy,
			}
			if err := tx.Create(&dest).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := adjustQuantityTx(tx, adminID, dest.ID, transfer.Quantity); err != nil {
				return err
			}
		}

		return tx.First(&completed, id).Error
	})
	if err != nil {
		return StockTransfer{}, err
	}

	return completed, nil
}
