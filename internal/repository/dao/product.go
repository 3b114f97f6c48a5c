package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBatchNotFound     = errors.New("batch not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTenantMismatch    = errors.New("record belongs to another tenant")
)

type Product struct {
	ID uint `gorm:"primaryKey"`

	// AdminID is the owning tenant. Stamped at creation, never updated.
	AdminID uint `gorm:"not null;index:idx_products_admin_branch,priority:1"`

	Branch   string `gorm:"not null;index:idx_products_admin_branch,priority:2"`
	Name     string `gorm:"not null"`
	Category string

	Quantity  int `gorm:"not null;default:0"`
	Price     float64
	CostPrice float64

	ExpiryDate *time.Time
	AddedBy    uint `gorm:"not null"`

	Batches []Batch `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Batch struct {
	ID uint `gorm:"primaryKey"`

	AdminID   uint   `gorm:"not null;index"`
	ProductID uint   `gorm:"not null;index"`
	BatchCode string `gorm:"not null"`

	Quantity        int       `gorm:"not null"`
	ManufactureDate time.Time `gorm:"not null"`
	ExpiryDate      time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductFilter struct {
	Branch   string
	Category string
}

type ProductDAO struct {
	db *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{
		db: db,
	}
}

func (d *ProductDAO) Insert(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Create(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

// FindByID loads a product and verifies tenant ownership. A record owned by
// another tenant fails closed with ErrTenantMismatch, never with data.
func (d *ProductDAO) FindByID(ctx context.Context, adminID, id uint) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	if product.AdminID != adminID {
		return Product{}, ErrTenantMismatch
	}

	return product, nil
}

func (d *ProductDAO) FindAll(ctx context.Context, adminID uint, filter ProductFilter) ([]Product, error) {
	query := d.db.WithContext(ctx).Where("admin_id = ?", adminID)

	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var products []Product
	result := query.Order("id").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// FindByNameAndBranch locates a tenant's product row for one branch.
// Used by transfer completion to resolve the destination row.
func (d *ProductDAO) FindByNameAndBranch(ctx context.Context, adminID uint, name, branch string) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).
		Where("admin_id = ? AND name = ? AND branch = ?", adminID, name, branch).
		First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	return product, nil
}

func (d *ProductDAO) Update(ctx context.Context, product Product) (Product, error) {
	current, err := d.FindByID(ctx, product.AdminID, product.ID)
	if err != nil {
		return Product{}, err
	}

	current.Branch = product.Branch
	current.Name = product.Name
	current.Category = product.Category
	current.Price = product.Price
	current.CostPrice = product.CostPrice
	current.ExpiryDate = product.ExpiryDate

	result := d.db.WithContext(ctx).Save(&current)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return current, nil
}

func (d *ProductDAO) Delete(ctx context.Context, adminID, id uint) error {
	if _, err := d.FindByID(ctx, adminID, id); err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ? AND admin_id = ?", id, adminID).Delete(&Batch{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND admin_id = ?", id, adminID).Delete(&Product{}).Error
	})
}

// AdjustQuantity applies delta to a product's stock as a single conditional
// update. The guard keeps concurrent adjustments from driving the counter
// negative; callers racing for the last units lose with ErrInsufficientStock.
func (d *ProductDAO) AdjustQuantity(ctx context.Context, adminID, id uint, delta int) error {
	return adjustQuantityTx(d.db.WithContext(ctx), adminID, id, delta)
}

func adjustQuantityTx(tx *gorm.DB, adminID, id uint, delta int) error {
	result := tx.Model(&Product{}).
		Where("id = ? AND admin_id = ? AND quantity + ? >= 0", id, adminID, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Guard failed. Distinguish a missing row, a foreign row and a
		// stock shortage so the caller gets the right error.
		var product Product
		err := tx.First(&product, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrProductNotFound
		case err != nil:
			return err
		case product.AdminID != adminID:
			return ErrTenantMismatch
		default:
			return ErrInsufficientStock
		}
	}

	return nil
}

// InsertBatch records a batch and resyncs the owning product's quantity to
// the batch sum in the same transaction, so the flat counter and the batch
// ledger cannot diverge on batch writes.
func (d *ProductDAO) InsertBatch(ctx context.Context, batch Batch) (Batch, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		return resyncProductQuantity(tx, batch.AdminID, batch.ProductID)
	})
	if err != nil {
		return Batch{}, err
	}

	return batch, nil
}

func (d *ProductDAO) FindBatches(ctx context.Context, adminID, productID uint) ([]Batch, error) {
	var batches []Batch

	result := d.db.WithContext(ctx).
		Where("admin_id = ? AND product_id = ?", adminID, productID).
		Order("expiry_date").
		Find(&batches)
	if result.Error != nil {
		return nil, result.Error
	}

	return batches, nil
}

func (d *ProductDAO) DeleteBatch(ctx context.Context, adminID, batchID uint) error {
	var batch Batch
	if err := d.db.WithContext(ctx).First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBatchNotFound
		}

		return err
	}
	if batch.AdminID != adminID {
		return ErrTenantMismatch
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Batch{}, batchID).Error; err != nil {
			return err
		}

		return resyncProductQuantity(tx, batch.AdminID, batch.ProductID)
	})
}

func resyncProductQuantity(tx *gorm.DB, adminID, productID uint) error {
	return tx.Model(&Product{}).
		Where("id = ? AND admin_id = ?", productID, adminID).
		UpdateColumn("quantity", gorm.Expr(
			"(SELECT COALESCE(SUM(quantity), 0) FROM batches WHERE product_id = ?)", productID,
		)).Error
}
