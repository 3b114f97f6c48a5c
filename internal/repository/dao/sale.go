package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrBillNumberExists = errors.New("bill number already used by this shop")
	ErrSaleWithoutItems = errors.New("sale has no items")
)

type Sale struct {
	ID uint `gorm:"primaryKey"`

	// Bill numbers are unique per tenant, not globally. The composite index
	// lets two shops both issue "BILL-0001" while rejecting a reuse within
	// one shop.
	AdminID    uint   `gorm:"not null;uniqueIndex:idx_sales_admin_bill,priority:1"`
	BillNumber string `gorm:"not null;uniqueIndex:idx_sales_admin_bill,priority:2"`

	Branch string `gorm:"not null"`

	Items []SaleItem `gorm:"foreignKey:SaleID"`

	TotalAmount float64 `gorm:"not null"`
	Discount    float64 `gorm:"not null;default:0"`
	SoldBy      uint    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SaleItem struct {
	ID uint `gorm:"primaryKey"`

	SaleID    uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null"`

	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	Subtotal  float64 `gorm:"not null"`
}

type SaleFilter struct {
	Branch string
	From   *time.Time
	To     *time.Time
}

type SaleDAO struct {
	db *gorm.DB
}

func NewSaleDAO(db *gorm.DB) *SaleDAO {
	return &SaleDAO{
		db: db,
	}
}

// Insert records the bill and decrements stock for every line item in one
// transaction. A duplicate bill number within the tenant or a stock
// shortage on any item rolls the whole sale back.
func (d *SaleDAO) Insert(ctx context.Context, sale Sale) (Sale, error) {
	if len(sale.Items) == 0 {
		return Sale{}, ErrSaleWithoutItems
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "idx_sales_admin_bill") {
				return ErrBillNumberExists
			}

			return err
		}

		for _, item := range sale.Items {
			if err := adjustQuantityTx(tx, sale.AdminID, item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Sale{}, err
	}

	return sale, nil
}

func (d *SaleDAO) FindByID(ctx context.Context, adminID, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).Preload("Items").First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	if sale.AdminID != adminID {
		return Sale{}, ErrTenantMismatch
	}

	return sale, nil
}

func (d *SaleDAO) FindAll(ctx context.Context, adminID uint, filter SaleFilter) ([]Sale, error) {
	query := d.db.WithContext(ctx).Where("admin_id = ?", adminID)

	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var sales []Sale
	result := query.Preload("Items").Order("id").Find(&sales)
	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}
