package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository/dao"
)

var (
	ErrSaleNotFound     = dao.ErrSaleNotFound
	ErrBillNumberExists = dao.ErrBillNumberExists
	ErrSaleWithoutItems = dao.ErrSaleWithoutItems
)

type SaleDAO interface {
	Insert(ctx context.Context, sale dao.Sale) (dao.Sale, error)
	FindByID(ctx context.Context, adminID, id uint) (dao.Sale, error)
	FindAll(ctx context.Context, adminID uint, filter dao.SaleFilter) ([]dao.Sale, error)
}

type SaleFilter struct {
	Branch string
	From   *time.Time
	To     *time.Time
}

type SaleRepository struct {
	dao SaleDAO
}

func NewSaleRepository(dao SaleDAO) *SaleRepository {
	return &SaleRepository{
		dao: dao,
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(sale))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, adminID, id uint) (domain.Sale, error) {
	found, err := r.dao.FindByID(ctx, adminID, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SaleRepository) FindAll(ctx context.Context, adminID uint, filter SaleFilter) ([]domain.Sale, error) {
	found, err := r.dao.FindAll(ctx, adminID, dao.SaleFilter{
		Branch: filter.Branch,
		From:   filter.From,
		To:     filter.To,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	sales := make([]domain.Sale, len(found))
	for i, s := range found {
		sales[i] = r.daoToDomain(s)
	}

	return sales, nil
}

func (r *SaleRepository) domainToDao(s domain.Sale) dao.Sale {
	items := make([]dao.SaleItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = dao.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	return dao.Sale{
		ID:          s.ID,
		AdminID:     s.AdminID,
		BillNumber:  s.BillNumber,
		Branch:      s.Branch,
		Items:       items,
		TotalAmount: s.TotalAmount,
		Discount:    s.Discount,
		SoldBy:      s.SoldBy,
	}
}

func (r *SaleRepository) daoToDomain(s dao.Sale) domain.Sale {
	items := make([]domain.SaleItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = domain.SaleItem{
			ID:        item.ID,
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	return domain.Sale{
		ID:          s.ID,
		AdminID:     s.AdminID,
		BillNumber:  s.BillNumber,
		Branch:      s.Branch,
		Items:       items,
		TotalAmount: s.TotalAmount,
		Discount:    s.Discount,
		SoldBy:      s.SoldBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
