package repository

import (
	"context"
	"fmt"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository/dao"
)

var (
	ErrProductNotFound   = dao.ErrProductNotFound
	ErrBatchNotFound     = dao.ErrBatchNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
	ErrTenantMismatch    = dao.ErrTenantMismatch
)

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	FindByID(ctx context.Context, adminID, id uint) (dao.Product, error)
	FindAll(ctx context.Context, adminID uint, filter dao.ProductFilter) ([]dao.Product, error)
	Update(ctx context.Context, product dao.Product) (dao.Product, error)
	Delete(ctx context.Context, adminID, id uint) error
	AdjustQuantity(ctx context.Context, adminID, id uint, delta int) error
	InsertBatch(ctx context.Context, batch dao.Batch) (dao.Batch, error)
	FindBatches(ctx context.Context, adminID, productID uint) ([]dao.Batch, error)
	DeleteBatch(ctx context.Context, adminID, batchID uint) error
}

type ProductFilter struct {
	Branch   string
	Category string
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, adminID, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, adminID, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProductRepository) FindAll(ctx context.Context, adminID uint, filter ProductFilter) ([]domain.Product, error) {
	found, err := r.dao.FindAll(ctx, adminID, dao.ProductFilter{
		Branch:   filter.Branch,
		Category: filter.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	products := make([]domain.Product, len(found))
	for i, p := range found {
		products[i] = r.daoToDomain(p)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProductRepository) Delete(ctx context.Context, adminID, id uint) error {
	if err := r.dao.Delete(ctx, adminID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ProductRepository) AdjustStock(ctx context.Context, adminID, id uint, delta int) error {
	if err := r.dao.AdjustQuantity(ctx, adminID, id, delta); err != nil {
		return fmt.Errorf("r.dao.AdjustQuantity -> %w", err)
	}

	return nil
}

func (r *ProductRepository) CreateBatch(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	created, err := r.dao.InsertBatch(ctx, dao.Batch{
		AdminID:         batch.AdminID,
		ProductID:       batch.ProductID,
		BatchCode:       batch.BatchCode,
		Quantity:        batch.Quantity,
		ManufactureDate: batch.ManufactureDate,
		ExpiryDate:      batch.ExpiryDate,
	})
	if err != nil {
		return domain.Batch{}, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.batchDaoToDomain(created), nil
}

func (r *ProductRepository) FindBatches(ctx context.Context, adminID, productID uint) ([]domain.Batch, error) {
	found, err := r.dao.FindBatches(ctx, adminID, productID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBatches -> %w", err)
	}

	batches := make([]domain.Batch, len(found))
	for i, b := range found {
		batches[i] = r.batchDaoToDomain(b)
	}

	return batches, nil
}

func (r *ProductRepository) DeleteBatch(ctx context.Context, adminID, batchID uint) error {
	if err := r.dao.DeleteBatch(ctx, adminID, batchID); err != nil {
		return fmt.Errorf("r.dao.DeleteBatch -> %w", err)
	}

	return nil
}

func (r *ProductRepository) domainToDao(p domain.Product) dao.Product {
	return dao.Product{
		ID:         p.ID,
		AdminID:    p.AdminID,
		Branch:     p.Branch,
		Name:       p.Name,
		Category:   p.Category,
		Quantity:   p.Quantity,
		Price:      p.Price,
		CostPrice:  p.CostPrice,
		ExpiryDate: p.ExpiryDate,
		AddedBy:    p.AddedBy,
	}
}

func (r *ProductRepository) daoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:         p.ID,
		AdminID:    p.AdminID,
		Branch:     p.Branch,
		Name:       p.Name,
		Category:   p.Category,
		Quantity:   p.Quantity,
		Price:      p.Price,
		CostPrice:  p.CostPrice,
		ExpiryDate: p.ExpiryDate,
		AddedBy:    p.AddedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *ProductRepository) batchDaoToDomain(b dao.Batch) domain.Batch {
	return domain.Batch{
		ID:              b.ID,
		AdminID:         b.AdminID,
		ProductID:       b.ProductID,
		BatchCode:       b.BatchCode,
		Quantity:        b.Quantity,
		ManufactureDate: b.ManufactureDate,
		ExpiryDate:      b.ExpiryDate,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
