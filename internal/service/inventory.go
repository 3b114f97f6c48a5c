package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/metrics"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

var (
	ErrProductNotFound   = repository.ErrProductNotFound
	ErrBatchNotFound     = repository.ErrBatchNotFound
	ErrInsufficientStock = repository.ErrInsufficientStock
	ErrTenantMismatch    = repository.ErrTenantMismatch
)

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, adminID, id uint) (domain.Product, error)
	FindAll(ctx context.Context, adminID uint, filter repository.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, adminID, id uint) error
	AdjustStock(ctx context.Context, adminID, id uint, delta int) error
	CreateBatch(ctx context.Context, batch domain.Batch) (domain.Batch, error)
	FindBatches(ctx context.Context, adminID, productID uint) ([]domain.Batch, error)
	DeleteBatch(ctx context.Context, adminID, batchID uint) error
}

type ProductListFilter struct {
	Branch       string
	Category     string
	ExpiryStatus domain.ExpiryStatus
}

type InventoryService struct {
	repo ProductRepository
}

func NewInventoryService(repo ProductRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// CreateProduct stamps the record with the caller's tenant id and the
// creating user, and normalizes the branch before writing.
func (s *InventoryService) CreateProduct(ctx context.Context, tenantID, addedBy uint, product domain.Product) (domain.Product, error) {
	product.AdminID = tenantID
	product.AddedBy = addedBy
	product.Branch = domain.NormalizeBranch(product.Branch)

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *InventoryService) GetProduct(ctx context.Context, tenantID, id uint) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", id)
		}

		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

func (s *InventoryService) ListProducts(ctx context.Context, tenantID uint, filter ProductListFilter) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx, tenantID, repository.ProductFilter{
		Branch:   filter.Branch,
		Category: filter.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	if filter.ExpiryStatus == "" {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ExpiryStatus() == filter.ExpiryStatus {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

// UpdateProduct rewrites the mutable fields of a product. The tenant id is
// taken from the caller, never from the payload, so ownership cannot move.
func (s *InventoryService) UpdateProduct(ctx context.Context, tenantID uint, product domain.Product) (domain.Product, error) {
	product.AdminID = tenantID
	product.Branch = domain.NormalizeBranch(product.Branch)

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", product.ID)
		}

		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, tenantID, id uint) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", id)
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// AdjustStock applies a delta to a product's stock. The repository performs
// the change as one conditional update, so the counter can never go negative
// and concurrent adjustments cannot partially apply.
func (s *InventoryService) AdjustStock(ctx context.Context, tenantID, id uint, delta int) (domain.Product, error) {
	if err := s.repo.AdjustStock(ctx, tenantID, id, delta); err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", id)
		}

		return domain.Product{}, fmt.Errorf("s.repo.AdjustStock -> %w", err)
	}

	metrics.StockAdjustments.Inc()

	product, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

// AddBatch records a dated sub-lot under a product the tenant owns. The
// product's flat counter is resynced to the batch sum by the repository.
func (s *InventoryService) AddBatch(ctx context.Context, tenantID uint, batch domain.Batch) (domain.Batch, error) {
	if _, err := s.repo.FindByID(ctx, tenantID, batch.ProductID); err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", batch.ProductID)
		}

		return domain.Batch{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	batch.AdminID = tenantID

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

func (s *InventoryService) ListBatches(ctx context.Context, tenantID, productID uint) ([]domain.Batch, error) {
	if _, err := s.repo.FindByID(ctx, tenantID, productID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	batches, err := s.repo.FindBatches(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBatches -> %w", err)
	}

	return batches, nil
}

func (s *InventoryService) DeleteBatch(ctx context.Context, tenantID, batchID uint) error {
	if err := s.repo.DeleteBatch(ctx, tenantID, batchID); err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "batch", batchID)
		}

		return fmt.Errorf("s.repo.DeleteBatch -> %w", err)
	}

	return nil
}

// logTenantMismatch records a cross-tenant access attempt. These are
// security faults, not routine not-founds, so they are logged and counted.
func logTenantMismatch(tenantID uint, record string, id uint) {
	metrics.TenantMismatches.Inc()
	zap.L().Warn("cross-tenant access rejected",
		zap.Uint("tenant_id", tenantID),
		zap.String("record", record),
		zap.Uint("record_id", id),
	)
}
