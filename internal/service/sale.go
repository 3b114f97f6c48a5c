package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/metrics"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

var (
	ErrSaleNotFound     = repository.ErrSaleNotFound
	ErrBillNumberExists = repository.ErrBillNumberExists
	ErrSaleWithoutItems = repository.ErrSaleWithoutItems
)

type SaleRepository interface {
	Create(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	FindByID(ctx context.Context, adminID, id uint) (domain.Sale, error)
	FindAll(ctx context.Context, adminID uint, filter repository.SaleFilter) ([]domain.Sale, error)
}

type SaleProductRepository interface {
	FindByID(ctx context.Context, adminID, id uint) (domain.Product, error)
}

type SaleService struct {
	repo     SaleRepository
	products SaleProductRepository
}

func NewSaleService(repo SaleRepository, products SaleProductRepository) *SaleService {
	return &SaleService{
		repo:     repo,
		products: products,
	}
}

// CreateSale records a bill. Prices come from the tenant's own product rows,
// totals are computed here, and the repository decrements stock per line
// item atomically. A bill number may repeat across tenants but never within
// one.
func (s *SaleService) CreateSale(ctx context.Context, tenantID, soldBy uint, sale domain.Sale) (domain.Sale, error) {
	if len(sale.Items) == 0 {
		return domain.Sale{}, ErrSaleWithoutItems
	}

	sale.AdminID = tenantID
	sale.SoldBy = soldBy
	sale.Branch = domain.NormalizeBranch(sale.Branch)

	var total float64
	for i, item := range sale.Items {
		product, err := s.products.FindByID(ctx, tenantID, item.ProductID)
		if err != nil {
			if errors.Is(err, ErrTenantMismatch) {
				logTenantMismatch(tenantID, "product", item.ProductID)
			}

			return domain.Sale{}, fmt.Errorf("s.products.FindByID -> %w", err)
		}

		sale.Items[i].UnitPrice = product.Price
		sale.Items[i].Subtotal = product.Price * float64(item.Quantity)
		total += sale.Items[i].Subtotal
	}
	sale.TotalAmount = total

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	metrics.SalesRecorded.Inc()

	return created, nil
}

func (s *SaleService) GetSale(ctx context.Context, tenantID, id uint) (domain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "sale", id)
		}

		return domain.Sale{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context, tenantID uint, filter repository.SaleFilter) ([]domain.Sale, error) {
	sales, err := s.repo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return sales, nil
}
