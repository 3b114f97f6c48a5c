package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

type mockSaleRepo struct {
	createFn   func(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	findByIDFn func(ctx context.Context, adminID, id uint) (domain.Sale, error)
	findAllFn  func(ctx context.Context, adminID uint, filter repository.SaleFilter) ([]domain.Sale, error)
}

func (m *mockSaleRepo) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	return m.createFn(ctx, sale)
}

func (m *mockSaleRepo) FindByID(ctx context.Context, adminID, id uint) (domain.Sale, error) {
	return m.findByIDFn(ctx, adminID, id)
}

func (m *mockSaleRepo) FindAll(ctx context.Context, adminID uint, filter repository.SaleFilter) ([]domain.Sale, error) {
	return m.findAllFn(ctx, adminID, filter)
}

type mockSaleProductRepo struct {
	findByIDFn func(ctx context.Context, adminID, id uint) (domain.Product, error)
}

func (m *mockSaleProductRepo) FindByID(ctx context.Context, adminID, id uint) (domain.Product, error) {
	return m.findByIDFn(ctx, adminID, id)
}

func TestSaleService_CreateSale(t *testing.T) {
	t.Run("rejects a sale without items", func(t *testing.T) {
		svc := NewSaleService(&mockSaleRepo{}, &mockSaleProductRepo{})

		_, err := svc.CreateSale(context.Background(), 7, 42, domain.Sale{BillNumber: "B-1"})

		assert.ErrorIs(t, err, ErrSaleWithoutItems)
	})

	t.Run("prices come from the tenant's product rows", func(t *testing.T) {
		prices := map[uint]float64{1: 2.50, 2: 4.00}

		var written domain.Sale
		repo := &mockSaleRepo{
			createFn: func(_ context.Context, sale domain.Sale) (domain.Sale, error) {
				written = sale
				sale.ID = 1
				return sale, nil
			},
		}
		products := &mockSaleProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{ID: id, AdminID: adminID, Price: prices[id]}, nil
			},
		}

		svc := NewSaleService(repo, products)

		created, err := svc.CreateSale(context.Background(), 7, 42, domain.Sale{
			BillNumber: "B-1",
			Discount:   1.00,
			Items: []domain.SaleItem{
				{ProductID: 1, Quantity: 4, UnitPrice: 99}, // client-sent price must be ignored
				{ProductID: 2, Quantity: 1},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, uint(7), written.AdminID)
		assert.Equal(t, uint(42), written.SoldBy)
		assert.Equal(t, domain.DefaultBranch, written.Branch)
		assert.Equal(t, 2.50, written.Items[0].UnitPrice)
		assert.Equal(t, 10.0, written.Items[0].Subtotal)
		assert.Equal(t, 4.0, written.Items[1].Subtotal)
		assert.Equal(t, 14.0, written.TotalAmount)
	})

	t.Run("rejects an item from another tenant", func(t *testing.T) {
		products := &mockSaleProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{}, ErrTenantMismatch
			},
		}

		svc := NewSaleService(&mockSaleRepo{}, products)

		_, err := svc.CreateSale(context.Background(), 7, 42, domain.Sale{
			BillNumber: "B-1",
			Items:      []domain.SaleItem{{ProductID: 1, Quantity: 1}},
		})

		assert.ErrorIs(t, err, ErrTenantMismatch)
	})

	t.Run("duplicate bill number propagates", func(t *testing.T) {
		repo := &mockSaleRepo{
			createFn: func(_ context.Context, sale domain.Sale) (domain.Sale, error) {
				return domain.Sale{}, ErrBillNumberExists
			},
		}
		products := &mockSaleProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{ID: id, AdminID: adminID, Price: 1}, nil
			},
		}

		svc := NewSaleService(repo, products)

		_, err := svc.CreateSale(context.Background(), 7, 42, domain.Sale{
			BillNumber: "B-1",
			Items:      []domain.SaleItem{{ProductID: 1, Quantity: 1}},
		})

		assert.ErrorIs(t, err, ErrBillNumberExists)
	})
}
