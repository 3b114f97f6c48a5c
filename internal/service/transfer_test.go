package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenledger/bakehouse-api/internal/domain"
)

type mockTransferRepo struct {
	createFn   func(ctx context.Context, transfer domain.StockTransfer) (domain.StockTransfer, error)
	findByIDFn func(ctx context.Context, adminID, id uint) (domain.StockTransfer, error)
	findAllFn  func(ctx context.Context, adminID uint, status domain.TransferStatus) ([]domain.StockTransfer, error)
	dispatchFn func(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error)
	cancelFn   func(ctx context.Context, adminID, id uint) (domain.StockTransfer, error)
	completeFn func(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error)
}

func (m *mockTransferRepo) Create(ctx context.Context, transfer domain.StockTransfer) (domain.StockTransfer, error) {
	return m.createFn(ctx, transfer)
}

func (m *mockTransferRepo) FindByID(ctx context.Context, adminID, id uint) (domain.StockTransfer, error) {
	return m.findByIDFn(ctx, adminID, id)
}

func (m *mockTransferRepo) FindAll(ctx context.Context, adminID uint, status domain.TransferStatus) ([]domain.StockTransfer, error) {
	return m.findAllFn(ctx, adminID, status)
}

func (m *mockTransferRepo) Dispatch(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	return m.dispatchFn(ctx, adminID, id, approvedBy)
}

func (m *mockTransferRepo) Cancel(ctx context.Context, adminID, id uint) (domain.StockTransfer, error) {
	return m.cancelFn(ctx, adminID, id)
}

func (m *mockTransferRepo) Complete(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	return m.completeFn(ctx, adminID, id, approvedBy)
}

type mockTransferProductRepo struct {
	findByIDFn func(ctx context.Context, adminID, id uint) (domain.Product, error)
}

func (m *mockTransferProductRepo) FindByID(ctx context.Context, adminID, id uint) (domain.Product, error) {
	return m.findByIDFn(ctx, adminID, id)
}

func TestTransferService_CreateTransfer(t *testing.T) {
	t.Run("defaults the source branch to the product's branch", func(t *testing.T) {
		var written domain.StockTransfer
		repo := &mockTransferRepo{
			createFn: func(_ context.Context, transfer domain.StockTransfer) (domain.StockTransfer, error) {
				written = transfer
				transfer.ID = 1
				return transfer, nil
			},
		}
		products := &mockTransferProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{ID: id, AdminID: adminID, Branch: "Riverside"}, nil
			},
		}

		svc := NewTransferService(repo, products)

		created, err := svc.CreateTransfer(context.Background(), 7, domain.StockTransfer{
			ProductID: 1,
			Quantity:  10,
			ToBranch:  "Downtown",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, uint(7), written.AdminID)
		assert.Equal(t, "Riverside", written.FromBranch)
		assert.Equal(t, "Downtown", written.ToBranch)
		assert.Equal(t, domain.TransferPending, written.Status)
	})

	t.Run("rejects a transfer to the same branch", func(t *testing.T) {
		repo := &mockTransferRepo{}
		products := &mockTransferProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{ID: id, AdminID: adminID, Branch: "Riverside"}, nil
			},
		}

		svc := NewTransferService(repo, products)

		_, err := svc.CreateTransfer(context.Background(), 7, domain.StockTransfer{
			ProductID:  1,
			Quantity:   10,
			FromBranch: "Riverside",
			ToBranch:   " Riverside ",
		})

		assert.ErrorIs(t, err, ErrSameBranch)
	})

	t.Run("rejects a product owned by another tenant", func(t *testing.T) {
		repo := &mockTransferRepo{}
		products := &mockTransferProductRepo{
			findByIDFn: func(_ context.Context, adminID, id uint) (domain.Product, error) {
				return domain.Product{}, ErrTenantMismatch
			},
		}

		svc := NewTransferService(repo, products)

		_, err := svc.CreateTransfer(context.Background(), 7, domain.StockTransfer{
			ProductID: 1,
			Quantity:  10,
			ToBranch:  "Downtown",
		})

		assert.ErrorIs(t, err, ErrTenantMismatch)
	})
}

func TestTransferService_Complete(t *testing.T) {
	t.Run("invalid transition propagates", func(t *testing.T) {
		repo := &mockTransferRepo{
			completeFn: func(_ context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
				return domain.StockTransfer{}, ErrInvalidTransition
			},
		}

		svc := NewTransferService(repo, &mockTransferProductRepo{})

		_, err := svc.Complete(context.Background(), 7, 1, nil)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("insufficient source stock propagates", func(t *testing.T) {
		repo := &mockTransferRepo{
			completeFn: func(_ context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
				return domain.StockTransfer{}, ErrInsufficientStock
			},
		}

		svc := NewTransferService(repo, &mockTransferProductRepo{})

		_, err := svc.Complete(context.Background(), 7, 1, nil)

		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("returns the completed transfer", func(t *testing.T) {
		approver := uint(42)
		repo := &mockTransferRepo{
			completeFn: func(_ context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
				return domain.StockTransfer{ID: id, Status: domain.TransferCompleted, ApprovedBy: approvedBy}, nil
			},
		}

		svc := NewTransferService(repo, &mockTransferProductRepo{})

		transfer, err := svc.Complete(context.Background(), 7, 1, &approver)

		require.NoError(t, err)
		assert.Equal(t, domain.TransferCompleted, transfer.Status)
		require.NotNil(t, transfer.ApprovedBy)
		assert.Equal(t, approver, *transfer.ApprovedBy)
	})
}

func TestTransferService_Cancel(t *testing.T) {
	repo := &mockTransferRepo{
		cancelFn: func(_ context.Context, adminID, id uint) (domain.StockTransfer, error) {
			return domain.StockTransfer{ID: id, Status: domain.TransferCancelled}, nil
		},
	}

	svc := NewTransferService(repo, &mockTransferProductRepo{})

	transfer, err := svc.Cancel(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.TransferCancelled, transfer.Status)
}
