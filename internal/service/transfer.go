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
	ErrTransferNotFound   = repository.ErrTransferNotFound
	ErrInvalidTransition  = repository.ErrInvalidTransition
	ErrTransferIsTerminal = repository.ErrTransferIsTerminal
	ErrSameBranch         = errors.New("source and destination branch are the same")
)

type TransferRepository interface {
	Create(ctx context.Context, transfer domain.StockTransfer) (domain.StockTransfer, error)
	FindByID(ctx context.Context, adminID, id uint) (domain.StockTransfer, error)
	FindAll(ctx context.Context, adminID uint, status domain.TransferStatus) ([]domain.StockTransfer, error)
	Dispatch(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error)
	Cancel(ctx context.Context, adminID, id uint) (domain.StockTransfer, error)
	Complete(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error)
}

type TransferProductRepository interface {
	FindByID(ctx context.Context, adminID, id uint) (domain.Product, error)
}

type TransferService struct {
	repo     TransferRepository
	products TransferProductRepository
}

func NewTransferService(repo TransferRepository, products TransferProductRepository) *TransferService {
	return &TransferService{
		repo:     repo,
		products: products,
	}
}

// CreateTransfer records a Pending transfer. No stock moves here; movement
// is deferred to completion so cancelling is always safe.
func (s *TransferService) CreateTransfer(ctx context.Context, tenantID uint, transfer domain.StockTransfer) (domain.StockTransfer, error) {
	product, err := s.products.FindByID(ctx, tenantID, transfer.ProductID)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "product", transfer.ProductID)
		}

		return domain.StockTransfer{}, fmt.Errorf("s.products.FindByID -> %w", err)
	}

	transfer.AdminID = tenantID
	transfer.FromBranch = domain.NormalizeBranch(transfer.FromBranch)
	if transfer.FromBranch == domain.DefaultBranch && product.Branch != "" {
		transfer.FromBranch = product.Branch
	}
	transfer.ToBranch = domain.NormalizeBranch(transfer.ToBranch)
	transfer.Status = domain.TransferPending

	if transfer.FromBranch == transfer.ToBranch {
		return domain.StockTransfer{}, ErrSameBranch
	}

	created, err := s.repo.Create(ctx, transfer)
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TransferService) GetTransfer(ctx context.Context, tenantID, id uint) (domain.StockTransfer, error) {
	transfer, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "transfer", id)
		}

		return domain.StockTransfer{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return transfer, nil
}

func (s *TransferService) ListTransfers(ctx context.Context, tenantID uint, status domain.TransferStatus) ([]domain.StockTransfer, error) {
	transfers, err := s.repo.FindAll(ctx, tenantID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return transfers, nil
}

// Dispatch marks a Pending transfer In Transit.
func (s *TransferService) Dispatch(ctx context.Context, tenantID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	transfer, err := s.repo.Dispatch(ctx, tenantID, id, approvedBy)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "transfer", id)
		}

		return domain.StockTransfer{}, fmt.Errorf("s.repo.Dispatch -> %w", err)
	}

	return transfer, nil
}

// Complete moves exactly the transfer quantity from the source branch to the
// destination branch in one atomic step. If the source lacks stock the whole
// step fails and nothing moves.
func (s *TransferService) Complete(ctx context.Context, tenantID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	transfer, err := s.repo.Complete(ctx, tenantID, id, approvedBy)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "transfer", id)
		}

		return domain.StockTransfer{}, fmt.Errorf("s.repo.Complete -> %w", err)
	}

	metrics.TransfersCompleted.Inc()

	return transfer, nil
}

// Cancel aborts a transfer that has not completed. Stock never moved, so
// there is nothing to undo.
func (s *TransferService) Cancel(ctx context.Context, tenantID, id uint) (domain.StockTransfer, error) {
	transfer, err := s.repo.Cancel(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrTenantMismatch) {
			logTenantMismatch(tenantID, "transfer", id)
		}

		return domain.StockTransfer{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return transfer, nil
}
