package repository

import (
	"context"
	"fmt"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository/dao"
)

var (
	ErrTransferNotFound   = dao.ErrTransferNotFound
	ErrInvalidTransition  = dao.ErrInvalidTransition
	ErrTransferIsTerminal = dao.ErrTransferIsTerminal
)

type TransferDAO interface {
	Insert(ctx context.Context, transfer dao.StockTransfer) (dao.StockTransfer, error)
	FindByID(ctx context.Context, adminID, id uint) (dao.StockTransfer, error)
	FindAll(ctx context.Context, adminID uint, status string) ([]dao.StockTransfer, error)
	UpdateStatus(ctx context.Context, adminID, id uint, from []string, to string, approvedBy *uint) (dao.StockTransfer, error)
	Complete(ctx context.Context, adminID, id uint, approvedBy *uint) (dao.StockTransfer, error)
}

type TransferRepository struct {
	dao TransferDAO
}

func NewTransferRepository(dao TransferDAO) *TransferRepository {
	return &TransferRepository{
		dao: dao,
	}
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.StockTransfer) (domain.StockTransfer, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(transfer))
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TransferRepository) FindByID(ctx context.Context, adminID, id uint) (domain.StockTransfer, error) {
	found, err := r.dao.FindByID(ctx, adminID, id)
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TransferRepository) FindAll(ctx context.Context, adminID uint, status domain.TransferStatus) ([]domain.StockTransfer, error) {
	found, err := r.dao.FindAll(ctx, adminID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	transfers := make([]domain.StockTransfer, len(found))
	for i, t := range found {
		transfers[i] = r.daoToDomain(t)
	}

	return transfers, nil
}

// Dispatch moves a Pending transfer to In Transit.
func (r *TransferRepository) Dispatch(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	updated, err := r.dao.UpdateStatus(ctx, adminID, id,
		[]string{string(domain.TransferPending)}, string(domain.TransferInTransit), approvedBy)
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Cancel aborts a non-terminal transfer. No stock has moved yet, so this is
// always side-effect free.
func (r *TransferRepository) Cancel(ctx context.Context, adminID, id uint) (domain.StockTransfer, error) {
	updated, err := r.dao.UpdateStatus(ctx, adminID, id,
		[]string{string(domain.TransferPending), string(domain.TransferInTransit)},
		string(domain.TransferCancelled), nil)
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Complete finalizes the transfer and moves the stock atomically.
func (r *TransferRepository) Complete(ctx context.Context, adminID, id uint, approvedBy *uint) (domain.StockTransfer, error) {
	completed, err := r.dao.Complete(ctx, adminID, id, approvedBy)
	if err != nil {
		return domain.StockTransfer{}, fmt.Errorf("r.dao.Complete -> %w", err)
	}

	return r.daoToDomain(completed), nil
}

func (r *TransferRepository) domainToDao(t domain.StockTransfer) dao.StockTransfer {
	return dao.StockTransfer{
		ID:            t.ID,
		AdminID:       t.AdminID,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		FromBranch:    t.FromBranch,
		ToBranch:      t.ToBranch,
		Status:        string(t.Status),
		ApprovedBy:    t.ApprovedBy,
		CompletedDate: t.CompletedDate,
	}
}

func (r *TransferRepository) daoToDomain(t dao.StockTransfer) domain.StockTransfer {
	return domain.StockTransfer{
		ID:            t.ID,
		AdminID:       t.AdminID,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		FromBranch:    t.FromBranch,
		ToBranch:      t.ToBranch,
		Status:        domain.TransferStatus(t.Status),
		ApprovedBy:    t.ApprovedBy,
		CompletedDate: t.CompletedDate,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
