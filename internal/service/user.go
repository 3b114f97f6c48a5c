package service

import (
	"context"
	"fmt"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindStaff(ctx context.Context, adminID uint) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// GetStaff lists the staff accounts of the caller's tenant.
func (s *UserService) GetStaff(ctx context.Context, tenantID uint) ([]domain.User, error) {
	staff, err := s.repo.FindStaff(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindStaff -> %w", err)
	}

	return staff, nil
}
