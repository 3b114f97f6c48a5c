package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

type mockAuthUserRepo struct {
	createFn      func(ctx context.Context, user domain.User) (domain.User, error)
	findByEmailFn func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.createFn(ctx, user)
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.findByEmailFn(ctx, email)
}

func TestAuthService_SignupAdmin(t *testing.T) {
	var written domain.User
	repo := &mockAuthUserRepo{
		createFn: func(_ context.Context, user domain.User) (domain.User, error) {
			written = user
			user.ID = 1
			return user, nil
		},
	}

	svc := NewAuthService(repo)

	created, err := svc.SignupAdmin(context.Background(), domain.User{
		Email:    "owner@bakehouse.test",
		Password: "hunter2baguette",
		ShopName: "Bakehouse",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, domain.RoleAdmin, written.Role)
	assert.Nil(t, written.AdminID)
	assert.Equal(t, domain.DefaultBranch, written.Branch)

	// The stored password is a bcrypt hash of the original.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(written.Password), []byte("hunter2baguette")))
}

func TestAuthService_SignupStaff(t *testing.T) {
	t.Run("unknown admin email", func(t *testing.T) {
		repo := &mockAuthUserRepo{
			findByEmailFn: func(_ context.Context, email string) (domain.User, error) {
				return domain.User{}, repository.ErrUserNotFound
			},
		}

		svc := NewAuthService(repo)

		_, err := svc.SignupStaff(context.Background(), domain.User{}, "nobody@bakehouse.test")

		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("staff account cannot anchor other staff", func(t *testing.T) {
		adminID := uint(7)
		repo := &mockAuthUserRepo{
			findByEmailFn: func(_ context.Context, email string) (domain.User, error) {
				return domain.User{ID: 9, Role: domain.RoleStaff, AdminID: &adminID}, nil
			},
		}

		svc := NewAuthService(repo)

		_, err := svc.SignupStaff(context.Background(), domain.User{}, "staff@bakehouse.test")

		assert.ErrorIs(t, err, ErrAdminNotFound)
	})

	t.Run("anchors the staff to the admin's tenant", func(t *testing.T) {
		var written domain.User
		repo := &mockAuthUserRepo{
			findByEmailFn: func(_ context.Context, email string) (domain.User, error) {
				return domain.User{ID: 7, Role: domain.RoleAdmin}, nil
			},
			createFn: func(_ context.Context, user domain.User) (domain.User, error) {
				written = user
				user.ID = 8
				return user, nil
			},
		}

		svc := NewAuthService(repo)

		created, err := svc.SignupStaff(context.Background(), domain.User{
			Email:    "staff@bakehouse.test",
			Password: "hunter2baguette",
		}, "owner@bakehouse.test")

		require.NoError(t, err)
		assert.Equal(t, uint(8), created.ID)
		assert.Equal(t, domain.RoleStaff, written.Role)
		require.NotNil(t, written.AdminID)
		assert.Equal(t, uint(7), *written.AdminID)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2baguette"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockAuthUserRepo{
		findByEmailFn: func(_ context.Context, email string) (domain.User, error) {
			if email != "owner@bakehouse.test" {
				return domain.User{}, repository.ErrUserNotFound
			}
			return domain.User{ID: 1, Email: email, Password: string(hash)}, nil
		},
	}

	svc := NewAuthService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "owner@bakehouse.test", "hunter2baguette")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "owner@bakehouse.test", "wrong")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@bakehouse.test", "hunter2baguette")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
