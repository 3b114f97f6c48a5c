package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_EffectiveTenantID(t *testing.T) {
	adminID := uint(7)

	tests := []struct {
		name string
		user User
		want uint
	}{
		{
			name: "admin is its own tenant",
			user: User{ID: 7, Role: RoleAdmin},
			want: 7,
		},
		{
			name: "staff resolves to its admin",
			user: User{ID: 42, Role: RoleStaff, AdminID: &adminID},
			want: 7,
		},
		{
			name: "staff without admin falls back to itself",
			user: User{ID: 42, Role: RoleStaff},
			want: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.EffectiveTenantID())
		})
	}
}
