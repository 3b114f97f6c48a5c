package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "owner@bakehouse.test",
		Password:        "baguette42",
		ConfirmPassword: "baguette42",
		Name:            "Sam",
		Role:            "admin",
	}

	tests := []struct {
		name    string
		mutate  func(req *SignupRequest)
		wantErr error
	}{
		{
			name:   "valid admin signup",
			mutate: func(req *SignupRequest) {},
		},
		{
			name: "valid staff signup",
			mutate: func(req *SignupRequest) {
				req.Role = "staff"
				req.AdminEmail = "owner@bakehouse.test"
			},
		},
		{
			name: "password too short",
			mutate: func(req *SignupRequest) {
				req.Password = "ab1"
				req.ConfirmPassword = "ab1"
			},
			wantErr: errInvalidPassword,
		},
		{
			name: "password without a digit",
			mutate: func(req *SignupRequest) {
				req.Password = "baguettes"
				req.ConfirmPassword = "baguettes"
			},
			wantErr: errInvalidPassword,
		},
		{
			name: "password without a letter",
			mutate: func(req *SignupRequest) {
				req.Password = "12345678"
				req.ConfirmPassword = "12345678"
			},
			wantErr: errInvalidPassword,
		},
		{
			name: "confirm password mismatch",
			mutate: func(req *SignupRequest) {
				req.ConfirmPassword = "baguette43"
			},
			wantErr: errConfirmPasswordMismatch,
		},
		{
			name: "staff without admin email",
			mutate: func(req *SignupRequest) {
				req.Role = "staff"
			},
			wantErr: errMissingAdminEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSignupRequest_Validate_BadFields(t *testing.T) {
	req := SignupRequest{
		Email:           "not-an-email",
		Password:        "baguette42",
		ConfirmPassword: "baguette42",
		Name:            "Sam",
		Role:            "admin",
	}
	assert.Error(t, req.Validate())

	req.Email = "owner@bakehouse.test"
	req.Role = "superuser"
	assert.Error(t, req.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "owner@bakehouse.test", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "owner@bakehouse.test", Password: ""}).Validate())
}
