package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errZeroDelta = errors.New("delta must not be zero")

type CreateProductRequest struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Branch     string     `json:"branch,omitempty"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	CostPrice  float64    `json:"cost_price"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (req *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.CostPrice, validation.Min(0.0)),
	)
}

type UpdateProductRequest struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Branch     string     `json:"branch,omitempty"`
	Price      float64    `json:"price"`
	CostPrice  float64    `json:"cost_price"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (req *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.CostPrice, validation.Min(0.0)),
	)
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func (req *AdjustStockRequest) Validate() error {
	if req.Delta == 0 {
		return errZeroDelta
	}

	return nil
}

type CreateBatchRequest struct {
	BatchCode       string    `json:"batch_code"`
	Quantity        int       `json:"quantity"`
	ManufactureDate time.Time `json:"manufacture_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
}

func (req *CreateBatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BatchCode, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.ManufactureDate, validation.Required),
		validation.Field(&req.ExpiryDate, validation.Required),
	)
}
