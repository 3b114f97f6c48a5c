package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SaleItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (req SaleItemRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type CreateSaleRequest struct {
	BillNumber string            `json:"bill_number"`
	Branch     string            `json:"branch,omitempty"`
	Discount   float64           `json:"discount"`
	Items      []SaleItemRequest `json:"items"`
}

func (req *CreateSaleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.BillNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Discount, validation.Min(0.0)),
		validation.Field(&req.Items, validation.Required, validation.Length(1, 0)),
	)
	if err != nil {
		return err
	}

	for _, item := range req.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}
