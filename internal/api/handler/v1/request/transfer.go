package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTransferRequest struct {
	ProductID  uint   `json:"product_id"`
	Quantity   int    `json:"quantity"`
	FromBranch string `json:"from_branch,omitempty"`
	ToBranch   string `json:"to_branch"`
}

func (req *CreateTransferRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.ToBranch, validation.Required, validation.Length(1, 100)),
	)
}

type UpdateTransferStatusRequest struct {
	Action string `json:"action"` // "dispatch", "complete" or "cancel"
}

func (req *UpdateTransferStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Action, validation.Required, validation.In("dispatch", "complete", "cancel")),
	)
}
