package domain

import "time"

type TransferStatus string

const (
	TransferPending   TransferStatus = "Pending"
	TransferInTransit TransferStatus = "In Transit"
	TransferCompleted TransferStatus = "Completed"
	TransferCancelled TransferStatus = "Cancelled"
)

// StockTransfer moves a quantity of one product between two branches of the
// same tenant. Creating a transfer never touches stock; stock moves only on
// the transition to Completed, which keeps cancellation side-effect free.
type StockTransfer struct {
	ID            uint           `json:"id"`
	AdminID       uint           `json:"admin_id"`
	ProductID     uint           `json:"product_id"`
	Quantity      int            `json:"quantity"`
	FromBranch    string         `json:"from_branch"`
	ToBranch      string         `json:"to_branch"`
	Status        TransferStatus `json:"status"`
	ApprovedBy    *uint          `json:"approved_by,omitempty"`
	CompletedDate *time.Time     `json:"completed_date,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CanTransitionTo reports whether moving to the given status is a legal step.
// Pending -> In Transit -> Completed, with Cancelled reachable from any
// non-terminal state.
func (t StockTransfer) CanTransitionTo(next TransferStatus) bool {
	switch t.Status {
	case TransferPending:
		return next == TransferInTransit || next == TransferCompleted || next == TransferCancelled
	case TransferInTransit:
		return next == TransferCompleted || next == TransferCancelled
	default:
		return false
	}
}

func (t StockTransfer) IsTerminal() bool {
	return t.Status == TransferCompleted || t.Status == TransferCancelled
}
