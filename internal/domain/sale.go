package domain

import "time"

// Sale is a finalized bill. BillNumber is unique per tenant, not globally;
// two shops may both issue "BILL-0001".
type Sale struct {
	ID          uint       `json:"id"`
	AdminID     uint       `json:"admin_id"`
	Branch      string     `json:"branch"`
	BillNumber  string     `json:"bill_number"`
	Items       []SaleItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Discount    float64    `json:"discount"`
	SoldBy      uint       `json:"sold_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SaleItem struct {
	ID        uint    `json:"id"`
	SaleID    uint    `json:"sale_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// NetPayable is the bill total after discount.
func (s Sale) NetPayable() float64 {
	net := s.TotalAmount - s.Discount
	if net < 0 {
		return 0
	}

	return net
}
