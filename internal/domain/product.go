package domain

import (
	"strings"
	"time"
)

// DefaultBranch is the branch assigned to any record written without one.
const DefaultBranch = "Main Branch"

type ExpiryStatus string

const (
	ExpiryFresh        ExpiryStatus = "Fresh"
	ExpiryExpiringSoon ExpiryStatus = "Expiring Soon"
	ExpiryExpired      ExpiryStatus = "Expired"
)

// expiringSoonWindowDays is the number of days before expiry at which a
// product or batch starts reporting "Expiring Soon".
const expiringSoonWindowDays = 30

type Product struct {
	ID         uint       `json:"id"`
	AdminID    uint       `json:"admin_id"`
	Branch     string     `json:"branch"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	CostPrice  float64    `json:"cost_price"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	AddedBy    uint       `json:"added_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ExpiryStatus reports the product's freshness as of now. Products without
// an expiry date never expire.
func (p Product) ExpiryStatus() ExpiryStatus {
	if p.ExpiryDate == nil {
		return ExpiryFresh
	}

	return DeriveExpiryStatus(time.Now(), *p.ExpiryDate)
}

type Batch struct {
	ID              uint      `json:"id"`
	AdminID         uint      `json:"admin_id"`
	ProductID       uint      `json:"product_id"`
	BatchCode       string    `json:"batch_code"`
	Quantity        int       `json:"quantity"`
	ManufactureDate time.Time `json:"manufacture_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b Batch) Status() ExpiryStatus {
	return DeriveExpiryStatus(time.Now(), b.ExpiryDate)
}

// DeriveExpiryStatus classifies an expiry date relative to a reference date.
// Day counting is calendar-day based: both dates are truncated to midnight
// before comparing, so an item expiring later today still reads as
// "Expiring Soon" rather than "Expired" regardless of time of day.
func DeriveExpiryStatus(reference, expiry time.Time) ExpiryStatus {
	refDay := truncateToDay(reference)
	expDay := truncateToDay(expiry)

	days := int(expDay.Sub(refDay).Hours() / 24)

	switch {
	case days < 0:
		return ExpiryExpired
	case days <= expiringSoonWindowDays:
		return ExpiryExpiringSoon
	default:
		return ExpiryFresh
	}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeBranch is the single place branch names are defaulted and tidied.
// Applied at write time for every record type carrying a branch.
func NormalizeBranch(branch string) string {
	trimmed := strings.TrimSpace(branch)
	if trimmed == "" {
		return DefaultBranch
	}

	return trimmed
}
