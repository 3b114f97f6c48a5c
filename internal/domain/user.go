package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AdminID   *uint     `json:"admin_id,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	ShopName  string    `json:"shop_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTenantID resolves the tenant that owns this user's data.
// An admin is its own tenant; staff belong to the admin that created them.
// Every repository call must be scoped by the id returned here.
func (u User) EffectiveTenantID() uint {
	if u.Role == RoleStaff && u.AdminID != nil {
		return *u.AdminID
	}

	return u.ID
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
