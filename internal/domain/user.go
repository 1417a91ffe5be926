package domain

import "time"

// AdminRole gates the staff console.
type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleSuper AdminRole = "super_admin"
)

// AdminUser is a staff login identity for the admin console.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         AdminRole `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PortalRole gates the customer portal.
type PortalRole string

const (
	PortalRoleOwner   PortalRole = "owner"
	PortalRoleManager PortalRole = "manager"
	PortalRoleStaff   PortalRole = "staff"
)

// CustomerUser is an end-customer login for the post-submission portal.
type CustomerUser struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	PasswordHash string     `json:"-"`
	Role         PortalRole `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
}
