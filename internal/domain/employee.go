package domain

import "time"

// EmployeeRole is the privilege level granted to a store employee.
type EmployeeRole string

const (
	EmployeeAdmin     EmployeeRole = "admin"
	EmployeeAttendant EmployeeRole = "attendant"
	EmployeeRegular   EmployeeRole = "employee"
)

// Employee is a store worker registered during onboarding. Like machines,
// the set is bulk-replaced on save.
type Employee struct {
	ID         string       `json:"id,omitempty"`
	CustomerID string       `json:"customerId,omitempty"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	PIN        string       `json:"pin,omitempty"`
	Role       EmployeeRole `json:"role"`
	CreatedAt  time.Time    `json:"createdAt,omitempty"`
}
