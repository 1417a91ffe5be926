package domain

import "time"

// Note is an append-only audit trail entry on a customer. Unlike machines
// and employees, notes are edited and deleted individually.
type Note struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
