package note

import (
	"context"

	"bossboarding/internal/domain"
)

// Repository persists customer notes.
type Repository interface {
	Create(ctx context.Context, n domain.Note) (*domain.Note, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Note, error)
	Update(ctx context.Context, id, body string) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}
