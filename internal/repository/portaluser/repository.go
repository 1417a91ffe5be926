package portaluser

import (
	"context"

	"bossboarding/internal/domain"
)

// Repository persists customer-portal users.
type Repository interface {
	Create(ctx context.Context, u domain.CustomerUser) (*domain.CustomerUser, error)
	GetByID(ctx context.Context, id string) (*domain.CustomerUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.CustomerUser, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
