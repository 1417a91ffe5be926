package adminuser

import (
	"context"

	"bossboarding/internal/domain"
)

// Repository persists staff console users.
type Repository interface {
	Create(ctx context.Context, u domain.AdminUser) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	List(ctx context.Context) ([]domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
