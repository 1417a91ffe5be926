package customer

import (
	"context"

	"bossboarding/internal/domain"
)

// Filter narrows List results for the admin dashboard.
type Filter struct {
	Status  domain.Status
	StageID string
	Search  string
}

// Repository persists and fetches customers and their child collections.
// Machines and employees are bulk-replaced per save inside one transaction;
// there is no per-row diffing.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, f Filter) ([]domain.Customer, error)
	Save(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error

	ListMachines(ctx context.Context, customerID string) ([]domain.Machine, error)
	ReplaceMachines(ctx context.Context, customerID string, machines []domain.Machine) ([]domain.Machine, error)
	ListEmployees(ctx context.Context, customerID string) ([]domain.Employee, error)
	ReplaceEmployees(ctx context.Context, customerID string, employees []domain.Employee) ([]domain.Employee, error)
}
