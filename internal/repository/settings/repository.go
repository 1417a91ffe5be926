package settings

import "context"

// Repository persists app-wide key/value settings (commission defaults,
// notification toggles).
type Repository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
