package token

import (
	"context"
	"time"
)

// Kinds of tokens stored in the tokens table. Onboarding tokens have no
// expiry; the link stays valid until the wizard is submitted.
const (
	KindOnboarding    = "onboarding"
	KindAdminAccess   = "admin_access"
	KindPortalAccess  = "portal_access"
	KindPasswordReset = "password_reset"
)

// Token is an opaque credential bound to a subject (customer id or user id).
// Password-reset rows store a SHA-256 hash in Token, never the raw value.
type Token struct {
	Token     string
	Kind      string
	SubjectID string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Repository persists opaque tokens.
type Repository interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, token string) (*Token, error)
	GetBySubject(ctx context.Context, kind, subjectID string) (*Token, error)
	Delete(ctx context.Context, token string) error
	DeleteBySubject(ctx context.Context, kind, subjectID string) error
}
