package onboarding

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"bossboarding/internal/domain"
	tokenrepo "bossboarding/internal/repository/token"
)

// tokenManager issues and resolves the opaque onboarding link tokens. The
// token is the sole credential for the wizard, so it never expires on its
// own; it dies with the customer row.
type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

// IssueFor returns the customer's onboarding token, creating one if none
// exists yet. Reusing the existing token keeps previously emailed links
// valid.
func (m *tokenManager) IssueFor(ctx context.Context, customerID string) (string, error) {
	existing, err := m.repo.GetBySubject(ctx, tokenrepo.KindOnboarding, customerID)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Token:     token,
			Kind:      tokenrepo.KindOnboarding,
			SubjectID: customerID,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Resolve maps a link token back to a customer id.
func (m *tokenManager) Resolve(ctx context.Context, token string) (string, error) {
	t, err := m.repo.Get(ctx, token)
	if err != nil {
		return "", err
	}
	if t.Kind != tokenrepo.KindOnboarding {
		return "", domain.ErrNotFound
	}
	return t.SubjectID, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
