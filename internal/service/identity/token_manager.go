package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"bossboarding/internal/domain"
	tokenrepo "bossboarding/internal/repository/token"
)

// tokenManager issues and validates opaque access tokens for admin and
// portal sessions, plus hashed password-reset tokens.
type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, kind, subjectID string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Token:     token,
			Kind:      kind,
			SubjectID: subjectID,
			ExpiresAt: &expiresAt,
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

// Validate returns the subject id for a live token of the given kind.
func (m *tokenManager) Validate(ctx context.Context, kind, token string) (string, bool) {
	t, err := m.repo.Get(ctx, token)
	if err != nil {
		return "", false
	}
	if t.Kind != kind {
		return "", false
	}
	if t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return "", false
	}
	return t.SubjectID, true
}

// IssueReset stores the SHA-256 of a fresh reset token and returns the raw
// value for emailing. Any previous reset for the subject is invalidated.
func (m *tokenManager) IssueReset(ctx context.Context, subjectID string, ttl time.Duration) (string, error) {
	if err := m.repo.DeleteBySubject(ctx, tokenrepo.KindPasswordReset, subjectID); err != nil {
		return "", err
	}
	raw, err := randomToken()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(ttl)
	err = m.repo.Create(ctx, tokenrepo.Token{
		Token:     hashToken(raw),
		Kind:      tokenrepo.KindPasswordReset,
		SubjectID: subjectID,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// ConsumeReset validates a raw reset token against its stored hash and
// burns it.
func (m *tokenManager) ConsumeReset(ctx context.Context, raw string) (string, bool) {
	hashed := hashToken(raw)
	t, err := m.repo.Get(ctx, hashed)
	if err != nil || t.Kind != tokenrepo.KindPasswordReset {
		return "", false
	}
	_ = m.repo.Delete(ctx, hashed)
	if t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt) {
		return "", false
	}
	return t.SubjectID, true
}

func (m *tokenManager) Revoke(ctx context.Context, token string) {
	_ = m.repo.Delete(ctx, token)
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
