// Package identity handles staff and customer-portal logins: bcrypt
// password verification, opaque access tokens and time-boxed password
// resets.
package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"bossboarding/internal/domain"
	"bossboarding/internal/email"
	adminrepo "bossboarding/internal/repository/adminuser"
	portalrepo "bossboarding/internal/repository/portaluser"
	tokenrepo "bossboarding/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles both staff and portal identities.
type Service struct {
	admins      adminrepo.Repository
	portals     portalrepo.Repository
	tokens      *tokenManager
	mailer      email.Sender
	accessTTL   time.Duration
	resetTTL    time.Duration
	passwordMin int
	logger      *log.Logger
}

// New creates a Service with sane defaults.
func New(admins adminrepo.Repository, portals portalrepo.Repository, tokens tokenrepo.Repository, mailer email.Sender, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		admins:      admins,
		portals:     portals,
		tokens:      newTokenManager(tokens),
		mailer:      mailer,
		accessTTL:   48 * time.Hour,
		resetTTL:    time.Hour,
		passwordMin: 8,
		logger:      logger,
	}
}

// AdminLogin validates staff credentials and issues an access token.
func (s *Service) AdminLogin(ctx context.Context, emailAddr, password string) (*domain.AdminUser, string, error) {
	u, err := s.admins.GetByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, tokenrepo.KindAdminAccess, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// AdminByToken resolves a live admin access token.
func (s *Service) AdminByToken(ctx context.Context, token string) (*domain.AdminUser, error) {
	id, ok := s.tokens.Validate(ctx, tokenrepo.KindAdminAccess, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// CreateAdmin registers a staff user; only super_admins may call this,
// enforced at the route layer.
func (s *Service) CreateAdmin(ctx context.Context, emailAddr, name, password string, role domain.AdminRole) (*domain.AdminUser, error) {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" {
		return nil, errors.New("email required")
	}
	if role != domain.AdminRoleAdmin && role != domain.AdminRoleSuper {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.admins.Create(ctx, domain.AdminUser{
		Email:        emailAddr,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	})
}

// ListAdmins returns all staff users.
func (s *Service) ListAdmins(ctx context.Context) ([]domain.AdminUser, error) {
	return s.admins.List(ctx)
}

// DeleteAdmin removes a staff user.
func (s *Service) DeleteAdmin(ctx context.Context, id string) error {
	return s.admins.Delete(ctx, id)
}

// RegisterPortalUser creates a portal login bound to a customer.
func (s *Service) RegisterPortalUser(ctx context.Context, customerID, emailAddr, name, password string, role domain.PortalRole) (*domain.CustomerUser, error) {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" {
		return nil, errors.New("email required")
	}
	switch role {
	case domain.PortalRoleOwner, domain.PortalRoleManager, domain.PortalRoleStaff:
	default:
		return nil, fmt.Errorf("invalid role %q", role)
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.portals.Create(ctx, domain.CustomerUser{
		CustomerID:   customerID,
		Email:        emailAddr,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	})
}

// PortalLogin validates portal credentials and issues an access token.
func (s *Service) PortalLogin(ctx context.Context, emailAddr, password string) (*domain.CustomerUser, string, error) {
	u, err := s.portals.GetByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, tokenrepo.KindPortalAccess, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// PortalUserByToken resolves a live portal access token.
func (s *Service) PortalUserByToken(ctx context.Context, token string) (*domain.CustomerUser, error) {
	id, ok := s.tokens.Validate(ctx, tokenrepo.KindPortalAccess, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.portals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// RequestAdminPasswordReset emails a reset link. A missing account is
// reported as success to avoid leaking which emails exist.
func (s *Service) RequestAdminPasswordReset(ctx context.Context, emailAddr, resetURLBase string) error {
	u, err := s.admins.GetByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	raw, err := s.tokens.IssueReset(ctx, u.ID, s.resetTTL)
	if err != nil {
		return err
	}
	link := strings.TrimRight(resetURLBase, "/") + "/reset-password?token=" + raw
	body := fmt.Sprintf(`<html><body><p>A password reset was requested for your
BossBoarding admin account. The link below is valid for one hour.</p>
<p><a href="%s">%s</a></p></body></html>`, link, link)
	if err := s.mailer.Send(u.Email, "Reset your BossBoarding password", body); err != nil {
		s.logger.Printf("identity: reset email to %s failed: %v", u.Email, err)
		return err
	}
	return nil
}

// ResetAdminPassword consumes a reset token and stores the new hash.
func (s *Service) ResetAdminPassword(ctx context.Context, rawToken, newPassword string) error {
	id, ok := s.tokens.ConsumeReset(ctx, rawToken)
	if !ok {
		return ErrInvalidToken
	}
	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, id, hash)
}

// Logout revokes an access token of either kind.
func (s *Service) Logout(ctx context.Context, token string) {
	s.tokens.Revoke(ctx, token)
}

func (s *Service) hashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if len(password) < s.passwordMin {
		return "", fmt.Errorf("password must be at least %d characters", s.passwordMin)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
