// Package onboarding owns the customer-facing wizard session: resolving
// link tokens, hydrating saved progress, persisting step snapshots and the
// one-way terminal submit.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"bossboarding/internal/domain"
	customerrepo "bossboarding/internal/repository/customer"
	tokenrepo "bossboarding/internal/repository/token"
	"bossboarding/internal/wizard"
)

// Service handles wizard sessions addressed by onboarding token.
type Service struct {
	customers customerrepo.Repository
	tokens    *tokenManager
	logger    *log.Logger
}

// New creates a Service.
func New(customers customerrepo.Repository, tokens tokenrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		customers: customers,
		tokens:    newTokenManager(tokens),
		logger:    logger,
	}
}

// StepView is one entry of the wizard's step list with its completion state.
type StepView struct {
	ID       wizard.StepID `json:"id"`
	Name     string        `json:"name"`
	Complete bool          `json:"complete"`
}

// Session is the hydrated wizard state returned to the client.
type Session struct {
	Customer domain.Customer `json:"customer"`
	Steps    []StepView      `json:"steps"`
}

// IssueLink returns the customer's onboarding token, creating it on first
// use.
func (s *Service) IssueLink(ctx context.Context, customerID string) (string, error) {
	return s.tokens.IssueFor(ctx, customerID)
}

// Resolve hydrates a wizard session from a link token. Machines and
// employees always come from their own tables, never from any previously
// saved form snapshot, so admin-side edits cannot be resurrected by stale
// client state. A completed wizard resolves to ErrCompleted no matter what
// step counter is persisted.
func (s *Service) Resolve(ctx context.Context, token string) (*Session, error) {
	c, err := s.customerByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.OnboardingCompleted {
		return nil, domain.ErrCompleted
	}
	return s.buildSession(ctx, c)
}

// FormInput carries the partial form fields a save may touch. Nil pointers
// leave the stored value alone.
type FormInput struct {
	BusinessName *string              `json:"businessName"`
	OwnerName    *string              `json:"ownerName"`
	Email        *string              `json:"email"`
	Phone        *string              `json:"phone"`
	Location     *domain.LocationInfo `json:"location"`
	Shipping     *domain.ShippingInfo `json:"shipping"`
	Kiosk        *domain.KioskInfo    `json:"kiosk"`
	PCI          *domain.PCIInfo      `json:"pci"`
	Merchant     *domain.MerchantInfo `json:"merchant"`
	Billing      *domain.BillingInfo  `json:"billing"`
}

// SaveInput is a full progress snapshot: form fields, step counters, and
// (optionally) the machine and employee sets to replace.
type SaveInput struct {
	Form        FormInput          `json:"form"`
	CurrentStep int                `json:"currentStep"`
	HighestStep int                `json:"highestStepReached"`
	Machines    *[]domain.Machine  `json:"machines"`
	Employees   *[]domain.Employee `json:"employees"`
}

// SaveProgress persists a wizard snapshot. The current step is clamped to the
// recorded high-water mark, which the client advances as it completes steps;
// raising the mark is taken at face value, only the current position is
// bounded by it.
func (s *Service) SaveProgress(ctx context.Context, token string, in SaveInput) (*Session, error) {
	c, err := s.customerByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.OnboardingCompleted {
		return nil, domain.ErrCompleted
	}

	eng := wizard.Resume(c.CurrentStep, max(c.HighestStepReached, in.HighestStep))
	if err := eng.Goto(min(in.CurrentStep, eng.Highest())); err != nil {
		return nil, fmt.Errorf("apply step position: %w", err)
	}
	c.CurrentStep = eng.Current()
	c.HighestStepReached = eng.Highest()
	if c.Status == domain.StatusNotStarted {
		c.Status = domain.StatusInProgress
	}

	applyForm(c, in.Form)

	if in.Machines != nil {
		numbered, err := domain.AssignMachineNumbers(*in.Machines)
		if err != nil {
			return nil, err
		}
		if _, err := s.customers.ReplaceMachines(ctx, c.ID, numbered); err != nil {
			return nil, err
		}
	}
	if in.Employees != nil {
		if _, err := s.customers.ReplaceEmployees(ctx, c.ID, *in.Employees); err != nil {
			return nil, err
		}
	}

	saved, err := s.customers.Save(ctx, *c)
	if err != nil {
		return nil, err
	}
	return s.buildSession(ctx, saved)
}

// Submit is the terminal transition: status moves to needs_review and the
// wizard locks. Submitting twice fails; a failed submit leaves the customer
// untouched on the review step.
func (s *Service) Submit(ctx context.Context, token string) (*domain.Customer, error) {
	c, err := s.customerByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.OnboardingCompleted {
		return nil, domain.ErrCompleted
	}

	c.OnboardingCompleted = true
	c.Status = domain.StatusNeedsReview
	c.CurrentStep = wizard.TotalSteps() - 1
	c.HighestStepReached = wizard.TotalSteps() - 1

	saved, err := s.customers.Save(ctx, *c)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("onboarding: customer %s submitted for review", saved.ID)
	return saved, nil
}

func (s *Service) customerByToken(ctx context.Context, token string) (*domain.Customer, error) {
	customerID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("onboarding: token resolves to missing customer %s", customerID)
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) buildSession(ctx context.Context, c *domain.Customer) (*Session, error) {
	machines, err := s.customers.ListMachines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	employees, err := s.customers.ListEmployees(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Machines = machines
	c.Employees = employees
	c.TotalSteps = wizard.TotalSteps()

	steps := make([]StepView, 0, wizard.TotalSteps())
	for _, st := range wizard.Steps {
		steps = append(steps, StepView{ID: st.ID, Name: st.Name, Complete: st.Complete(*c)})
	}
	return &Session{Customer: *c, Steps: steps}, nil
}

func applyForm(c *domain.Customer, f FormInput) {
	if f.BusinessName != nil {
		c.BusinessName = *f.BusinessName
	}
	if f.OwnerName != nil {
		c.OwnerName = *f.OwnerName
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.Location != nil {
		c.Location = *f.Location
	}
	if f.Shipping != nil {
		c.Shipping = *f.Shipping
	}
	if f.Kiosk != nil {
		c.Kiosk = *f.Kiosk
	}
	if f.PCI != nil {
		c.PCI = *f.PCI
	}
	if f.Merchant != nil {
		c.Merchant = *f.Merchant
	}
	if f.Billing != nil {
		c.Billing = *f.Billing
	}
}
