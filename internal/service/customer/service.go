// Package customer implements the admin console's customer management:
// CRUD, machine numbering and cloning, task/stage progress updates and
// notes.
package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"bossboarding/internal/catalog"
	"bossboarding/internal/domain"
	"bossboarding/internal/email"
	"bossboarding/internal/progress"
	customerrepo "bossboarding/internal/repository/customer"
	noterepo "bossboarding/internal/repository/note"
	"bossboarding/internal/wizard"
)

var (
	// ErrUnknownTask is returned when a task id is not in the catalog.
	ErrUnknownTask = errors.New("unknown task id")
	// ErrUnknownStage is returned when a stage id is not in the catalog.
	ErrUnknownStage = errors.New("unknown stage id")
)

// Linker issues onboarding link tokens; satisfied by the onboarding service.
type Linker interface {
	IssueLink(ctx context.Context, customerID string) (string, error)
}

// Service is the admin-side customer service.
type Service struct {
	repo    customerrepo.Repository
	notes   noterepo.Repository
	cat     *catalog.Catalog
	linker  Linker
	mailer  email.Sender
	baseURL string
	logger  *log.Logger
}

// New creates a Service. mailer may be a disabled sender; welcome email
// failures never block customer creation.
func New(repo customerrepo.Repository, notes noterepo.Repository, cat *catalog.Catalog, linker Linker, mailer email.Sender, baseURL string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:    repo,
		notes:   notes,
		cat:     cat,
		linker:  linker,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// CreateInput captures the fields required to open a new onboarding.
type CreateInput struct {
	BusinessName      string  `json:"businessName"`
	OwnerName         string  `json:"ownerName"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	DealAmount        float64 `json:"dealAmount"`
	CommissionRate    float64 `json:"commissionRate"`
	PaymentTermMonths int     `json:"paymentTermMonths"`
	SendWelcomeEmail  bool    `json:"sendWelcomeEmail"`
}

// Created pairs a new customer with its onboarding link.
type Created struct {
	Customer       domain.Customer `json:"customer"`
	OnboardingLink string          `json:"onboardingLink"`
}

// Create registers a customer, issues the onboarding link and optionally
// sends the welcome email.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Created, error) {
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, errors.New("businessName required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("email required")
	}

	c, err := s.repo.Create(ctx, domain.Customer{
		BusinessName:      strings.TrimSpace(in.BusinessName),
		OwnerName:         strings.TrimSpace(in.OwnerName),
		Email:             strings.TrimSpace(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		Status:            domain.StatusNotStarted,
		TotalSteps:        wizard.TotalSteps(),
		CurrentStageID:    s.cat.FirstStageID(),
		DealAmount:        in.DealAmount,
		CommissionRate:    in.CommissionRate,
		PaymentTermMonths: in.PaymentTermMonths,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.linker.IssueLink(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	link := s.baseURL + "/onboarding/" + token

	if in.SendWelcomeEmail {
		if err := s.mailer.Send(c.Email, "Your BossBoarding onboarding link", email.WelcomeBody(c.BusinessName, link)); err != nil {
			s.logger.Printf("customer service: welcome email to %s failed: %v", c.Email, err)
		}
	}
	return &Created{Customer: *c, OnboardingLink: link}, nil
}

// Get loads one customer with machines, employees and notes attached.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, []domain.Note, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	machines, err := s.repo.ListMachines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	employees, err := s.repo.ListEmployees(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.notes.ListByCustomer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	c.Machines = machines
	c.Employees = employees
	return c, notes, nil
}

// List returns customers matching the filter, without child collections.
func (s *Service) List(ctx context.Context, f customerrepo.Filter) ([]domain.Customer, error) {
	return s.repo.List(ctx, f)
}

// UpdateInput is a partial admin edit. Machines/employees, when present,
// replace the full set.
type UpdateInput struct {
	BusinessName        *string                      `json:"businessName"`
	OwnerName           *string                      `json:"ownerName"`
	Email               *string                      `json:"email"`
	Phone               *string                      `json:"phone"`
	Status              *domain.Status               `json:"status"`
	Location            *domain.LocationInfo         `json:"location"`
	Shipping            *domain.ShippingInfo         `json:"shipping"`
	Kiosk               *domain.KioskInfo            `json:"kiosk"`
	PCI                 *domain.PCIInfo              `json:"pci"`
	Merchant            *domain.MerchantInfo         `json:"merchant"`
	Billing             *domain.BillingInfo          `json:"billing"`
	PaymentLinks        *[]domain.PaymentLink        `json:"paymentLinks"`
	SalesRepAssignments *[]domain.SalesRepAssignment `json:"salesRepAssignments"`
	DealAmount          *float64                     `json:"dealAmount"`
	CommissionRate      *float64                     `json:"commissionRate"`
	PaymentTermMonths   *int                         `json:"paymentTermMonths"`
	PaidToDateAmount    *float64                     `json:"paidToDateAmount"`
	Machines            *[]domain.Machine            `json:"machines"`
	Employees           *[]domain.Employee           `json:"employees"`
}

// Update applies a partial edit and returns the stored customer.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setStr(&c.BusinessName, in.BusinessName)
	setStr(&c.OwnerName, in.OwnerName)
	setStr(&c.Email, in.Email)
	setStr(&c.Phone, in.Phone)
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	if in.Shipping != nil {
		c.Shipping = *in.Shipping
	}
	if in.Kiosk != nil {
		c.Kiosk = *in.Kiosk
	}
	if in.PCI != nil {
		c.PCI = *in.PCI
	}
	if in.Merchant != nil {
		c.Merchant = *in.Merchant
	}
	if in.Billing != nil {
		c.Billing = *in.Billing
	}
	if in.PaymentLinks != nil {
		c.PaymentLinks = *in.PaymentLinks
	}
	if in.SalesRepAssignments != nil {
		c.SalesRepAssignments = *in.SalesRepAssignments
	}
	if in.DealAmount != nil {
		c.DealAmount = *in.DealAmount
	}
	if in.CommissionRate != nil {
		c.CommissionRate = *in.CommissionRate
	}
	if in.PaymentTermMonths != nil {
		c.PaymentTermMonths = *in.PaymentTermMonths
	}
	if in.PaidToDateAmount != nil {
		c.PaidToDateAmount = *in.PaidToDateAmount
	}

	if in.Machines != nil {
		numbered, err := domain.AssignMachineNumbers(*in.Machines)
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.ReplaceMachines(ctx, id, numbered); err != nil {
			return nil, err
		}
	}
	if in.Employees != nil {
		if _, err := s.repo.ReplaceEmployees(ctx, id, *in.Employees); err != nil {
			return nil, err
		}
	}
	return s.repo.Save(ctx, *c)
}

// Delete removes a customer; child rows cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CloneMachine duplicates a machine into the next free number of its type's
// range, clearing the serial number, and persists the grown set.
func (s *Service) CloneMachine(ctx context.Context, customerID, machineID string) (*domain.Machine, error) {
	machines, err := s.repo.ListMachines(ctx, customerID)
	if err != nil {
		return nil, err
	}
	var source *domain.Machine
	for i := range machines {
		if machines[i].ID == machineID {
			source = &machines[i]
			break
		}
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}

	n, err := domain.NextMachineNumber(machines, source.Type)
	if err != nil {
		return nil, err
	}
	clone := *source
	clone.ID = ""
	clone.MachineNumber = n
	clone.SerialNumber = ""

	saved, err := s.repo.ReplaceMachines(ctx, customerID, append(machines, clone))
	if err != nil {
		return nil, err
	}
	for i := range saved {
		if saved[i].MachineNumber == n {
			return &saved[i], nil
		}
	}
	return nil, fmt.Errorf("clone not found after save")
}

// SetTaskStatus updates one task, stamping updater metadata. Unknown ids
// are rejected at this boundary rather than silently stored.
func (s *Service) SetTaskStatus(ctx context.Context, customerID, taskID string, status domain.TaskStatus, updatedBy string) (*domain.Customer, error) {
	if !s.cat.HasTask(taskID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.TaskStatuses == nil {
		c.TaskStatuses = make(map[string]domain.TaskStatus)
	}
	if c.TaskMetadata == nil {
		c.TaskMetadata = make(map[string]domain.TaskMeta)
	}
	c.TaskStatuses[taskID] = status
	c.TaskMetadata[taskID] = domain.TaskMeta{UpdatedBy: updatedBy, UpdatedAt: time.Now().UTC()}
	return s.repo.Save(ctx, *c)
}

// SetStageTasks overwrites every task in a stage with one status, the admin
// fast-forward operation.
func (s *Service) SetStageTasks(ctx context.Context, customerID, stageID string, status domain.TaskStatus, updatedBy string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !progress.SetStageTasks(s.cat, c, stageID, status, updatedBy, time.Now().UTC()) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
	}
	return s.repo.Save(ctx, *c)
}

// AdvanceStage moves the explicit current-stage pointer. Where the team is
// focused is deliberately decoupled from what is mechanically done.
func (s *Service) AdvanceStage(ctx context.Context, customerID, stageID string) (*domain.Customer, error) {
	if _, ok := s.cat.Stage(stageID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
	}
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.CurrentStageID = stageID
	return s.repo.Save(ctx, *c)
}

// AddNote appends an audit-trail note.
func (s *Service) AddNote(ctx context.Context, customerID, author, body string) (*domain.Note, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("note body required")
	}
	if _, err := s.repo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.notes.Create(ctx, domain.Note{CustomerID: customerID, Author: author, Body: body})
}

// UpdateNote edits a note body.
func (s *Service) UpdateNote(ctx context.Context, noteID, body string) (*domain.Note, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("note body required")
	}
	return s.notes.Update(ctx, noteID, body)
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, noteID string) error {
	return s.notes.Delete(ctx, noteID)
}
