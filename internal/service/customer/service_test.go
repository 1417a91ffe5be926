package customer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"bossboarding/internal/catalog"
	"bossboarding/internal/domain"
	customerrepo "bossboarding/internal/repository/customer"
)

type stubRepo struct {
	customers map[string]*domain.Customer
	machines  map[string][]domain.Machine
	employees map[string][]domain.Employee
	createErr error
	nextID    int

	lastDeleted string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		customers: make(map[string]*domain.Customer),
		machines:  make(map[string][]domain.Machine),
		employees: make(map[string][]domain.Employee),
	}
}

func (s *stubRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	c.ID = "cust-" + strconv.Itoa(s.nextID)
	s.customers[c.ID] = &c
	out := c
	return &out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) List(_ context.Context, _ customerrepo.Filter) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, ok := s.customers[c.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.customers[c.ID] = &c
	out := c
	return &out, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.customers, id)
	s.lastDeleted = id
	return nil
}

func (s *stubRepo) ListMachines(_ context.Context, customerID string) ([]domain.Machine, error) {
	return s.machines[customerID], nil
}

func (s *stubRepo) ReplaceMachines(_ context.Context, customerID string, machines []domain.Machine) ([]domain.Machine, error) {
	for i := range machines {
		if machines[i].ID == "" {
			machines[i].ID = "m-new"
		}
	}
	s.machines[customerID] = machines
	return machines, nil
}

func (s *stubRepo) ListEmployees(_ context.Context, customerID string) ([]domain.Employee, error) {
	return s.employees[customerID], nil
}

func (s *stubRepo) ReplaceEmployees(_ context.Context, customerID string, employees []domain.Employee) ([]domain.Employee, error) {
	s.employees[customerID] = employees
	return employees, nil
}

type stubNoteRepo struct {
	notes     []domain.Note
	updateErr error
}

func (s *stubNoteRepo) Create(_ context.Context, n domain.Note) (*domain.Note, error) {
	n.ID = "note-1"
	s.notes = append(s.notes, n)
	return &n, nil
}

func (s *stubNoteRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range s.notes {
		if n.CustomerID == customerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNoteRepo) Update(_ context.Context, id, body string) (*domain.Note, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Body = body
			out := s.notes[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubNoteRepo) Delete(_ context.Context, id string) error {
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubLinker struct {
	token string
	err   error
}

func (s *stubLinker) IssueLink(_ context.Context, _ string) (string, error) {
	return s.token, s.err
}

type recordingMailer struct {
	sent    []string
	sendErr error
}

func (m *recordingMailer) Send(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.sendErr
}

func (m *recordingMailer) Enabled() bool { return true }

func newTestService(t *testing.T, repo *stubRepo, notes *stubNoteRepo, mailer *recordingMailer) *Service {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if notes == nil {
		notes = &stubNoteRepo{}
	}
	if mailer == nil {
		mailer = &recordingMailer{}
	}
	return New(repo, notes, cat, &stubLinker{token: "tok-abc"}, mailer, "https://boss.example/", nil)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil, nil)
	if _, err := svc.Create(context.Background(), CreateInput{Email: "x@y.z"}); err == nil {
		t.Fatal("expected businessName validation error")
	}
	if _, err := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise"}); err == nil {
		t.Fatal("expected email validation error")
	}
}

func TestCreateIssuesLink(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)

	created, err := svc.Create(context.Background(), CreateInput{
		BusinessName:   "  Sunrise Laundromat  ",
		Email:          "dana@sunrise.example",
		DealAmount:     42000,
		CommissionRate: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Customer.BusinessName != "Sunrise Laundromat" {
		t.Fatalf("name not trimmed: %q", created.Customer.BusinessName)
	}
	if created.Customer.Status != domain.StatusNotStarted {
		t.Fatalf("expected not_started, got %s", created.Customer.Status)
	}
	if created.Customer.CurrentStageID != "sales" {
		t.Fatalf("expected first stage, got %q", created.Customer.CurrentStageID)
	}
	if created.OnboardingLink != "https://boss.example/onboarding/tok-abc" {
		t.Fatalf("unexpected link %q", created.OnboardingLink)
	}
}

func TestCreateWelcomeEmailFailureDoesNotBlock(t *testing.T) {
	repo := newStubRepo()
	mailer := &recordingMailer{sendErr: errors.New("relay down")}
	svc := newTestService(t, repo, nil, mailer)

	created, err := svc.Create(context.Background(), CreateInput{
		BusinessName:     "Sunrise",
		Email:            "dana@sunrise.example",
		SendWelcomeEmail: true,
	})
	if err != nil {
		t.Fatalf("mail failure must not fail creation: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "dana@sunrise.example" {
		t.Fatalf("expected one send attempt, got %v", mailer.sent)
	}
	if created.Customer.ID == "" {
		t.Fatal("customer must be persisted")
	}
}

func TestUpdatePartialEdit(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c", DealAmount: 100})

	newName := "Sunrise Wash & Fold"
	paid := 50.0
	got, err := svc.Update(context.Background(), created.Customer.ID, UpdateInput{
		BusinessName:     &newName,
		PaidToDateAmount: &paid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BusinessName != newName {
		t.Fatalf("name not updated: %q", got.BusinessName)
	}
	if got.PaidToDateAmount != 50 {
		t.Fatalf("paid not updated: %g", got.PaidToDateAmount)
	}
	if got.DealAmount != 100 {
		t.Fatalf("untouched field changed: %g", got.DealAmount)
	}
	if got.Email != "a@b.c" {
		t.Fatalf("untouched field changed: %q", got.Email)
	}
}

func TestUpdateReplacesMachinesWithNumbering(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	machines := []domain.Machine{
		{Type: domain.MachineWasher},
		{Type: domain.MachineWasher},
		{Type: domain.MachineDryer},
	}
	if _, err := svc.Update(context.Background(), created.Customer.ID, UpdateInput{Machines: &machines}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.machines[created.Customer.ID]
	if len(got) != 3 {
		t.Fatalf("expected 3 machines, got %d", len(got))
	}
	if got[0].MachineNumber != 1 || got[1].MachineNumber != 2 || got[2].MachineNumber != 101 {
		t.Fatalf("unexpected numbers: %d %d %d", got[0].MachineNumber, got[1].MachineNumber, got[2].MachineNumber)
	}
}

func TestCloneMachine(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})
	id := created.Customer.ID

	repo.machines[id] = []domain.Machine{
		{ID: "m1", MachineNumber: 1, Type: domain.MachineWasher, Make: "Speed Queen", SerialNumber: "SN-1"},
		{ID: "m2", MachineNumber: 2, Type: domain.MachineWasher},
		{ID: "m3", MachineNumber: 3, Type: domain.MachineWasher},
		{ID: "m4", MachineNumber: 4, Type: domain.MachineWasher},
		{ID: "m5", MachineNumber: 5, Type: domain.MachineWasher},
	}

	clone, err := svc.CloneMachine(context.Background(), id, "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clone.MachineNumber != 6 {
		t.Fatalf("expected next free number 6, got %d", clone.MachineNumber)
	}
	if clone.SerialNumber != "" {
		t.Fatalf("serial must be cleared, got %q", clone.SerialNumber)
	}
	if clone.Make != "Speed Queen" {
		t.Fatalf("other fields must be copied, got %q", clone.Make)
	}
	if len(repo.machines[id]) != 6 {
		t.Fatalf("expected 6 machines persisted, got %d", len(repo.machines[id]))
	}
}

func TestCloneMachineUnknownID(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	_, err := svc.CloneMachine(context.Background(), created.Customer.ID, "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetTaskStatusRejectsUnknownTask(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	_, err := svc.SetTaskStatus(context.Background(), created.Customer.ID, "not-a-task", domain.TaskComplete, "admin")
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}

func TestSetTaskStatusStampsMeta(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	got, err := svc.SetTaskStatus(context.Background(), created.Customer.ID, "quote-sent", domain.TaskComplete, "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TaskStatuses["quote-sent"] != domain.TaskComplete {
		t.Fatalf("status not set: %v", got.TaskStatuses)
	}
	meta := got.TaskMetadata["quote-sent"]
	if meta.UpdatedBy != "admin@example.com" || meta.UpdatedAt.IsZero() {
		t.Fatalf("meta not stamped: %+v", meta)
	}
}

func TestSetStageTasks(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	got, err := svc.SetStageTasks(context.Background(), created.Customer.ID, "sales", domain.TaskComplete, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"initial-contact", "quote-sent", "contract-signed"} {
		if got.TaskStatuses[id] != domain.TaskComplete {
			t.Fatalf("task %s not complete", id)
		}
	}

	_, err = svc.SetStageTasks(context.Background(), created.Customer.ID, "bogus", domain.TaskComplete, "admin")
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestAdvanceStage(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})

	got, err := svc.AdvanceStage(context.Background(), created.Customer.ID, "equipment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentStageID != "equipment" {
		t.Fatalf("stage not moved: %q", got.CurrentStageID)
	}

	_, err = svc.AdvanceStage(context.Background(), created.Customer.ID, "bogus")
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestNotes(t *testing.T) {
	repo := newStubRepo()
	notes := &stubNoteRepo{}
	svc := newTestService(t, repo, notes, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})
	id := created.Customer.ID

	if _, err := svc.AddNote(context.Background(), id, "admin", "   "); err == nil {
		t.Fatal("expected empty-body validation error")
	}

	n, err := svc.AddNote(context.Background(), id, "admin", "called the owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.CustomerID != id {
		t.Fatalf("note bound to wrong customer: %q", n.CustomerID)
	}

	if _, err := svc.AddNote(context.Background(), "missing", "admin", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("note for missing customer must fail, got %v", err)
	}

	updated, err := svc.UpdateNote(context.Background(), n.ID, "spoke with the owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Body != "spoke with the owner" {
		t.Fatalf("body not updated: %q", updated.Body)
	}

	if err := svc.DeleteNote(context.Background(), n.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetAttachesChildren(t *testing.T) {
	repo := newStubRepo()
	notes := &stubNoteRepo{}
	svc := newTestService(t, repo, notes, nil)
	created, _ := svc.Create(context.Background(), CreateInput{BusinessName: "Sunrise", Email: "a@b.c"})
	id := created.Customer.ID

	repo.machines[id] = []domain.Machine{{ID: "m1", MachineNumber: 1, Type: domain.MachineWasher}}
	repo.employees[id] = []domain.Employee{{ID: "e1", FirstName: "Sam"}}
	if _, err := svc.AddNote(context.Background(), id, "admin", "note"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	c, ns, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Machines) != 1 || len(c.Employees) != 1 {
		t.Fatalf("children not attached: %d machines, %d employees", len(c.Machines), len(c.Employees))
	}
	if len(ns) != 1 {
		t.Fatalf("expected 1 note, got %d", len(ns))
	}
}
