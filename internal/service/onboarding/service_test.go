package onboarding

import (
	"context"
	"errors"
	"testing"

	"bossboarding/internal/domain"
	customerrepo "bossboarding/internal/repository/customer"
	tokenrepo "bossboarding/internal/repository/token"
	"bossboarding/internal/wizard"
)

type stubTokenRepo struct {
	tokens    map[string]tokenrepo.Token
	createErr error
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, dup := s.tokens[t.Token]; dup {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) GetBySubject(_ context.Context, kind, subjectID string) (*tokenrepo.Token, error) {
	for _, t := range s.tokens {
		if t.Kind == kind && t.SubjectID == subjectID {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}

func (s *stubTokenRepo) DeleteBySubject(_ context.Context, kind, subjectID string) error {
	for k, t := range s.tokens {
		if t.Kind == kind && t.SubjectID == subjectID {
			delete(s.tokens, k)
		}
	}
	return nil
}

type stubCustomerRepo struct {
	customer  *domain.Customer
	machines  []domain.Machine
	employees []domain.Employee
	saveErr   error
	saved     *domain.Customer

	lastReplacedMachines  []domain.Machine
	lastReplacedEmployees []domain.Employee
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	return &c, nil
}

func (s *stubCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if s.customer == nil || s.customer.ID != id {
		return nil, domain.ErrNotFound
	}
	c := *s.customer
	return &c, nil
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}

func (s *stubCustomerRepo) List(_ context.Context, _ customerrepo.Filter) ([]domain.Customer, error) {
	if s.customer == nil {
		return nil, nil
	}
	return []domain.Customer{*s.customer}, nil
}

func (s *stubCustomerRepo) Save(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = &c
	s.customer = &c
	out := c
	return &out, nil
}

func (s *stubCustomerRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubCustomerRepo) ListMachines(_ context.Context, _ string) ([]domain.Machine, error) {
	return s.machines, nil
}

func (s *stubCustomerRepo) ReplaceMachines(_ context.Context, _ string, machines []domain.Machine) ([]domain.Machine, error) {
	s.lastReplacedMachines = machines
	s.machines = machines
	return machines, nil
}

func (s *stubCustomerRepo) ListEmployees(_ context.Context, _ string) ([]domain.Employee, error) {
	return s.employees, nil
}

func (s *stubCustomerRepo) ReplaceEmployees(_ context.Context, _ string, employees []domain.Employee) ([]domain.Employee, error) {
	s.lastReplacedEmployees = employees
	s.employees = employees
	return employees, nil
}

func newTestService(repo *stubCustomerRepo, tokens *stubTokenRepo) *Service {
	return New(repo, tokens, nil)
}

func issue(t *testing.T, svc *Service, customerID string) string {
	t.Helper()
	token, err := svc.IssueLink(context.Background(), customerID)
	if err != nil {
		t.Fatalf("issue link: %v", err)
	}
	return token
}

func TestIssueLinkIsStable(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1"}}
	svc := newTestService(repo, newStubTokenRepo())

	first := issue(t, svc, "c1")
	second := issue(t, svc, "c1")
	if first != second {
		t.Fatalf("reissuing must return the same token: %q vs %q", first, second)
	}
}

func TestResolveHydratesSession(t *testing.T) {
	repo := &stubCustomerRepo{
		customer: &domain.Customer{ID: "c1", BusinessName: "Sunrise", CurrentStep: 2, HighestStepReached: 4},
		machines: []domain.Machine{{MachineNumber: 1, Type: domain.MachineWasher}},
	}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	sess, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Customer.ID != "c1" {
		t.Fatalf("unexpected customer %q", sess.Customer.ID)
	}
	if len(sess.Customer.Machines) != 1 {
		t.Fatal("machines must come from the repository")
	}
	if sess.Customer.TotalSteps != wizard.TotalSteps() {
		t.Fatalf("expected total steps %d, got %d", wizard.TotalSteps(), sess.Customer.TotalSteps)
	}
	if len(sess.Steps) != wizard.TotalSteps() {
		t.Fatalf("expected %d step views, got %d", wizard.TotalSteps(), len(sess.Steps))
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := newTestService(&stubCustomerRepo{}, newStubTokenRepo())
	_, err := svc.Resolve(context.Background(), "bogus")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveCompletedWizard(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", OnboardingCompleted: true, CurrentStep: 3}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	_, err := svc.Resolve(context.Background(), token)
	if !errors.Is(err, domain.ErrCompleted) {
		t.Fatalf("completed wizard must resolve to ErrCompleted regardless of step, got %v", err)
	}
}

func TestSaveProgressAppliesFormAndSteps(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", Status: domain.StatusNotStarted}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	name := "Sunrise Laundromat"
	sess, err := svc.SaveProgress(context.Background(), token, SaveInput{
		Form:        FormInput{BusinessName: &name},
		CurrentStep: 2,
		HighestStep: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Customer.BusinessName != name {
		t.Fatalf("form not applied, got %q", sess.Customer.BusinessName)
	}
	if sess.Customer.CurrentStep != 2 || sess.Customer.HighestStepReached != 2 {
		t.Fatalf("unexpected counters: %d/%d", sess.Customer.CurrentStep, sess.Customer.HighestStepReached)
	}
	if sess.Customer.Status != domain.StatusInProgress {
		t.Fatalf("first save must flip status to in_progress, got %s", sess.Customer.Status)
	}
}

func TestSaveProgressClampsSkipAhead(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", CurrentStep: 1, HighestStepReached: 3}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	// Claiming current step 9 with highest 3 must clamp to the mark.
	sess, err := svc.SaveProgress(context.Background(), token, SaveInput{CurrentStep: 9, HighestStep: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Customer.CurrentStep != 3 {
		t.Fatalf("expected clamp to 3, got %d", sess.Customer.CurrentStep)
	}
}

func TestSaveProgressAcceptsClientRaisedMark(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", CurrentStep: 3, HighestStepReached: 3}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	// The client reports the mark as it completes steps, so a raised mark is
	// taken at face value; only the current step is bounded by it.
	sess, err := svc.SaveProgress(context.Background(), token, SaveInput{CurrentStep: 5, HighestStep: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Customer.HighestStepReached != 5 {
		t.Fatalf("expected mark 5, got %d", sess.Customer.HighestStepReached)
	}
	if sess.Customer.CurrentStep != 5 {
		t.Fatalf("expected current step 5, got %d", sess.Customer.CurrentStep)
	}

	// The mark never regresses: a stale autosave cannot lower it.
	sess, err = svc.SaveProgress(context.Background(), token, SaveInput{CurrentStep: 2, HighestStep: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Customer.HighestStepReached != 5 {
		t.Fatalf("expected mark to stay at 5, got %d", sess.Customer.HighestStepReached)
	}
	if sess.Customer.CurrentStep != 2 {
		t.Fatalf("expected current step 2, got %d", sess.Customer.CurrentStep)
	}
}

func TestSaveProgressAssignsMachineNumbers(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1"}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	machines := []domain.Machine{
		{MachineNumber: 1, Type: domain.MachineWasher},
		{Type: domain.MachineWasher},
		{Type: domain.MachineDryer},
	}
	_, err := svc.SaveProgress(context.Background(), token, SaveInput{Machines: &machines})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.lastReplacedMachines
	if len(got) != 3 {
		t.Fatalf("expected 3 machines replaced, got %d", len(got))
	}
	if got[1].MachineNumber != 2 || got[2].MachineNumber != 101 {
		t.Fatalf("unexpected numbering: %d, %d", got[1].MachineNumber, got[2].MachineNumber)
	}
}

func TestSaveProgressRejectsBadMachineNumber(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1"}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	machines := []domain.Machine{{MachineNumber: 500, Type: domain.MachineWasher}}
	_, err := svc.SaveProgress(context.Background(), token, SaveInput{Machines: &machines})
	if err == nil {
		t.Fatal("expected numbering error")
	}
	if repo.lastReplacedMachines != nil {
		t.Fatal("invalid machine set must not reach the repository")
	}
}

func TestSaveProgressCompletedWizard(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", OnboardingCompleted: true}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	_, err := svc.SaveProgress(context.Background(), token, SaveInput{})
	if !errors.Is(err, domain.ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
	if repo.saved != nil {
		t.Fatal("completed wizard must never be saved over")
	}
}

func TestSubmitIsTerminal(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: "c1", CurrentStep: 10, HighestStepReached: 10, Status: domain.StatusInProgress}}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	c, err := svc.Submit(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.OnboardingCompleted {
		t.Fatal("submit must complete the wizard")
	}
	if c.Status != domain.StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", c.Status)
	}

	_, err = svc.Submit(context.Background(), token)
	if !errors.Is(err, domain.ErrCompleted) {
		t.Fatalf("second submit must fail with ErrCompleted, got %v", err)
	}
}

func TestSubmitSaveFailureLeavesCustomerOpen(t *testing.T) {
	repo := &stubCustomerRepo{
		customer: &domain.Customer{ID: "c1", Status: domain.StatusInProgress},
		saveErr:  errors.New("db down"),
	}
	svc := newTestService(repo, newStubTokenRepo())
	token := issue(t, svc, "c1")

	if _, err := svc.Submit(context.Background(), token); err == nil {
		t.Fatal("expected save error")
	}
	if repo.customer.OnboardingCompleted {
		t.Fatal("failed submit must not mark the stored customer complete")
	}
}
