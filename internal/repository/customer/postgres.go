package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"bossboarding/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `
id::text, business_name, owner_name, email, phone, status,
current_step, highest_step_reached, total_steps, onboarding_completed, current_stage_id,
task_statuses, task_metadata,
location, shipping, kiosk, pci, merchant, billing,
payment_links, sales_rep_assignments,
deal_amount, commission_rate, payment_term_months, paid_to_date_amount,
created_at, updated_at`

type customerBlobs struct {
	taskStatuses []byte
	taskMetadata []byte
	location     []byte
	shipping     []byte
	kiosk        []byte
	pci          []byte
	merchant     []byte
	billing      []byte
	paymentLinks []byte
	repAssigns   []byte
}

func marshalBlobs(c domain.Customer) (customerBlobs, error) {
	var b customerBlobs
	var err error
	marshal := func(v interface{}) []byte {
		if err != nil {
			return nil
		}
		var raw []byte
		raw, err = json.Marshal(v)
		return raw
	}
	b.taskStatuses = marshal(c.TaskStatuses)
	b.taskMetadata = marshal(c.TaskMetadata)
	b.location = marshal(c.Location)
	b.shipping = marshal(c.Shipping)
	b.kiosk = marshal(c.Kiosk)
	b.pci = marshal(c.PCI)
	b.merchant = marshal(c.Merchant)
	b.billing = marshal(c.Billing)
	b.paymentLinks = marshal(c.PaymentLinks)
	b.repAssigns = marshal(c.SalesRepAssignments)
	return b, err
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	b, err := marshalBlobs(c)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO customers (
    business_name, owner_name, email, phone, status,
    current_step, highest_step_reached, total_steps, onboarding_completed, current_stage_id,
    task_statuses, task_metadata,
    location, shipping, kiosk, pci, merchant, billing,
    payment_links, sales_rep_assignments,
    deal_amount, commission_rate, payment_term_months, paid_to_date_amount
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q,
		c.BusinessName, c.OwnerName, strings.ToLower(c.Email), c.Phone, c.Status,
		c.CurrentStep, c.HighestStepReached, c.TotalSteps, c.OnboardingCompleted, c.CurrentStageID,
		b.taskStatuses, b.taskMetadata,
		b.location, b.shipping, b.kiosk, b.pci, b.merchant, b.billing,
		b.paymentLinks, b.repAssigns,
		c.DealAmount, c.CommissionRate, c.PaymentTermMonths, c.PaidToDateAmount,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 LIMIT 1`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers`
	var conds []string
	var args []interface{}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.StageID != "" {
		args = append(args, f.StageID)
		conds = append(conds, fmt.Sprintf("current_stage_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(business_name ILIKE $%d OR owner_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args), len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Save(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	b, err := marshalBlobs(c)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE customers SET
    business_name = $2, owner_name = $3, email = $4, phone = $5, status = $6,
    current_step = $7, highest_step_reached = $8, total_steps = $9,
    onboarding_completed = $10, current_stage_id = $11,
    task_statuses = $12, task_metadata = $13,
    location = $14, shipping = $15, kiosk = $16, pci = $17, merchant = $18, billing = $19,
    payment_links = $20, sales_rep_assignments = $21,
    deal_amount = $22, commission_rate = $23, payment_term_months = $24, paid_to_date_amount = $25,
    updated_at = now()
WHERE id = $1
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q,
		c.ID,
		c.BusinessName, c.OwnerName, strings.ToLower(c.Email), c.Phone, c.Status,
		c.CurrentStep, c.HighestStepReached, c.TotalSteps, c.OnboardingCompleted, c.CurrentStageID,
		b.taskStatuses, b.taskMetadata,
		b.location, b.shipping, b.kiosk, b.pci, b.merchant, b.billing,
		b.paymentLinks, b.repAssigns,
		c.DealAmount, c.CommissionRate, c.PaymentTermMonths, c.PaidToDateAmount,
	))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const machineColumns = `id::text, customer_id::text, machine_number, type, make, model, serial_number, coin_type, pricing, status, created_at`

func (r *postgresRepo) ListMachines(ctx context.Context, customerID string) ([]domain.Machine, error) {
	q := `SELECT ` + machineColumns + ` FROM machines WHERE customer_id = $1 ORDER BY machine_number`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Machine
	for rows.Next() {
		var m domain.Machine
		var pricing []byte
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.MachineNumber, &m.Type, &m.Make, &m.Model,
			&m.SerialNumber, &m.CoinType, &pricing, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(pricing) > 0 {
			if err := json.Unmarshal(pricing, &m.Pricing); err != nil {
				r.logger.Printf("customer repo: decode machine pricing id=%s err=%v", m.ID, err)
				return nil, err
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ReplaceMachines deletes and reinserts the customer's full machine set in a
// single transaction so a mid-replace failure cannot leave the set half
// written.
func (r *postgresRepo) ReplaceMachines(ctx context.Context, customerID string, machines []domain.Machine) ([]domain.Machine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM machines WHERE customer_id = $1`, customerID); err != nil {
		return nil, err
	}
	const insert = `
INSERT INTO machines (customer_id, machine_number, type, make, model, serial_number, coin_type, pricing, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	for _, m := range machines {
		pricing, err := json.Marshal(m.Pricing)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, insert, customerID, m.MachineNumber, m.Type, m.Make, m.Model,
			m.SerialNumber, m.CoinType, pricing, m.Status); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ListMachines(ctx, customerID)
}

const employeeColumns = `id::text, customer_id::text, first_name, last_name, email, phone, pin, role, created_at`

func (r *postgresRepo) ListEmployees(ctx context.Context, customerID string) ([]domain.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE customer_id = $1 ORDER BY created_at, first_name`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.FirstName, &e.LastName, &e.Email,
			&e.Phone, &e.PIN, &e.Role, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplaceEmployees mirrors ReplaceMachines for the employee set.
func (r *postgresRepo) ReplaceEmployees(ctx context.Context, customerID string, employees []domain.Employee) ([]domain.Employee, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM employees WHERE customer_id = $1`, customerID); err != nil {
		return nil, err
	}
	const insert = `
INSERT INTO employees (customer_id, first_name, last_name, email, phone, pin, role)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for _, e := range employees {
		if _, err := tx.Exec(ctx, insert, customerID, e.FirstName, e.LastName, e.Email, e.Phone, e.PIN, e.Role); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ListEmployees(ctx, customerID)
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var b customerBlobs
	err := row.Scan(
		&c.ID, &c.BusinessName, &c.OwnerName, &c.Email, &c.Phone, &c.Status,
		&c.CurrentStep, &c.HighestStepReached, &c.TotalSteps, &c.OnboardingCompleted, &c.CurrentStageID,
		&b.taskStatuses, &b.taskMetadata,
		&b.location, &b.shipping, &b.kiosk, &b.pci, &b.merchant, &b.billing,
		&b.paymentLinks, &b.repAssigns,
		&c.DealAmount, &c.CommissionRate, &c.PaymentTermMonths, &c.PaidToDateAmount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}

	decode := func(raw []byte, v interface{}, what string) error {
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, v); err != nil {
			r.logger.Printf("customer repo: decode %s id=%s err=%v", what, c.ID, err)
			return err
		}
		return nil
	}
	if err := decode(b.taskStatuses, &c.TaskStatuses, "task statuses"); err != nil {
		return nil, err
	}
	if err := decode(b.taskMetadata, &c.TaskMetadata, "task metadata"); err != nil {
		return nil, err
	}
	if err := decode(b.location, &c.Location, "location"); err != nil {
		return nil, err
	}
	if err := decode(b.shipping, &c.Shipping, "shipping"); err != nil {
		return nil, err
	}
	if err := decode(b.kiosk, &c.Kiosk, "kiosk"); err != nil {
		return nil, err
	}
	if err := decode(b.pci, &c.PCI, "pci"); err != nil {
		return nil, err
	}
	if err := decode(b.merchant, &c.Merchant, "merchant"); err != nil {
		return nil, err
	}
	if err := decode(b.billing, &c.Billing, "billing"); err != nil {
		return nil, err
	}
	if err := decode(b.paymentLinks, &c.PaymentLinks, "payment links"); err != nil {
		return nil, err
	}
	if err := decode(b.repAssigns, &c.SalesRepAssignments, "rep assignments"); err != nil {
		return nil, err
	}
	return &c, nil
}
