package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type customerSeed struct {
	BusinessName string
	OwnerName    string
	Email        string
	Phone        string
	Status       string
	DealAmount   float64
	Rate         float64
	TermMonths   int
}

type machineSeed struct {
	Number   int
	Type     string
	Make     string
	Model    string
	CoinType string
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@bossboarding.local", "Demo Admin", "changeme123", "super_admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	customers := []customerSeed{
		{
			BusinessName: "Sunrise Laundromat",
			OwnerName:    "Dana Reyes",
			Email:        "dana@sunriselaundry.example",
			Phone:        "555-0101",
			Status:       "in_progress",
			DealAmount:   42000,
			Rate:         10,
			TermMonths:   24,
		},
		{
			BusinessName: "Quick Spin Wash",
			OwnerName:    "Marcus Lee",
			Email:        "marcus@quickspin.example",
			Phone:        "555-0102",
			Status:       "not_started",
			DealAmount:   18500,
			Rate:         8,
			TermMonths:   12,
		},
	}

	machines := []machineSeed{
		{Number: 1, Type: "washer", Make: "Speed Queen", Model: "SC40", CoinType: "coin"},
		{Number: 2, Type: "washer", Make: "Speed Queen", Model: "SC60", CoinType: "coin"},
		{Number: 101, Type: "dryer", Make: "Huebsch", Model: "HT030", CoinType: "card"},
	}

	for i, c := range customers {
		id, err := upsertCustomer(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.Email, err)
		}
		if i == 0 {
			for _, m := range machines {
				if err := upsertMachine(ctx, pool, id, m); err != nil {
					return fmt.Errorf("upsert machine %d: %w", m.Number, err)
				}
			}
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, name, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO admin_users (email, name, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (lower(email)) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, name, string(hash), role)
	return err
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) (string, error) {
	const q = `
INSERT INTO customers (business_name, owner_name, email, phone, status, deal_amount, commission_rate, payment_term_months)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (lower(email)) DO UPDATE
SET business_name = EXCLUDED.business_name,
    owner_name = EXCLUDED.owner_name,
    phone = EXCLUDED.phone
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.BusinessName, c.OwnerName, c.Email, c.Phone, c.Status, c.DealAmount, c.Rate, c.TermMonths).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertMachine(ctx context.Context, pool *pgxpool.Pool, customerID string, m machineSeed) error {
	const q = `
INSERT INTO machines (customer_id, machine_number, type, make, model, coin_type, pricing)
SELECT $1, $2, $3, $4, $5, $6, '{}'::jsonb
WHERE NOT EXISTS (
    SELECT 1 FROM machines WHERE customer_id = $1 AND machine_number = $2
)
`
	_, err := pool.Exec(ctx, q, customerID, m.Number, m.Type, m.Make, m.Model, m.CoinType)
	return err
}
