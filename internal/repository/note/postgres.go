package note

import (
	"context"
	"errors"

	"bossboarding/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const columns = `id::text, customer_id::text, author, body, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, n domain.Note) (*domain.Note, error) {
	const q = `
INSERT INTO customer_notes (customer_id, author, body)
VALUES ($1, $2, $3)
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, n.CustomerID, n.Author, n.Body))
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Note, error) {
	q := `SELECT ` + columns + ` FROM customer_notes WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Note
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, id, body string) (*domain.Note, error) {
	const q = `
UPDATE customer_notes SET body = $2, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, id, body))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customer_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scan(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.CustomerID, &n.Author, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
