package portaluser

import (
	"context"
	"errors"
	"strings"

	"bossboarding/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const columns = `id::text, customer_id::text, email, name, password_hash, role, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.CustomerUser) (*domain.CustomerUser, error) {
	const q = `
INSERT INTO customer_users (customer_id, email, name, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, u.CustomerID, strings.ToLower(u.Email), u.Name, u.PasswordHash, u.Role))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CustomerUser, error) {
	return scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM customer_users WHERE id = $1 LIMIT 1`, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.CustomerUser, error) {
	return scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM customer_users WHERE lower(email) = lower($1) LIMIT 1`, email))
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.CustomerUser, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM customer_users WHERE customer_id = $1 ORDER BY created_at`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CustomerUser
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE customer_users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scan(row pgx.Row) (*domain.CustomerUser, error) {
	var u domain.CustomerUser
	if err := row.Scan(&u.ID, &u.CustomerID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}
