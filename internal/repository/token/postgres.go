package token

import (
	"context"
	"errors"

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

func (r *postgresRepo) Create(ctx context.Context, t Token) error {
	const q = `
INSERT INTO tokens (token, kind, subject_id, expires_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.pool.Exec(ctx, q, t.Token, t.Kind, t.SubjectID, t.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*Token, error) {
	const q = `
SELECT token, kind, subject_id::text, expires_at, created_at
FROM tokens
WHERE token = $1
LIMIT 1
`
	return r.scan(r.pool.QueryRow(ctx, q, token))
}

func (r *postgresRepo) GetBySubject(ctx context.Context, kind, subjectID string) (*Token, error) {
	const q = `
SELECT token, kind, subject_id::text, expires_at, created_at
FROM tokens
WHERE kind = $1 AND subject_id = $2
ORDER BY created_at DESC
LIMIT 1
`
	return r.scan(r.pool.QueryRow(ctx, q, kind, subjectID))
}

func (r *postgresRepo) Delete(ctx context.Context, token string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteBySubject(ctx context.Context, kind, subjectID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE kind = $1 AND subject_id = $2`, kind, subjectID)
	return err
}

func (r *postgresRepo) scan(row pgx.Row) (*Token, error) {
	var out Token
	if err := row.Scan(&out.Token, &out.Kind, &out.SubjectID, &out.ExpiresAt, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
