package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewAccountRepoPG(pool *pgxpool.Pool) AccountRepository {
	return &accountRepoPG{pool: pool}
}

const acctCols = `id, full_name, email, password_hash, doctor_phone, personal_best, created_at, updated_at`

func (r *accountRepoPG) scan(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash,
		&a.DoctorPhone, &a.PersonalBest, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, full_name, email, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		a.ID, a.FullName, a.Email, a.PasswordHash).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *accountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+acctCols+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepoPG) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+acctCols+` FROM accounts WHERE email = $1`, email))
}

func (r *accountRepoPG) UpdateSettings(ctx context.Context, id uuid.UUID, doctorPhone *string, personalBest *float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET doctor_phone = COALESCE($2, doctor_phone),
		    personal_best = COALESCE($3, personal_best),
		    updated_at = NOW()
		WHERE id = $1`,
		id, doctorPhone, personalBest)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

// mapError translates pgx errors into the shared taxonomy.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("account: %w", apperror.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("email already registered: %w", apperror.ErrConflict)
	}
	return fmt.Errorf("accounts query: %v: %w", err, apperror.ErrBackend)
}
