package act

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

type scoreRepoPG struct{ pool *pgxpool.Pool }

func NewScoreRepoPG(pool *pgxpool.Pool) ScoreRepository {
	return &scoreRepoPG{pool: pool}
}

const scoreCols = `id, account_id, answers, total, taken_at`

func (r *scoreRepoPG) Create(ctx context.Context, s *Score) error {
	s.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO act_scores (id, account_id, answers, total)
		VALUES ($1,$2,$3,$4)
		RETURNING taken_at`,
		s.ID, s.AccountID, s.Answers, s.Total).
		Scan(&s.TakenAt)
	if err != nil {
		return mapScoreError(err)
	}
	return nil
}

func (r *scoreRepoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Score, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM act_scores WHERE account_id = $1`, accountID).Scan(&total)
	if err != nil {
		return nil, 0, mapScoreError(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+scoreCols+` FROM act_scores
		WHERE account_id = $1
		ORDER BY taken_at ASC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, mapScoreError(err)
	}
	out, err := collectScores(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *scoreRepoPG) ListAll(ctx context.Context, accountID uuid.UUID) ([]Score, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scoreCols+` FROM act_scores
		WHERE account_id = $1
		ORDER BY taken_at ASC`,
		accountID)
	if err != nil {
		return nil, mapScoreError(err)
	}
	return collectScores(rows)
}

func (r *scoreRepoPG) Latest(ctx context.Context, accountID uuid.UUID) (*Score, error) {
	var s Score
	err := r.pool.QueryRow(ctx, `
		SELECT `+scoreCols+` FROM act_scores
		WHERE account_id = $1
		ORDER BY taken_at DESC
		LIMIT 1`,
		accountID).
		Scan(&s.ID, &s.AccountID, &s.Answers, &s.Total, &s.TakenAt)
	if err != nil {
		return nil, mapScoreError(err)
	}
	return &s, nil
}

func collectScores(rows pgx.Rows) ([]Score, error) {
	defer rows.Close()
	out := make([]Score, 0)
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Answers, &s.Total, &s.TakenAt); err != nil {
			return nil, mapScoreError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapScoreError(err)
	}
	return out, nil
}

func mapScoreError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("act score: %w", apperror.ErrNotFound)
	}
	return fmt.Errorf("act_scores query: %v: %w", err, apperror.ErrBackend)
}
