package peakflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

type readingRepoPG struct{ pool *pgxpool.Pool }

func NewReadingRepoPG(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepoPG{pool: pool}
}

const readingCols = `id, account_id, value, zone, recorded_at`

func (r *readingRepoPG) Create(ctx context.Context, rd *Reading) error {
	rd.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO peak_flow_readings (id, account_id, value, zone)
		VALUES ($1,$2,$3,$4)
		RETURNING recorded_at`,
		rd.ID, rd.AccountID, rd.Value, rd.Zone).
		Scan(&rd.RecordedAt)
	if err != nil {
		return mapReadingError(err)
	}
	return nil
}

func (r *readingRepoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Reading, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM peak_flow_readings WHERE account_id = $1`, accountID).Scan(&total)
	if err != nil {
		return nil, 0, mapReadingError(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+readingCols+` FROM peak_flow_readings
		WHERE account_id = $1
		ORDER BY recorded_at ASC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, 0, mapReadingError(err)
	}
	out, err := collectReadings(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *readingRepoPG) ListSince(ctx context.Context, accountID uuid.UUID, since time.Time) ([]Reading, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingCols+` FROM peak_flow_readings
		WHERE account_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`,
		accountID, since)
	if err != nil {
		return nil, mapReadingError(err)
	}
	return collectReadings(rows)
}

func (r *readingRepoPG) ListRecent(ctx context.Context, accountID uuid.UUID, n int) ([]Reading, error) {
	// Newest n rows, then flipped so callers always see chronological order.
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingCols+` FROM (
			SELECT `+readingCols+` FROM peak_flow_readings
			WHERE account_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC`,
		accountID, n)
	if err != nil {
		return nil, mapReadingError(err)
	}
	return collectReadings(rows)
}

func (r *readingRepoPG) ListAll(ctx context.Context, accountID uuid.UUID) ([]Reading, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingCols+` FROM peak_flow_readings
		WHERE account_id = $1
		ORDER BY recorded_at ASC`,
		accountID)
	if err != nil {
		return nil, mapReadingError(err)
	}
	return collectReadings(rows)
}

func collectReadings(rows pgx.Rows) ([]Reading, error) {
	defer rows.Close()
	out := make([]Reading, 0)
	for rows.Next() {
		var rd Reading
		if err := rows.Scan(&rd.ID, &rd.AccountID, &rd.Value, &rd.Zone, &rd.RecordedAt); err != nil {
			return nil, mapReadingError(err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadingError(err)
	}
	return out, nil
}

func mapReadingError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("reading: %w", apperror.ErrNotFound)
	}
	return fmt.Errorf("peak_flow_readings query: %v: %w", err, apperror.ErrBackend)
}
