package peakflow

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReadingRepository persists peak-flow readings for an account.
type ReadingRepository interface {
	Create(ctx context.Context, r *Reading) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Reading, int, error)
	ListSince(ctx context.Context, accountID uuid.UUID, since time.Time) ([]Reading, error)
	ListRecent(ctx context.Context, accountID uuid.UUID, n int) ([]Reading, error)
	ListAll(ctx context.Context, accountID uuid.UUID) ([]Reading, error)
}
