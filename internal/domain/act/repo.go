package act

import (
	"context"

	"github.com/google/uuid"
)

// ScoreRepository persists ACT submissions for an account.
type ScoreRepository interface {
	Create(ctx context.Context, s *Score) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Score, int, error)
	ListAll(ctx context.Context, accountID uuid.UUID) ([]Score, error)
	Latest(ctx context.Context, accountID uuid.UUID) (*Score, error)
}
