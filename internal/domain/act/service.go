package act

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	scores ScoreRepository
}

func NewService(scores ScoreRepository) *Service {
	return &Service{scores: scores}
}

// Submit validates and records a completed test.
func (s *Service) Submit(ctx context.Context, accountID uuid.UUID, answers []int) (*Score, error) {
	total, err := SumScore(answers)
	if err != nil {
		return nil, err
	}

	stored := make([]int32, len(answers))
	for i, a := range answers {
		stored[i] = int32(a)
	}

	sc := &Score{AccountID: accountID, Answers: stored, Total: total}
	if err := s.scores.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// History lists past submissions oldest first. Like dashboard reads
// elsewhere, storage failures degrade to an empty page.
func (s *Service) History(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Score, int, error) {
	out, total, err := s.scores.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		log.Warn().Err(err).Str("account_id", accountID.String()).
			Msg("act history unavailable, serving empty set")
		return []Score{}, 0, nil
	}
	return out, total, nil
}

// Latest returns the most recent submission, for the dashboard's
// current control status.
func (s *Service) Latest(ctx context.Context, accountID uuid.UUID) (*Score, error) {
	return s.scores.Latest(ctx, accountID)
}

// AllScores lists every submission without degrading, for report export.
func (s *Service) AllScores(ctx context.Context, accountID uuid.UUID) ([]Score, error) {
	return s.scores.ListAll(ctx, accountID)
}
