package peakflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

// ProfileSource supplies the stored personal best for an account.
// Satisfied by the account service.
type ProfileSource interface {
	PersonalBest(ctx context.Context, accountID uuid.UUID) (float64, error)
}

type Service struct {
	readings ReadingRepository
	profiles ProfileSource
}

func NewService(readings ReadingRepository, profiles ProfileSource) *Service {
	return &Service{readings: readings, profiles: profiles}
}

// LogReading classifies a measurement and persists it. A positive
// overrideBest takes precedence over the stored personal best for this
// one reading; it is not saved back to the profile.
func (s *Service) LogReading(ctx context.Context, accountID uuid.UUID, value float64, overrideBest *float64) (*Reading, Classification, error) {
	best := 0.0
	if overrideBest != nil {
		best = *overrideBest
	} else {
		stored, err := s.profiles.PersonalBest(ctx, accountID)
		if err != nil {
			return nil, Classification{}, err
		}
		best = stored
	}
	if best <= 0 {
		return nil, Classification{}, fmt.Errorf("no personal best on record, set one in settings or pass personal_best: %w", apperror.ErrValidation)
	}

	cls, err := Classify(value, best)
	if err != nil {
		return nil, Classification{}, err
	}

	rd := &Reading{AccountID: accountID, Value: value, Zone: cls.Zone}
	if err := s.readings.Create(ctx, rd); err != nil {
		return nil, Classification{}, err
	}
	return rd, cls, nil
}

// History returns the account's readings oldest first. Storage failures
// degrade to an empty page so the dashboard still renders.
func (s *Service) History(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Reading, int, error) {
	out, total, err := s.readings.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		log.Warn().Err(err).Str("account_id", accountID.String()).
			Msg("reading history unavailable, serving empty set")
		return []Reading{}, 0, nil
	}
	return out, total, nil
}

// Window restricts a summary to the trailing Days days or the Last most
// recent readings. Zero values mean no restriction on that axis.
type Window struct {
	Days int
	Last int
}

// Summary aggregates readings in a window. Mean is the integer part of
// the arithmetic mean; an empty window yields Count 0 and Mean 0.
type Summary struct {
	Count   int       `json:"count"`
	Mean    int       `json:"mean"`
	Entries []Reading `json:"entries"`
}

func (s *Service) Summarize(ctx context.Context, accountID uuid.UUID, w Window) (Summary, error) {
	if w.Days < 0 || w.Last < 0 {
		return Summary{}, fmt.Errorf("window bounds must not be negative: %w", apperror.ErrValidation)
	}

	var (
		entries []Reading
		err     error
	)
	switch {
	case w.Last > 0:
		entries, err = s.readings.ListRecent(ctx, accountID, w.Last)
	case w.Days > 0:
		since := time.Now().AddDate(0, 0, -w.Days)
		entries, err = s.readings.ListSince(ctx, accountID, since)
	default:
		entries, err = s.readings.ListAll(ctx, accountID)
	}
	if err != nil {
		log.Warn().Err(err).Str("account_id", accountID.String()).
			Msg("reading summary unavailable, serving empty set")
		return Summary{Entries: []Reading{}}, nil
	}

	if len(entries) == 0 {
		return Summary{Entries: []Reading{}}, nil
	}

	var sum float64
	for _, rd := range entries {
		sum += rd.Value
	}
	return Summary{
		Count:   len(entries),
		Mean:    int(sum / float64(len(entries))),
		Entries: entries,
	}, nil
}

// AllReadings lists every reading for an account without the degrade
// behaviour of History. Report export uses it so a broken store surfaces
// as an error instead of an empty document.
func (s *Service) AllReadings(ctx context.Context, accountID uuid.UUID) ([]Reading, error) {
	return s.readings.ListAll(ctx, accountID)
}
