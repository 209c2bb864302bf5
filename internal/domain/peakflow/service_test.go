package peakflow

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

type mockReadingRepo struct {
	byAccount map[uuid.UUID][]Reading
	failReads bool
	clock     time.Time
}

func newMockReadingRepo() *mockReadingRepo {
	return &mockReadingRepo{
		byAccount: make(map[uuid.UUID][]Reading),
		clock:     time.Now().Add(-24 * time.Hour),
	}
}

func (m *mockReadingRepo) Create(_ context.Context, r *Reading) error {
	r.ID = uuid.New()
	m.clock = m.clock.Add(time.Minute)
	r.RecordedAt = m.clock
	m.byAccount[r.AccountID] = append(m.byAccount[r.AccountID], *r)
	return nil
}

func (m *mockReadingRepo) sorted(accountID uuid.UUID) []Reading {
	out := append([]Reading(nil), m.byAccount[accountID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out
}

func (m *mockReadingRepo) ListByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]Reading, int, error) {
	if m.failReads {
		return nil, 0, apperror.ErrBackend
	}
	all := m.sorted(accountID)
	if offset >= len(all) {
		return []Reading{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (m *mockReadingRepo) ListSince(_ context.Context, accountID uuid.UUID, since time.Time) ([]Reading, error) {
	if m.failReads {
		return nil, apperror.ErrBackend
	}
	out := make([]Reading, 0)
	for _, r := range m.sorted(accountID) {
		if !r.RecordedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReadingRepo) ListRecent(_ context.Context, accountID uuid.UUID, n int) ([]Reading, error) {
	if m.failReads {
		return nil, apperror.ErrBackend
	}
	all := m.sorted(accountID)
	if n < len(all) {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (m *mockReadingRepo) ListAll(_ context.Context, accountID uuid.UUID) ([]Reading, error) {
	if m.failReads {
		return nil, apperror.ErrBackend
	}
	return m.sorted(accountID), nil
}

type staticProfile struct{ best float64 }

func (s staticProfile) PersonalBest(context.Context, uuid.UUID) (float64, error) {
	return s.best, nil
}

func TestLogReading_UsesStoredBest(t *testing.T) {
	repo := newMockReadingRepo()
	svc := NewService(repo, staticProfile{best: 500})
	id := uuid.New()

	rd, cls, err := svc.LogReading(context.Background(), id, 420, nil)
	if err != nil {
		t.Fatalf("LogReading: %v", err)
	}
	if cls.Zone != ZoneGreen {
		t.Errorf("zone = %s, want green", cls.Zone)
	}
	if rd.Zone != cls.Zone {
		t.Errorf("persisted zone %s differs from classification %s", rd.Zone, cls.Zone)
	}
	if len(repo.byAccount[id]) != 1 {
		t.Fatalf("expected one stored reading, got %d", len(repo.byAccount[id]))
	}
}

func TestLogReading_OverrideBestWins(t *testing.T) {
	svc := NewService(newMockReadingRepo(), staticProfile{best: 500})
	override := 300.0

	// 240/300 = 80% green; against the stored 500 it would be red.
	_, cls, err := svc.LogReading(context.Background(), uuid.New(), 240, &override)
	if err != nil {
		t.Fatalf("LogReading: %v", err)
	}
	if cls.Zone != ZoneGreen {
		t.Errorf("zone = %s, want green with override best", cls.Zone)
	}
}

func TestLogReading_NoBestOnRecord(t *testing.T) {
	svc := NewService(newMockReadingRepo(), staticProfile{best: 0})

	_, _, err := svc.LogReading(context.Background(), uuid.New(), 400, nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	repo := newMockReadingRepo()
	svc := NewService(repo, staticProfile{best: 500})
	id := uuid.New()

	values := []float64{450, 380, 220}
	for _, v := range values {
		if _, _, err := svc.LogReading(context.Background(), id, v, nil); err != nil {
			t.Fatalf("LogReading(%v): %v", v, err)
		}
	}

	got, total, err := svc.History(context.Background(), id, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != len(values) {
		t.Errorf("total = %d, want %d", total, len(values))
	}
	for i, v := range values {
		if got[i].Value != v {
			t.Errorf("entry %d value = %v, want %v (chronological order)", i, got[i].Value, v)
		}
	}
}

func TestHistory_DegradesOnReadFailure(t *testing.T) {
	repo := newMockReadingRepo()
	repo.failReads = true
	svc := NewService(repo, staticProfile{best: 500})

	got, total, err := svc.History(context.Background(), uuid.New(), 10, 0)
	if err != nil {
		t.Fatalf("History should degrade, got error %v", err)
	}
	if total != 0 || len(got) != 0 {
		t.Errorf("expected empty page, got %d entries total %d", len(got), total)
	}
}

func TestSummarize_MeanTruncates(t *testing.T) {
	repo := newMockReadingRepo()
	svc := NewService(repo, staticProfile{best: 500})
	id := uuid.New()

	for _, v := range []float64{400, 401} { // mean 400.5 truncates to 400
		if _, _, err := svc.LogReading(context.Background(), id, v, nil); err != nil {
			t.Fatalf("LogReading: %v", err)
		}
	}

	sum, err := svc.Summarize(context.Background(), id, Window{})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Count != 2 {
		t.Errorf("count = %d, want 2", sum.Count)
	}
	if sum.Mean != 400 {
		t.Errorf("mean = %d, want 400", sum.Mean)
	}
}

func TestSummarize_EmptyWindow(t *testing.T) {
	svc := NewService(newMockReadingRepo(), staticProfile{best: 500})

	sum, err := svc.Summarize(context.Background(), uuid.New(), Window{Days: 7})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Count != 0 || sum.Mean != 0 {
		t.Errorf("empty window should yield zero count and mean, got %+v", sum)
	}
	if sum.Entries == nil {
		t.Error("entries should be an empty slice, not nil")
	}
}

func TestSummarize_LastWindow(t *testing.T) {
	repo := newMockReadingRepo()
	svc := NewService(repo, staticProfile{best: 500})
	id := uuid.New()

	for _, v := range []float64{100, 200, 300, 400} {
		if _, _, err := svc.LogReading(context.Background(), id, v, nil); err != nil {
			t.Fatalf("LogReading: %v", err)
		}
	}

	sum, err := svc.Summarize(context.Background(), id, Window{Last: 2})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Count != 2 {
		t.Fatalf("count = %d, want 2", sum.Count)
	}
	if sum.Mean != 350 {
		t.Errorf("mean = %d, want 350 over last two readings", sum.Mean)
	}
}

func TestSummarize_NegativeWindowRejected(t *testing.T) {
	svc := NewService(newMockReadingRepo(), staticProfile{best: 500})
	if _, err := svc.Summarize(context.Background(), uuid.New(), Window{Days: -1}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}
