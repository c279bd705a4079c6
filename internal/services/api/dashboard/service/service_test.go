package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/testkit/dbfake"
	ptime "gymdesk/internal/platform/time"
	checkinsdomain "gymdesk/internal/services/api/checkins/domain"
	"gymdesk/internal/services/api/dashboard/domain"
	"gymdesk/internal/services/api/dashboard/repo"
)

type fakeRepo struct {
	mu       sync.Mutex
	revenue  map[[2]time.Time]float64
	visitors [2]time.Time
	expiring [2]time.Time
	tz       string
	err      error
}

func (f *fakeRepo) Visits(context.Context, time.Time) (repo.Visits, error) {
	return repo.Visits{Members: 4, Total: 6, Open: 2}, f.err
}

func (f *fakeRepo) Visitors(_ context.Context, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visitors = [2]time.Time{from, to}
	return 31, nil
}

func (f *fakeRepo) Revenue(_ context.Context, lo, hi time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revenue[[2]time.Time{lo, hi}], nil
}

func (f *fakeRepo) NewMembers(context.Context, time.Time, time.Time) (int, error) { return 5, nil }

func (f *fakeRepo) ActiveMembers(context.Context) (int, error) { return 120, nil }

func (f *fakeRepo) Expiring(_ context.Context, from, to time.Time) ([]domain.Expiring, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expiring = [2]time.Time{from, to}
	return []domain.Expiring{{MemberID: "GYMAAAAAAA", EndDate: to}}, nil
}

func (f *fakeRepo) Hours(_ context.Context, _ time.Time, tz string) ([]domain.HourCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tz = tz
	return []domain.HourCount{{Hour: 6, Count: 2}, {Hour: 18, Count: 8}}, nil
}

type recent int

func (n recent) Today(context.Context) ([]checkinsdomain.CheckIn, error) {
	out := make([]checkinsdomain.CheckIn, int(n))
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	return out, nil
}

func newSvc(f *fakeRepo, loc *time.Location, now time.Time, r domain.RecentSource) *Svc {
	return New(dbfake.New(), repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f }), Options{
		Recent:   r,
		Clock:    ptime.Fixed(now),
		Location: loc,
	})
}

func TestStats(t *testing.T) {
	t.Parallel()

	manila := time.FixedZone("Asia/Manila", 8*3600)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, manila)
	tomorrow := today.AddDate(0, 0, 1)
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, manila)

	f := &fakeRepo{revenue: map[[2]time.Time]float64{
		{today, tomorrow}: 1400,
		{month, tomorrow}: 23500.5,
	}}
	// 20:30 UTC on the 14th is already the 15th in Manila
	s := newSvc(f, manila, time.Date(2024, 3, 14, 20, 30, 0, 0, time.UTC), recent(14))

	st, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Today != (domain.Today{WalkIns: 4, CheckIns: 6, InGym: 2, Revenue: 1400}) {
		t.Fatalf("today = %+v", st.Today)
	}
	if st.Month != (domain.Month{CheckIns: 31, Revenue: 23500.5, NewMembers: 5}) || st.ActiveMembers != 120 {
		t.Fatalf("month = %+v active = %d", st.Month, st.ActiveMembers)
	}
	if !f.visitors[0].Equal(month) || !f.visitors[1].Equal(today) {
		t.Fatalf("visitor range = %v", f.visitors)
	}
	if !f.expiring[1].Equal(today.AddDate(0, 0, 3)) || st.ExpiringSoon[0].DaysLeft != 3 {
		t.Fatalf("expiring = %+v range %v", st.ExpiringSoon, f.expiring)
	}
	if len(st.RecentCheckIns) != domain.RecentLimit {
		t.Fatalf("recent = %d", len(st.RecentCheckIns))
	}
	if len(st.PeakHours) != 2 || st.PeakHours[0].Percentage != 25 || st.PeakHours[1].Percentage != 100 {
		t.Fatalf("peaks = %+v", st.PeakHours)
	}
	if f.tz != "Asia/Manila" {
		t.Fatalf("tz = %q", f.tz)
	}
	if st.RevenueDisplay.Today != "₱1,400.00" || st.RevenueDisplay.Month != "₱23,500.50" {
		t.Fatalf("display = %+v", st.RevenueDisplay)
	}
}

func TestStats_EmptyListsAndErrors(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	st, err := newSvc(&fakeRepo{}, time.UTC, now, nil).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.RecentCheckIns == nil || len(st.RecentCheckIns) != 0 {
		t.Fatalf("recent = %#v", st.RecentCheckIns)
	}

	boom := errors.New("boom")
	if _, err := newSvc(&fakeRepo{err: boom}, time.UTC, now, recent(1)).Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestPeaks(t *testing.T) {
	t.Parallel()

	if got := domain.Peaks(nil); len(got) != 0 {
		t.Fatalf("Peaks(nil) = %v", got)
	}
	got := domain.Peaks([]domain.HourCount{{Hour: 7, Count: 3}, {Hour: 8, Count: 4}})
	if got[0].Percentage != 75 || got[1].Percentage != 100 {
		t.Fatalf("Peaks = %+v", got)
	}
}
