package dayahead

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/angas/elkvart-go/display"
	"github.com/angas/elkvart-go/pricecache"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/rank"
	"github.com/angas/elkvart-go/types"
)

type fakeProvider struct {
	rows  []types.PriceRow
	err   error
	calls int
}

func (f *fakeProvider) FetchDay(ctx context.Context, date quarters.Date, area types.Area) ([]types.PriceRow, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

var testDate = quarters.Date{Year: 2025, Month: 10, Day: 2}

func makeDay(count int) []types.PriceRow {
	start := time.Date(2025, 10, 1, 22, 0, 0, 0, time.UTC)
	rows := make([]types.PriceRow, count)
	for i := range rows {
		rows[i] = types.PriceRow{
			Start:     quarters.KeyOf(start.Add(time.Duration(i) * 15 * time.Minute)),
			SEKPerKWh: float64((i * 37) % 96),
		}
	}
	return rows
}

func newService(providers ...types.PriceProvider) *Service {
	return New(slog.Default(), pricecache.New(15*time.Minute), providers...)
}

func TestDayUsesCache(t *testing.T) {
	provider := &fakeProvider{rows: makeDay(96)}
	s := newService(provider)

	for i := 0; i < 3; i++ {
		if _, err := s.Day(context.Background(), testDate, types.AreaSE4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if provider.calls != 1 {
		t.Errorf("got %d provider calls, wanted 1", provider.calls)
	}
}

func TestDayProviderFallback(t *testing.T) {
	failing := &fakeProvider{err: errors.New("upstream down")}
	working := &fakeProvider{rows: makeDay(96)}
	s := newService(failing, working)

	rows, err := s.Day(context.Background(), testDate, types.AreaSE4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 96 {
		t.Errorf("got %d rows, wanted 96", len(rows))
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("got calls %d/%d, wanted 1/1", failing.calls, working.calls)
	}
}

func TestDayAllProvidersFail(t *testing.T) {
	cause := errors.New("upstream down")
	s := newService(&fakeProvider{err: cause})

	_, err := s.Day(context.Background(), testDate, types.AreaSE4)
	if !errors.Is(err, cause) {
		t.Errorf("got %v, wanted the provider error", err)
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	provider := &fakeProvider{rows: makeDay(96)}
	s := newService(provider)

	s.Day(context.Background(), testDate, types.AreaSE4)
	s.ClearCache()
	s.Day(context.Background(), testDate, types.AreaSE4)

	if provider.calls != 2 {
		t.Errorf("got %d provider calls, wanted 2", provider.calls)
	}
}

func TestSnapshot(t *testing.T) {
	provider := &fakeProvider{rows: makeDay(96)}
	s := newService(provider)

	q := Query{Date: testDate, Area: types.AreaSE4, Options: display.Options{InOre: true}}
	snap, err := s.Snapshot(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Rows) != 96 {
		t.Errorf("got %d display rows, wanted 96", len(snap.Rows))
	}
	if len(snap.Sets.Top) != rank.TopSize || len(snap.Sets.Next) != rank.NextSize {
		t.Errorf("got %d/%d rank sets", len(snap.Sets.Top), len(snap.Sets.Next))
	}
	if snap.Stats.Count != 96 {
		t.Errorf("got stats count %d, wanted 96", snap.Stats.Count)
	}
	if snap.Fingerprint() != "2025-10-02|SE4|96" {
		t.Errorf("got fingerprint %s", snap.Fingerprint())
	}
}

func TestSnapshotRankIndependentOfDisplayOptions(t *testing.T) {
	provider := &fakeProvider{rows: makeDay(96)}
	s := newService(provider)

	plain, err := s.Snapshot(context.Background(), Query{Date: testDate, Area: types.AreaSE4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled, err := s.Snapshot(context.Background(), Query{
		Date:    testDate,
		Area:    types.AreaSE4,
		Options: display.Options{InOre: true, IncludeVAT: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, row := range plain.Rows {
		if plain.Sets.ClassOf(row.Start) != scaled.Sets.ClassOf(row.Start) {
			t.Errorf("class for %s changed with display options", row.Start)
		}
	}
}
