package dayahead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/elkvart-go/display"
	"github.com/angas/elkvart-go/pricecache"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/rank"
	"github.com/angas/elkvart-go/types"
)

// Query selects one day's view of the dashboard.
type Query struct {
	Date    quarters.Date
	Area    types.Area
	Options display.Options
}

// Snapshot is the result of one synchronous pipeline pass: raw rows, rank
// sets derived from raw prices, and the normalized display table.
type Snapshot struct {
	Query     Query
	Raw       []types.PriceRow
	Sets      rank.Sets
	Rows      []display.Row
	Stats     display.Stats
	FetchedAt time.Time
}

// Fingerprint identifies the underlying row set for selection invalidation.
// A selection made against one fingerprint is void against another.
func (s Snapshot) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%d", s.Query.Date, s.Query.Area, len(s.Rows))
}

// Service runs the fetch/classify/normalize pipeline, consulting the cache
// before the providers. Providers are tried in order.
type Service struct {
	logger    *slog.Logger
	providers []types.PriceProvider
	cache     *pricecache.Cache
}

func New(logger *slog.Logger, cache *pricecache.Cache, providers ...types.PriceProvider) *Service {
	return &Service{
		logger:    logger,
		providers: providers,
		cache:     cache,
	}
}

// Day returns one day's raw price rows, cached for the cache TTL.
func (s *Service) Day(ctx context.Context, date quarters.Date, area types.Area) ([]types.PriceRow, error) {
	if rows, ok := s.cache.Get(date, area); ok {
		return rows, nil
	}

	var errs []error
	for _, p := range s.providers {
		rows, err := p.FetchDay(ctx, date, area)
		if err != nil {
			s.logger.Debug("provider fetch failed",
				slog.String("date", date.String()),
				slog.String("area", string(area)),
				slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		s.cache.Set(date, area, rows)
		return rows, nil
	}

	return nil, errors.Join(errs...)
}

// Snapshot runs the full pipeline for one query.
func (s *Service) Snapshot(ctx context.Context, q Query) (Snapshot, error) {
	raw, err := s.Day(ctx, q.Date, q.Area)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetching day %s for %s: %w", q.Date, q.Area, err)
	}

	rows := display.Normalize(raw, q.Options)
	return Snapshot{
		Query:     q,
		Raw:       raw,
		Sets:      rank.Rank(raw),
		Rows:      rows,
		Stats:     display.StatsOf(rows),
		FetchedAt: time.Now(),
	}, nil
}

// ClearCache drops all memoized days.
func (s *Service) ClearCache() {
	s.cache.Clear()
}
