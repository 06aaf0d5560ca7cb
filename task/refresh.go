package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/elprisetjustnu"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

// NewRefreshTask returns the periodic refresh: it re-fetches today and
// tomorrow for the configured area (bypassing stale cache entries only when
// expired), announces the current quarter, and signals listeners so connected
// dashboards re-render.
func NewRefreshTask(
	logger *slog.Logger,
	service *dayahead.Service,
	area types.Area,
	announce func(dayahead.Snapshot) error,
	onRefresh func(),
) func() {
	return func() {
		logger.Debug("running refresh task...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		snap, err := service.Snapshot(ctx, dayahead.Query{Date: quarters.Today(), Area: area})
		if err != nil {
			logger.Error("refreshing today's prices", slog.Any("error", err))
			return
		}

		if _, err := service.Day(ctx, quarters.Tomorrow(), area); err != nil {
			// Tomorrow is routinely missing before ~13:00, only log the unexpected.
			if errors.Is(err, elprisetjustnu.ErrNotPublished) {
				logger.Debug("tomorrow's prices not published yet")
			} else {
				logger.Warn("refreshing tomorrow's prices", slog.Any("error", err))
			}
		}

		if announce != nil {
			if err := announce(snap); err != nil {
				logger.Warn("announcing current quarter", slog.Any("error", err))
			}
		}

		if onRefresh != nil {
			onRefresh()
		}

		logger.Info("refresh task done", slog.Int("quarters", len(snap.Rows)))
	}
}
