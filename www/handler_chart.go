package www

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/elprisetjustnu"
	"github.com/angas/elkvart-go/www/chartjs"
)

// Shown whenever a day cannot be rendered, regardless of the failure reason.
// The reason itself is logged.
const advisoryNoData = "Data missing or not yet published. Tomorrow's prices normally appear around 13:00 local time."

func NewChartHandler(logger *slog.Logger, service *dayahead.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q, err := queryFromURL(r.URL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		snap, err := service.Snapshot(r.Context(), q)
		if err != nil {
			logger.Warn("handling chart request", slog.Any("error", err))
			if errors.Is(err, elprisetjustnu.ErrNotPublished) {
				http.Error(w, advisoryNoData, http.StatusNotFound)
			} else {
				http.Error(w, advisoryNoData, http.StatusBadGateway)
			}
			return
		}

		title := fmt.Sprintf("%s – quarter prices %s", q.Area, q.Date)
		chart := chartjs.NewPriceChart(snap.Rows, snap.Sets, q.Options.UnitLabel(), title)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(chart); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode chart", http.StatusInternalServerError)
		}
	}
}
