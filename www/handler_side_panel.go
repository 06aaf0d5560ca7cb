package www

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/elprisetjustnu"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/www/chartjs"
)

type selectionDetail struct {
	Time       string
	Price      string
	ClassLabel string
	Color      string
}

type sidePanelData struct {
	Advisory string
	Count    int
	MaxPrice string
	MinPrice string
	Selected *selectionDetail
}

// NewSidePanelHandler serves the stats/detail fragment. GET renders it for
// the current query; POST records a bar click (form value "index") first.
// A selection made against another day, area or row count is treated as no
// selection and dropped from the session.
func NewSidePanelHandler(logger *slog.Logger, service *dayahead.Service, selections *SelectionStore, tm *TemplateManager) http.HandlerFunc {
	render := func(w http.ResponseWriter, data sidePanelData) {
		w.Header().Set("Content-Type", "text/html")
		if err := tm.ExecuteToWriter("side_panel.html", data, &w); err != nil {
			logger.Error("handling side panel request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
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
			logger.Warn("handling side panel request", slog.Any("error", err))
			if errors.Is(err, elprisetjustnu.ErrNotPublished) {
				render(w, sidePanelData{Advisory: advisoryNoData})
			} else {
				http.Error(w, advisoryNoData, http.StatusBadGateway)
			}
			return
		}

		if r.Method == http.MethodPost {
			idx, err := strconv.Atoi(r.PostFormValue("index"))
			if err != nil || idx < 0 || idx >= len(snap.Rows) {
				http.Error(w, "bad selection index", http.StatusBadRequest)
				return
			}
			sel := Selection{Index: idx, Fingerprint: snap.Fingerprint()}
			if err := selections.Save(w, r, sel); err != nil {
				logger.Error("saving selection", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		data := sidePanelData{
			Count:    snap.Stats.Count,
			MaxPrice: q.Options.FormatPrice(snap.Stats.MaxPrice),
			MinPrice: q.Options.FormatPrice(snap.Stats.MinPrice),
		}

		if sel, ok := selections.Get(r); ok {
			if sel.ValidFor(snap) {
				row := snap.Rows[sel.Index]
				class := snap.Sets.ClassOf(row.Start)
				data.Selected = &selectionDetail{
					Time:       quarters.HHMM(row.LocalStart),
					Price:      q.Options.FormatPrice(row.Price),
					ClassLabel: class.Label(),
					Color:      chartjs.ColorOf(class),
				}
			} else if r.Method == http.MethodGet {
				// Stale selection from another row set, drop it.
				if err := selections.Clear(w, r); err != nil {
					logger.Debug("clearing stale selection", slog.Any("error", err))
				}
			}
		}

		render(w, data)
	}
}
