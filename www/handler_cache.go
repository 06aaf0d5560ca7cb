package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/elkvart-go/dayahead"
)

// NewCacheClearHandler backs the dashboard's "clear cache" control.
func NewCacheClearHandler(logger *slog.Logger, service *dayahead.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		service.ClearCache()
		logger.Info("price cache cleared by user")
		w.WriteHeader(http.StatusNoContent)
	}
}
