package www

import (
	"context"
	"crypto/rand"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/elkvart-go/config"
	"github.com/angas/elkvart-go/database"
	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
	"github.com/angas/elkvart-go/www/chartjs"
)

type Server struct {
	logger  *slog.Logger
	config  config.AppConfigApi
	area    types.Area
	service *dayahead.Service
	hub     *Hub
	tm      *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, service *dayahead.Service, area types.Area, cnfg *config.AppConfig, version string) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger:  logger,
		config:  cnfg.Api,
		area:    area,
		service: service,
		hub:     NewHub(logger),
		tm:      tm,
	}

	go s.hub.Run()

	selections := NewSelectionStore(sessionSecret(cnfg.Api))

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(cnfg.Api.WwwDir))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		service)))

	http.Handle("/side_panel", logReqMW(NewSidePanelHandler(
		logger.With(slog.String("handler", "side_panel")),
		service,
		selections,
		tm)))

	http.Handle("/cache/clear", logReqMW(NewCacheClearHandler(
		logger.With(slog.String("handler", "cache_clear")),
		service)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		db,
		tm)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	logger.Info("server configured", slog.String("version", version), slog.String("area", string(area)))

	return s
}

func sessionSecret(cnfg config.AppConfigApi) []byte {
	if cnfg.SessionSecret != nil && *cnfg.SessionSecret != "" {
		return []byte(*cnfg.SessionSecret)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Panic(err)
	}
	return secret
}

// BroadcastCurrent pushes the current-quarter fragment to all connected
// dashboards. Called from the run loop ticker and after background refreshes.
func (s *Server) BroadcastCurrent(ctx context.Context) {
	snap, err := s.service.Snapshot(ctx, dayahead.Query{Date: quarters.Today(), Area: s.area})
	if err != nil {
		s.hub.Broadcast <- []byte(fmt.Sprintf(`<span class="advisory">%s</span>`, advisoryNoData))
		return
	}

	now := time.Now()
	for _, row := range snap.Rows {
		start := row.Start.Time()
		if now.Before(start) || !now.Before(start.Add(15*time.Minute)) {
			continue
		}
		class := snap.Sets.ClassOf(row.Start)
		data := struct {
			Time       string
			Price      string
			ClassLabel string
			Color      string
		}{
			Time:       quarters.HHMM(row.LocalStart),
			Price:      snap.Query.Options.FormatPrice(row.Price),
			ClassLabel: class.Label(),
			Color:      chartjs.ColorOf(class),
		}
		buf, err := s.tm.Execute("current.html", data)
		if err != nil {
			s.logger.Error("template execution failed", slog.Any("error", err))
			return
		}
		s.hub.Broadcast <- buf.Bytes()
		return
	}
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			s.BroadcastCurrent(ctx)
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
