package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"familyfit/internal/app"
	"familyfit/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	ledger   *app.LedgerService
	charts   *app.ChartsService
	sync     *app.SyncService
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
	webDir   string
}

// New creates a Server wired to the given application services.
func New(ls *app.LedgerService, cs *app.ChartsService, ss *app.SyncService, webDir string) *Server {
	return &Server{ledger: ls, charts: cs, sync: ss, webDir: webDir}
}

// WithMetrics enables request instrumentation and exposes g on /metrics.
func (s *Server) WithMetrics(m *metrics.Manager, g prometheus.Gatherer) *Server {
	s.metrics = m
	s.gatherer = g
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/members", s.handleMembers).Methods(http.MethodGet)
	api.HandleFunc("/members/{member}/entries", s.handleEntriesList).Methods(http.MethodGet)
	api.HandleFunc("/members/{member}/entries", s.handleEntryAdd).Methods(http.MethodPost)
	api.HandleFunc("/members/{member}/entries/{id}", s.handleEntryDelete).Methods(http.MethodDelete)
	api.HandleFunc("/members/{member}/progress", s.handleProgress).Methods(http.MethodGet)

	api.HandleFunc("/charts/series", s.handleChartsSeries).Methods(http.MethodGet)

	api.HandleFunc("/sync/status", s.handleSyncStatus).Methods(http.MethodGet)
	api.HandleFunc("/sync/config", s.handleSyncConfigure).Methods(http.MethodPut)

	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})
	api.MethodNotAllowedHandler = methodNotAllowed
	r.MethodNotAllowedHandler = methodNotAllowed
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	// unknown /api paths must 404, not fall back to index.html
	r.PathPrefix("/").
		MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
			return req.URL.Path != "/api" && !strings.HasPrefix(req.URL.Path, "/api/")
		}).
		Handler(spaFromDisk(s.webDir)).
		Methods(http.MethodGet, http.MethodHead)

	r.Use(panicRecovery(s.metrics))
	r.Use(logRequest())
	r.Use(requestMetrics(s.metrics))
	r.Use(drainAndCloseRequest())

	return withNoCache(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Debug("graceful shutdown initiated ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Warnln("server shut down")
	return nil
}
