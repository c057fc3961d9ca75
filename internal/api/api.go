// Package api serves the catalog over HTTP for renderers and other
// consumers. Every response is JSON except /metrics.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stellar-forge/internal/catalog"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	RateLimit      RateLimitConfig
	Logger         *slog.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type API struct {
	catalog *catalog.Service
	router  *mux.Router
	handler http.Handler
	opts    Options
	logger  *slog.Logger
}

// NewAPI creates a new API server
func NewAPI(svc *catalog.Service, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	api := &API{
		catalog: svc,
		router:  mux.NewRouter(),
		opts:    opts,
		logger:  logger.With("component", "api"),
	}
	api.setupRoutes()

	limiter := NewRateLimiter(opts.RateLimit, api.logger)
	api.handler = newCORS(opts.AllowedOrigins).Handler(limiter.Middleware(api.router))
	return api
}

func (api *API) setupRoutes() {
	api.router.HandleFunc("/health", api.healthCheck).Methods("GET")
	api.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api.router.HandleFunc("/api/version", api.getVersion).Methods("GET")
	api.router.HandleFunc("/api/stats", api.getStats).Methods("GET")

	// Archetypes
	api.router.HandleFunc("/api/types", api.listTypes).Methods("GET")
	api.router.HandleFunc("/api/types/{class}", api.getType).Methods("GET")

	// Generation
	api.router.HandleFunc("/api/generate", api.generate).Methods("GET")

	// Archive
	api.router.HandleFunc("/api/systems", api.createSystem).Methods("POST")
	api.router.HandleFunc("/api/systems", api.listSystems).Methods("GET")
	api.router.HandleFunc("/api/systems/batch", api.createBatch).Methods("POST")
	api.router.HandleFunc("/api/systems/{id}", api.getSystem).Methods("GET")
	api.router.HandleFunc("/api/systems/{id}", api.deleteSystem).Methods("DELETE")
	api.router.HandleFunc("/api/systems/{id}/evolve", api.evolveSystem).Methods("POST")

	api.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
}

// Handler returns the full middleware chain.
func (api *API) Handler() http.Handler {
	return api.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (api *API) Start(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:         address,
		Handler:      api.handler,
		ReadTimeout:  api.opts.ReadTimeout,
		WriteTimeout: api.opts.WriteTimeout,
		IdleTimeout:  api.opts.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		api.logger.Info("Starting API server", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		api.logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
