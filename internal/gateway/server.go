package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server is the edge gateway: it rejects malformed requests locally and
// relays everything else to the backend untouched.
type Server struct {
	cfg     config.GatewayConfig
	relay   *RelayClient
	limiter *callerLimiter
	logger  *zerolog.Logger
	server  *http.Server
}

func NewServer(cfg config.GatewayConfig, logger *zerolog.Logger) *Server {
	relay := NewRelayClient(cfg.BackendURL, time.Duration(cfg.RequestTimeoutSec)*time.Second, logger)

	srv := &Server{
		cfg:     cfg,
		relay:   relay,
		limiter: newCallerLimiter(cfg.RateLimit),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(srv.rateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", srv.handleCreateUser)
		r.Get("/", srv.passThrough)
		r.Get("/{id}", srv.requireID)
		r.Patch("/{id}", srv.handlePatchUser)
		r.Delete("/{id}", srv.requireID)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", srv.handleCreateItem)
		r.Get("/", srv.requireCallerAndPage)
		r.Get("/search", srv.requirePage)
		r.Get("/{id}", srv.requireCallerAndID)
		r.Patch("/{id}", srv.requireCallerAndID)
		r.Post("/{id}/comment", srv.handleAddComment)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", srv.handleCreateBooking)
		r.Get("/", srv.handleListBookings)
		r.Get("/owner", srv.handleListBookings)
		r.Get("/owner/export", srv.requireCallerAndPage)
		r.Get("/{id}", srv.requireCallerAndID)
		r.Patch("/{id}", srv.handleApproveBooking)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", srv.handleCreateRequest)
		r.Get("/", srv.requireCaller)
		r.Get("/all", srv.requireCallerAndPage)
		r.Get("/{id}", srv.requireCallerAndID)
	})

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("backend", s.cfg.BackendURL).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
