package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the ShareIt REST API.
type HTTPServer struct {
	cfg      config.ServerConfig
	pageSize int
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	comments *service.CommentService
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	pagination config.PaginationConfig,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	comments *service.CommentService,
	logger *zerolog.Logger,
) *HTTPServer {
	pageSize := pagination.DefaultSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	srv := &HTTPServer{
		cfg:      cfg,
		pageSize: pageSize,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		comments: comments,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", srv.handleCreateUser)
		r.Get("/", srv.handleListUsers)
		r.Get("/{id}", srv.handleGetUser)
		r.Patch("/{id}", srv.handleUpdateUser)
		r.Delete("/{id}", srv.handleDeleteUser)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", srv.handleCreateItem)
		r.Get("/", srv.handleListItems)
		r.Get("/search", srv.handleSearchItems)
		r.Get("/{id}", srv.handleGetItem)
		r.Patch("/{id}", srv.handleUpdateItem)
		r.Post("/{id}/comment", srv.handleAddComment)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", srv.handleCreateBooking)
		r.Get("/", srv.handleListBookingsForBooker)
		r.Get("/owner", srv.handleListBookingsForOwner)
		r.Get("/owner/export", srv.handleExportOwnerBookings)
		r.Get("/{id}", srv.handleGetBooking)
		r.Patch("/{id}", srv.handleApproveBooking)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", srv.handleCreateRequest)
		r.Get("/", srv.handleListOwnRequests)
		r.Get("/all", srv.handleListAllRequests)
		r.Get("/{id}", srv.handleGetRequest)
	})

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	return srv
}

// Handler exposes the router for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
