package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/cache"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	viewCache := initCache(cfg, logger)

	eventBus := events.NewEventBus()
	subscribeAudit(eventBus, logger)

	userService := service.NewUserService(db, logger)
	itemService := service.NewItemService(db, viewCache, eventBus, logger)
	bookingService := service.NewBookingService(db, eventBus, logger)
	requestService := service.NewRequestService(db, logger)
	commentService := service.NewCommentService(db, eventBus, logger)

	httpServer := api.NewHTTPServer(cfg.Server, cfg.Pagination,
		userService, itemService, bookingService, requestService, commentService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetricsServer(ctx, cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func initCache(cfg *config.Config, logger *zerolog.Logger) domain.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
	client := cache.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable at startup, failover will serve from memory")
	}

	primary := cache.NewRedisCache(client, ttl)
	fallback := cache.NewMemoryCache(ttl)
	return cache.NewFailoverCache(primary, fallback, logger)
}

func subscribeAudit(bus *events.EventBus, logger *zerolog.Logger) {
	audit := func(event *events.Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
		events.EventCommentAdded,
		events.EventItemCreated,
	} {
		bus.Subscribe(eventType, audit)
	}

	bus.Subscribe(events.EventBookingCreated, func(*events.Event) error {
		metrics.IncBooking("created")
		return nil
	})
	bus.Subscribe(events.EventBookingApproved, func(*events.Event) error {
		metrics.IncBooking("approved")
		return nil
	})
	bus.Subscribe(events.EventBookingRejected, func(*events.Event) error {
		metrics.IncBooking("rejected")
		return nil
	})
	bus.Subscribe(events.EventCommentAdded, func(*events.Event) error {
		metrics.IncComment()
		return nil
	})
}

func startMetricsServer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
