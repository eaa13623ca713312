package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hermes-payment-tracker/config"
	httpHandler "hermes-payment-tracker/internal/adapter/http/handler"
	"hermes-payment-tracker/internal/adapter/http/middleware"
	"hermes-payment-tracker/internal/adapter/metrics"
	"hermes-payment-tracker/internal/adapter/storage"
	"hermes-payment-tracker/internal/adapter/storage/memory"
	pgStorage "hermes-payment-tracker/internal/adapter/storage/postgres"
	redisStorage "hermes-payment-tracker/internal/adapter/storage/redis"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/internal/service"
	"hermes-payment-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sweepInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Hermes payment tracker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracker backend: Redis when reachable, in-memory otherwise.
	rdb := redisStorage.NewClient(cfg.Redis)
	defer rdb.Close()

	selection := storage.NewPaymentTracker(ctx, rdb, cfg.Redis, cfg.Tracker, log)

	collectors := metrics.NewCollectors(prometheus.DefaultRegisterer)
	collectors.SetDurable(selection.Durable)

	backend := metrics.BackendRedis
	var checkers []ports.HealthChecker
	if selection.Durable {
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		backend = metrics.BackendMemory
		if mem, ok := selection.Tracker.(*memory.PaymentTracker); ok {
			go mem.RunSweeper(ctx, sweepInterval)
		}
	}
	tracker := collectors.InstrumentTracker(selection.Tracker, backend)

	// Optional PostgreSQL archive for records past their retention.
	var archive ports.PaymentArchive
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err == nil {
			err = pgStorage.EnsureSchema(ctx, pool)
			if err != nil {
				pool.Close()
			}
		}
		if err != nil {
			log.Warn().Err(err).Msg("Payment archive disabled: PostgreSQL unavailable")
		} else {
			defer pool.Close()
			archive = pgStorage.NewPaymentArchiveRepo(pool)
			checkers = append(checkers, pgStorage.NewHealthCheck(pool))
			log.Info().Msg("PostgreSQL archive connected")
		}
	}

	paymentSvc := service.NewPaymentService(tracker, archive, log.With().Str("component", "payment_service").Logger())

	// Rate limiting shares the tracker's Redis, so it only runs in durable mode.
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.RateLimit.Enabled && selection.Durable {
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		RateLimitStore: rateLimitStore,
		RateLimit:      middleware.RuleFromConfig(cfg.RateLimit),
		HealthCheckers: checkers,
		Durable:        selection.Durable,
		MetricsHandler: promhttp.Handler(),
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	paymentSvc.Wait()

	log.Info().Msg("Server exited")
}
