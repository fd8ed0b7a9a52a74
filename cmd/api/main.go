package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/wosler/kiosk-api/internal/config"
	"github.com/wosler/kiosk-api/internal/handler"
	bookingHandler "github.com/wosler/kiosk-api/internal/handler/booking"
	checkinHandler "github.com/wosler/kiosk-api/internal/handler/checkin"
	"github.com/wosler/kiosk-api/internal/middleware"
	"github.com/wosler/kiosk-api/internal/repository"
	"github.com/wosler/kiosk-api/internal/repository/fixture"
	"github.com/wosler/kiosk-api/internal/repository/postgres"
	"github.com/wosler/kiosk-api/internal/router"
	checkinService "github.com/wosler/kiosk-api/internal/service/checkin"
	directoryService "github.com/wosler/kiosk-api/internal/service/directory"
	"github.com/wosler/kiosk-api/pkg/logger"
	"github.com/wosler/kiosk-api/pkg/messaging"
	redisBroker "github.com/wosler/kiosk-api/pkg/messaging/redis"
	"github.com/wosler/kiosk-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      cfg.Log.Level,
		Console:    cfg.Log.Console,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	appLogger.SetGlobal()

	// Initialize repositories
	var (
		bookingRepo repository.BookingRepository
		checkinRepo repository.CheckInRepository
		ready       func() error
	)
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			appLogger.Fatal(err, "failed to connect to database")
		}
		defer db.Close()
		bookingRepo = postgres.NewBookingRepository(db)
		checkinRepo = postgres.NewCheckInRepository(db)
		ready = db.Ping
	case config.StoreFixture:
		bookingRepo = fixture.NewBookingRepository()
		checkinRepo = fixture.NewCheckInRepository()
	default:
		appLogger.Fatal(fmt.Errorf("unknown store backend %q", cfg.Store.Backend), "invalid configuration")
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	appMetrics := metrics.New("kiosk")
	appMetrics.Register(registry)

	// Initialize message broker
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, appLogger.Zerolog())
		if err != nil {
			appLogger.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	// Initialize services
	directorySvc := directoryService.NewService(bookingRepo, directoryService.Config{
		SimulatedDelay: cfg.Lookup.SimulatedDelay,
		CacheTTL:       cfg.Lookup.CacheTTL,
		CacheCleanup:   cfg.Lookup.CacheCleanup,
	}, appMetrics)
	checkinSvc := checkinService.NewService(bookingRepo, checkinRepo, broker, checkinService.Config{
		SimulatedDelay: cfg.CheckIn.SimulatedDelay,
	}, appMetrics)

	// Initialize handlers
	h := handler.NewHandler(registry, ready)
	bookingH := bookingHandler.NewHandler(directorySvc)
	checkinH := checkinHandler.NewHandler(checkinSvc)

	// Setup router
	r := router.NewRouter(bookingH, checkinH, h, registry, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORS:           middleware.DefaultCORSConfig(),
		MetricsPrefix:  "kiosk_http",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal(err, "server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
