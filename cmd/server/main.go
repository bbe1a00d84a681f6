package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinite-experiment/airclock/internal/api"
	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/config"
	"infinite-experiment/airclock/internal/db"
	"infinite-experiment/airclock/internal/jobs"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
	"infinite-experiment/airclock/internal/routes"
	"infinite-experiment/airclock/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gormlib "gorm.io/gorm"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Airclock starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDirectory(cfg.Database)
	if err != nil {
		logging.Fatal("Failed to open airport directory", "driver", cfg.Database.Driver, "error", err.Error())
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate airport directory", "error", err.Error())
	}

	var redisClient *redis.Client
	if cfg.Cache.Backend == "redis" {
		client, err := common.NewRedisClient(cfg.Cache.Redis)
		if err != nil {
			logging.Warn("Redis unavailable, temporal caches stay in memory", "error", err.Error())
			_ = client.Close()
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, gormDB, redisClient, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}

	// sqlx handle for the Postgres health probe
	if cfg.Database.Driver == "postgres" {
		sqlxDB, err := db.InitPostgres(cfg.Database.PostgresDSN())
		if err != nil {
			logging.Warn("Postgres (sqlx) health probe unavailable", "error", err.Error())
		} else {
			defer sqlxDB.Close()
			deps.Health["postgres"] = api.PostgresHealthCheck(sqlxDB)
		}
	}

	directorySize, err := deps.Repo.Airports.Count(ctx)
	if err != nil {
		logging.Warn("Failed to count airports", "error", err.Error())
	}
	logging.Info("Airport directory ready", "airports", directorySize)

	syncJob := jobs.InitializeJobs(ctx, cfg.Airports, deps.Services.AirportLoader,
		deps.Services.Temporal.References(), directorySize, metricsReg)
	deps.Services.AirportSync = syncJob

	router := routes.RegisterRoutes(deps, cfg.HTTP, time.Now())

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.HTTP.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return syncJob.Start(gctx)
	})

	warmer := workers.NewCacheWarmer(deps.Services.Temporal, cfg.Cache.WarmAirports, cfg.Cache.WarmInterval)
	g.Go(func() error {
		return warmer.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		_ = logging.Close()
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

func openDirectory(cfg config.DatabaseConfig) (*gormlib.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return db.InitSQLiteORM(cfg.SQLitePath)
	default:
		return db.InitPostgresORM(cfg.PostgresDSN())
	}
}
