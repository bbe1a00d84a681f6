package api

import (
	"context"
	"fmt"

	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/config"
	"infinite-experiment/airclock/internal/constants"
	"infinite-experiment/airclock/internal/db/repositories"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
	"infinite-experiment/airclock/internal/models/dtos"
	"infinite-experiment/airclock/internal/temporal"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AirportSyncer runs a dataset import on demand
type AirportSyncer interface {
	RunOnce(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error)
}

// HealthCheck pings one backing service and returns a short detail line
type HealthCheck func(ctx context.Context) (string, error)

type Repositories struct {
	Airports *repositories.AirportRepository
}

type Services struct {
	Temporal      *temporal.Assembler
	AirportLoader *common.AirportLoaderService
	AirportSync   AirportSyncer
}

type Dependencies struct {
	Repo         *Repositories
	Services     *Services
	Health       map[string]HealthCheck
	CacheBackend string
	AdminSecret  []byte
	Metrics      *metrics.MetricsRegistry
}

// InitDependencies wires the temporal authority over the airport directory.
// redisClient may be nil; the memory backend is used then.
func InitDependencies(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	airportRepo := repositories.NewAirportRepository(gormDB)

	algorithm, err := temporal.NewSolarAlgorithm(cfg.Solar.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to configure solar engine: %w", err)
	}

	backend := cfg.Cache.Backend
	var (
		refStore   common.Store[temporal.ReferenceEntry]
		solarStore common.Store[temporal.SolarSnapshot]
	)
	if backend == "redis" && redisClient != nil {
		prefix := cfg.Cache.Redis.KeyPrefix
		refStore = common.NewRedisStore[temporal.ReferenceEntry](redisClient, prefix+constants.CacheNamespaceReference)
		solarStore = common.NewRedisStore[temporal.SolarSnapshot](redisClient, prefix+constants.CacheNamespaceSolar)
	} else {
		if backend == "redis" {
			logging.Warn("Redis unavailable, falling back to in-memory caches")
		}
		backend = "memory"
		refStore = common.NewMemoryStore[temporal.ReferenceEntry]()
		solarStore = common.NewMemoryStore[temporal.SolarSnapshot]()
	}

	clock := common.SystemClock{}

	refs := temporal.NewReferenceCache(airportRepo, refStore, clock, cfg.Cache.ReferenceTTL)
	resolver := temporal.NewResolver(temporal.CoordinateZoneFinder{})
	solar := temporal.NewSolarEngine(algorithm, solarStore, clock, cfg.Cache.SolarTTL)
	assembler := temporal.NewAssembler(refs, resolver, solar, clock)

	if metricsReg != nil {
		refs.SetMetrics(metricsReg)
		resolver.SetMetrics(metricsReg)
		solar.SetMetrics(metricsReg)
		assembler.SetMetrics(metricsReg)
	}

	health := map[string]HealthCheck{
		"database": func(ctx context.Context) (string, error) {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return "", err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s connected", gormDB.Dialector.Name()), nil
		},
	}
	if redisClient != nil {
		health["redis"] = func(ctx context.Context) (string, error) {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return "", err
			}
			return "Redis connected", nil
		}
	}

	logging.Info("Temporal authority initialized",
		"cache_backend", backend,
		"solar_algorithm", algorithm.Name(),
		"reference_ttl", cfg.Cache.ReferenceTTL.String(),
		"solar_ttl", cfg.Cache.SolarTTL.String(),
	)

	return &Dependencies{
		Repo: &Repositories{
			Airports: airportRepo,
		},
		Services: &Services{
			Temporal:      assembler,
			AirportLoader: common.NewAirportLoaderService(airportRepo),
		},
		Health:       health,
		CacheBackend: backend,
		AdminSecret:  []byte(cfg.Auth.AdminJWTSecret),
		Metrics:      metricsReg,
	}, nil
}
