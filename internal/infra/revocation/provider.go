package revocation

import (
	"context"
	"log/slog"

	"scribe/config"
	"scribe/internal/domain/lifecycle"
	"scribe/internal/domain/service"
	"scribe/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the registry selected by revocation.backend and ties its background work to the app lifecycle.
func New(params Params) (service.RevocationRegistry, error) {
	cfg := params.Config.Revocation
	if cfg == nil {
		return nil, errors.New("revocation config is missing")
	}

	switch cfg.Backend {
	case config.RevocationBackendMemory:
		return newMemoryBackend(params, cfg), nil
	case config.RevocationBackendRedis:
		return newRedisBackend(params, cfg), nil
	default:
		return nil, errors.Errorf("unknown revocation backend %q", cfg.Backend)
	}
}

func newMemoryBackend(params Params, cfg *config.RevocationConfig) service.RevocationRegistry {
	registry := NewMemoryRegistry()
	sweeper := NewSweeper(registry, cfg.SweepInterval, params.Logger)

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			params.Logger.Info("Revocation registry ready",
				slog.String("backend", config.RevocationBackendMemory),
				slog.Duration("sweepInterval", cfg.SweepInterval),
			)

			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()

			return nil
		},
	})

	return registry
}

func newRedisBackend(params Params, cfg *config.RevocationConfig) service.RevocationRegistry {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := rdb.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("Revocation registry ready",
				slog.String("backend", config.RevocationBackendRedis),
				slog.String("addr", cfg.Redis.Addr),
			)

			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return NewRedisRegistry(rdb, cfg.Redis.KeyPrefix, cfg.MinRetention)
}
