package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/cache"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/postgres"
	"github.com/seva-empresas/seva-admin/pkg/config"
)

// Open construye el almacenamiento según STORAGE_DRIVER. closeFn libera conexiones y
// siempre es seguro llamarlo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.ClientStorage, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: la sesión no sobrevive a un reinicio")
		return NewMemory(), noop, nil
	case "file":
		f, err := NewFile(cfg.Storage.Path, cfg.Storage.Passphrase)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("path", cfg.Storage.Path).Bool("encrypted", cfg.Storage.Passphrase != "").Msg("almacenamiento en archivo")
		return f, noop, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		repo, err := postgres.NewClientStorageRepository(ctx, pool, cfg.Storage.Namespace)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Str("namespace", cfg.Storage.Namespace).Msg("almacenamiento en PostgreSQL")
		return repo, pool.Close, nil
	case "redis":
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("redis: %w", err)
		}
		log.Info().Str("namespace", cfg.Storage.Namespace).Msg("almacenamiento en Redis")
		return cache.NewRedisClientStorage(rdb, cfg.Storage.Namespace), func() { _ = rdb.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}
