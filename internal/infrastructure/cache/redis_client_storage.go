// Package cache implementa ClientStorage sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
)

var _ repository.ClientStorage = (*RedisClientStorage)(nil)

// NewRedis crea y valida la conexión a partir de una URL redis://.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválido: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisClientStorage guarda cada clave como un string bajo "seva:<namespace>:".
type RedisClientStorage struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisClientStorage construye el almacenamiento con un cliente existente.
func NewRedisClientStorage(client redis.Cmdable, namespace string) *RedisClientStorage {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisClientStorage{client: client, keyPrefix: "seva:" + namespace + ":"}
}

func (s *RedisClientStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisClientStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisClientStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.keyPrefix + k
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
