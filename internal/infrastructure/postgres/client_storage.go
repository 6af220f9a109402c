package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
)

var _ repository.ClientStorage = (*ClientStorageRepo)(nil)

// querier es lo que usan las consultas; lo cumplen *pgxpool.Pool y pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// ClientStorageRepo implementación de ClientStorage sobre PostgreSQL.
// Namespace separa instalaciones de la consola que comparten la base.
type ClientStorageRepo struct {
	db        querier
	pool      *pgxpool.Pool // nil dentro de una transacción
	namespace string
}

// NewClientStorageRepository construye el adaptador y crea la tabla si no existe.
func NewClientStorageRepository(ctx context.Context, pool *pgxpool.Pool, namespace string) (*ClientStorageRepo, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("crear tabla client_storage: %w", err)
	}
	return &ClientStorageRepo{db: pool, pool: pool, namespace: namespace}, nil
}

func (r *ClientStorageRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`,
		r.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *ClientStorageRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		r.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *ClientStorageRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = ANY($2)`,
		r.namespace, keys,
	)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
