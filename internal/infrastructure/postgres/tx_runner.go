package postgres

import (
	"context"
	"fmt"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
)

var _ repository.TxStorage = (*ClientStorageRepo)(nil)

// WithinTx ejecuta fn con un ClientStorage atado a una transacción y hace Commit o Rollback.
// Dentro de una transacción abierta fn corre sobre la misma.
func (r *ClientStorageRepo) WithinTx(ctx context.Context, fn func(repository.ClientStorage) error) error {
	if r.pool == nil {
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&ClientStorageRepo{db: tx, namespace: r.namespace}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
