// Package deadline acota la latencia de una operación: devuelve su resultado o
// domain.ErrTimeout, lo que ocurra primero.
package deadline

import (
	"context"
	"errors"
	"time"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

// Run ejecuta fn con un contexto que vence en d. Si fn no termina a tiempo, Run
// retorna domain.ErrTimeout sin esperarla; el contexto cancelado le avisa que abandone.
// Con d <= 0 no hay límite.
func Run[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() != nil {
			return r.val, domain.ErrTimeout
		}
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, domain.ErrTimeout
		}
		return zero, ctx.Err()
	}
}

// Do es Run para operaciones sin resultado.
func Do(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	_, err := Run(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
