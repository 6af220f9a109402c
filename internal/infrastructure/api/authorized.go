package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

// TokenRefresher fuente del token vigente con la capacidad de renovarlo.
// La implementa el coordinador de sesión.
type TokenRefresher interface {
	AccessToken() string
	RefreshAccessToken(ctx context.Context) error
}

// Sender emite una solicitud ya preparada con el token indicado.
type Sender func(ctx context.Context, token string) (*Response, error)

// Authorized envuelve una solicitud con la semántica 401 -> refresh -> un reintento.
type Authorized struct {
	Tokens TokenRefresher
	Log    zerolog.Logger
}

// Do emite con el token actual. Ante un 401 refresca exactamente una vez: si el refresh
// falla devuelve domain.ErrSessionExpired sin una tercera solicitud; si funciona reemite
// una vez y devuelve ese resultado tal cual, incluso un segundo 401.
func (a *Authorized) Do(ctx context.Context, send Sender) (*Response, error) {
	resp, err := send(ctx, a.Tokens.AccessToken())
	if !domain.IsUnauthorized(err) {
		return resp, err
	}
	if rerr := a.Tokens.RefreshAccessToken(ctx); rerr != nil {
		a.Log.Warn().Err(rerr).Msg("no se pudo renovar el token tras un 401")
		return nil, domain.ErrSessionExpired
	}
	return send(ctx, a.Tokens.AccessToken())
}
