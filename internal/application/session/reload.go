package session

import (
	"context"
	"encoding/json"

	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/repository"
	"github.com/seva-empresas/seva-admin/pkg/deadline"
)

type loaded struct {
	user *entity.SessionUser
	app  entity.ProviderApplication
}

// ReloadUserProfile vuelve a pedir perfil y verificación con el token guardado, acotado por
// ReloadTimeout. Timeout o fallo de red conservan la sesión anterior y devuelven el error
// (domain.IsTransient). Un 401 explícito cierra la sesión y devuelve domain.ErrSessionExpired.
// Si mientras tanto empezó otra transición, el resultado se descarta.
func (c *Coordinator) ReloadUserProfile(ctx context.Context) error {
	c.mu.Lock()
	token := c.accessToken
	if token == "" {
		c.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	c.generation++
	gen := c.generation
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()
	c.publish()

	res, err := deadline.Run(ctx, c.reloadTimeout, func(ctx context.Context) (loaded, error) {
		user, app, err := c.loadSession(ctx, token)
		return loaded{user: user, app: app}, err
	})

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.log.Debug().Uint64("generation", gen).Msg("recarga obsoleta descartada")
		return nil
	}
	switch {
	case err == nil:
		c.setSessionLocked(res.user, res.app)
		c.loading = false
		c.mu.Unlock()
		c.publish()
		return nil
	case domain.IsUnauthorized(err):
		c.generation++
		c.clearLocked()
		c.lastErr = domain.ErrSessionExpired.Error()
		c.mu.Unlock()
		c.dropStoredTokens(ctx)
		c.publish()
		c.log.Info().Msg("token rechazado al recargar el perfil; sesión cerrada")
		return domain.ErrSessionExpired
	default:
		c.loading = false
		if !domain.IsTransient(err) {
			c.lastErr = domain.DetailOf(err)
		}
		c.mu.Unlock()
		c.publish()
		c.log.Warn().Err(err).Msg("recarga de perfil fallida; se conserva la sesión anterior")
		return err
	}
}

// loadSession pide el perfil (primario) y luego el estado de verificación (secundario).
func (c *Coordinator) loadSession(ctx context.Context, token string) (*entity.SessionUser, entity.ProviderApplication, error) {
	client := c.api.WithToken(token)
	profile, err := client.GetProfile(ctx)
	if err != nil {
		return nil, entity.ProviderApplication{}, err
	}
	user := MapProfile(profile)
	user.AccessToken = token
	return &user, c.verification(ctx, token, user.Email), nil
}

// verification nunca falla: ante un error usa el espejo local de esa cuenta, si no none.
// Si el backend aún reporta none pero el espejo tiene una solicitud pendiente, gana el espejo.
func (c *Coordinator) verification(ctx context.Context, token, email string) entity.ProviderApplication {
	status, err := c.api.WithToken(token).GetVerificationStatus(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("email", email).Msg("estado de verificación no disponible; se usa el espejo local")
		if app, ok := c.readMirror(ctx, email); ok {
			return app
		}
		return entity.EmptyApplication()
	}
	app := MapVerification(status)
	if app.Status == entity.ProviderStatusNone {
		if mirrored, ok := c.readMirror(ctx, email); ok && mirrored.Status == entity.ProviderStatusPending {
			return mirrored
		}
		return app
	}
	c.writeMirror(ctx, email, app)
	return app
}

func (c *Coordinator) readMirror(ctx context.Context, email string) (entity.ProviderApplication, bool) {
	if email == "" {
		return entity.ProviderApplication{}, false
	}
	if raw, ok, err := c.store.Get(ctx, repository.ProviderApplicationKey(email)); err == nil && ok {
		var app entity.ProviderApplication
		if err := json.Unmarshal([]byte(raw), &app); err == nil && app.Status != "" {
			if app.Documents == nil {
				app.Documents = map[string]entity.DocumentUpload{}
			}
			return app, true
		}
	}
	raw, ok, err := c.store.Get(ctx, repository.ProviderStatusKey(email))
	if err != nil || !ok {
		return entity.ProviderApplication{}, false
	}
	app := entity.EmptyApplication()
	app.Status = entity.ProviderStatus(raw)
	return app, true
}

// writeMirror guarda el último estado conocido de la cuenta; los fallos solo se registran.
func (c *Coordinator) writeMirror(ctx context.Context, email string, app entity.ProviderApplication) {
	if email == "" {
		return
	}
	raw, err := json.Marshal(app)
	if err != nil {
		c.log.Error().Err(err).Msg("codificar espejo de solicitud")
		return
	}
	if err := c.store.Set(ctx, repository.ProviderStatusKey(email), string(app.Status)); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar el espejo de estado")
		return
	}
	if err := c.store.Set(ctx, repository.ProviderApplicationKey(email), string(raw)); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar el espejo de solicitud")
	}
}
