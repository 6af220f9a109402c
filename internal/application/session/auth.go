package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/password"
	"github.com/seva-empresas/seva-admin/internal/domain/repository"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
	"github.com/seva-empresas/seva-admin/pkg/jwt"
)

// expirySkew margen con el que un token a punto de vencer se trata como vencido al restaurar.
const expirySkew = 30 * time.Second

// Login autentica, persiste los tokens, carga perfil y verificación y publica la sesión.
func (c *Coordinator) Login(ctx context.Context, in dto.LoginRequest) (*entity.SessionUser, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	gen := c.begin()

	resp, err := c.api.Login(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		err = translateLoginError(err)
		c.fail(gen, domain.DetailOf(err))
		return nil, err
	}
	if !resp.HasTokens() {
		err := domain.NewAPIError(http.StatusBadGateway, "El servidor no devolvió un token de acceso")
		c.fail(gen, err.Detail)
		return nil, err
	}
	if err := c.persistTokens(ctx, resp.AccessToken, resp.RefreshToken, c.current(gen)); err != nil {
		c.fail(gen, domain.DetailOf(err))
		return nil, err
	}

	user, app, err := c.loadSession(ctx, resp.AccessToken)

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.superseded(ctx, gen, resp.AccessToken)
		return nil, domain.ErrSuperseded
	}
	if err != nil {
		c.clearLocked()
		c.lastErr = domain.DetailOf(err)
		c.mu.Unlock()
		c.dropStoredTokensIf(ctx, resp.AccessToken)
		c.publish()
		return nil, err
	}
	c.setSessionLocked(user, app)
	c.loading = false
	c.mu.Unlock()
	c.publish()
	c.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("sesión iniciada")
	return c.Snapshot().User, nil
}

// translateLoginError distingue la cuenta inactiva del resto de fallos.
func translateLoginError(err error) error {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return err
	}
	if strings.Contains(strings.ToLower(apiErr.Detail), "inactiv") {
		return domain.ErrAccountInactive
	}
	return err
}

// RegisterOutcome resultado del alta. Sin tokens del backend no hay sesión y se espera
// la confirmación por correo.
type RegisterOutcome struct {
	User                 *entity.SessionUser
	ConfirmationRequired bool
}

// Register valida la contraseña antes de cualquier llamada de red, luego el resto de campos.
func (c *Coordinator) Register(ctx context.Context, in dto.RegisterRequest) (*RegisterOutcome, error) {
	if err := password.Validate(in.Password); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	gen := c.begin()

	resp, err := c.api.Signup(ctx, api.SignupRequest{
		Email:       strings.TrimSpace(in.Email),
		Password:    in.Password,
		Name:        strings.TrimSpace(in.Name),
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		TaxID:       in.TaxID,
	})
	if err != nil {
		c.fail(gen, domain.DetailOf(err))
		return nil, err
	}
	if !resp.HasTokens() {
		c.fail(gen, "")
		c.log.Info().Str("email", in.Email).Msg("registro pendiente de confirmación")
		return &RegisterOutcome{ConfirmationRequired: true}, nil
	}
	if err := c.persistTokens(ctx, resp.AccessToken, resp.RefreshToken, c.current(gen)); err != nil {
		c.fail(gen, domain.DetailOf(err))
		return nil, err
	}

	profile := resp.User
	if profile == nil {
		profile, err = c.api.WithToken(resp.AccessToken).GetProfile(ctx)
		if err != nil {
			// La cuenta existe; sin perfil se usa lo que el usuario ingresó.
			c.log.Warn().Err(err).Msg("perfil no disponible tras el registro")
			profile = &api.Profile{Email: in.Email, NombrePersona: in.Name, CompanyName: in.CompanyName, TaxID: in.TaxID}
		}
	}
	user := MapProfile(profile)

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.superseded(ctx, gen, resp.AccessToken)
		return nil, domain.ErrSuperseded
	}
	c.setSessionLocked(&user, entity.EmptyApplication())
	c.loading = false
	c.mu.Unlock()
	c.publish()
	return &RegisterOutcome{User: c.Snapshot().User}, nil
}

// Logout nunca falla y es idempotente: siempre termina sin sesión.
// El estado local se cierra primero: cualquier transición en curso queda obsoleta.
func (c *Coordinator) Logout(ctx context.Context) {
	c.mu.Lock()
	token := c.accessToken
	c.generation++
	c.clearLocked()
	c.lastErr = ""
	c.mu.Unlock()
	c.publish()

	if token != "" {
		if err := c.api.WithToken(token).Logout(ctx); err != nil {
			c.log.Debug().Err(err).Msg("logout remoto falló; se cierra la sesión local igualmente")
		}
	}
	c.dropStoredTokens(ctx)
}

// RefreshAccessToken renueva el access token con el refresh token guardado. Las llamadas
// concurrentes comparten una sola solicitud al backend. Si el backend rechaza el refresh
// la sesión se cierra.
func (c *Coordinator) RefreshAccessToken(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *Coordinator) refresh(ctx context.Context) error {
	c.mu.RLock()
	rt := c.refreshToken
	c.mu.RUnlock()
	if rt == "" {
		return domain.ErrSessionExpired
	}

	resp, err := c.api.Refresh(ctx, rt)
	if err != nil {
		if !domain.IsTransient(err) {
			c.log.Warn().Err(err).Msg("refresh rechazado; se cierra la sesión")
			c.expire(ctx)
		}
		return err
	}
	if !resp.HasTokens() {
		c.expire(ctx)
		return domain.ErrSessionExpired
	}
	next := resp.RefreshToken
	if next == "" {
		next = rt
	}
	sameSession := func() bool { return c.refreshToken == rt }
	if err := c.persistTokens(ctx, resp.AccessToken, next, sameSession); err != nil {
		return err
	}
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.publish()
	c.log.Debug().Msg("access token renovado")
	return nil
}

// Restore recupera la sesión persistida al arrancar. Si el access token venció y hay
// refresh token, renueva antes de pedir el perfil. Solo falla si el almacenamiento falla.
func (c *Coordinator) Restore(ctx context.Context) error {
	access, ok, err := c.store.Get(ctx, repository.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("leer access token: %w", err)
	}
	if !ok || access == "" {
		return nil
	}
	refresh, _, err := c.store.Get(ctx, repository.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("leer refresh token: %w", err)
	}
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()

	expired, err := jwt.ExpiresWithin(access, expirySkew, c.now())
	if err != nil {
		c.log.Debug().Err(err).Msg("access token no es un JWT legible; se valida contra el backend")
	}
	if expired {
		if refresh == "" {
			c.log.Info().Msg("token persistido vencido y sin refresh token")
			c.expire(ctx)
			return nil
		}
		if err := c.RefreshAccessToken(ctx); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo renovar el token persistido")
			if !domain.IsTransient(err) {
				return nil
			}
		}
	}

	if err := c.ReloadUserProfile(ctx); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil
		}
		c.log.Warn().Err(err).Msg("no se pudo restaurar el perfil; se reintentará con la próxima recarga")
	}
	return nil
}

// RequestPasswordReset pide al backend el correo de recuperación.
func (c *Coordinator) RequestPasswordReset(ctx context.Context, in dto.PasswordResetRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	return c.api.RequestPasswordReset(ctx, strings.TrimSpace(in.Email))
}
