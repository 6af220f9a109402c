// Package session es la única autoridad sobre el ciclo de vida de la sesión y el
// onboarding de proveedor. Todas las lecturas del token pasan por Coordinator.AccessToken.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/repository"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// Snapshot vista inmutable del estado publicado a los suscriptores.
type Snapshot struct {
	User                *entity.SessionUser
	ProviderStatus      entity.ProviderStatus
	ProviderApplication entity.ProviderApplication
	IsLoading           bool
	Error               string
}

// Authenticated indica si hay un usuario en sesión.
func (s Snapshot) Authenticated() bool { return s.User != nil }

// Config tiempos y reloj del coordinador.
type Config struct {
	ReloadTimeout time.Duration
	Now           func() time.Time // por defecto time.Now
}

// Coordinator dueño del estado de sesión. Seguro para uso concurrente.
// Los suscriptores no deben invocar operaciones del coordinador desde su callback.
type Coordinator struct {
	api           *api.Client
	store         repository.ClientStorage
	log           zerolog.Logger
	reloadTimeout time.Duration
	now           func() time.Time

	mu           sync.RWMutex
	user         *entity.SessionUser
	application  entity.ProviderApplication
	loading      bool
	lastErr      string
	accessToken  string
	refreshToken string
	generation   uint64

	pubMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	refreshGroup singleflight.Group
}

// NewCoordinator construye el coordinador en estado sin sesión. client debe ser el
// cliente sin refresh automático: un 401 en la recarga cierra la sesión en lugar de reintentar.
func NewCoordinator(client *api.Client, store repository.ClientStorage, cfg Config, log zerolog.Logger) *Coordinator {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	timeout := cfg.ReloadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Coordinator{
		api:           client,
		store:         store,
		log:           log.With().Str("component", "session").Logger(),
		reloadTimeout: timeout,
		now:           now,
		application:   entity.EmptyApplication(),
		subs:          make(map[int]func(Snapshot)),
	}
}

// AccessToken token vigente; vacío sin sesión.
func (c *Coordinator) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// Snapshot copia profunda del estado actual.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Snapshot{
		ProviderStatus:      c.application.Status,
		ProviderApplication: c.application.Clone(),
		IsLoading:           c.loading,
		Error:               c.lastErr,
	}
	if c.user != nil {
		u := *c.user
		u.ProviderApplication = c.application.Clone()
		s.User = &u
	}
	return s
}

// Subscribe registra fn y la invoca en cada transición. Devuelve la función para darse de baja.
func (c *Coordinator) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.pubMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.pubMu.Unlock()
	return func() {
		c.pubMu.Lock()
		delete(c.subs, id)
		c.pubMu.Unlock()
	}
}

func (c *Coordinator) publish() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if len(c.subs) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.subs {
		fn(snap)
	}
}

// begin abre una transición: incrementa la generación y marca carga. Devuelve la generación.
func (c *Coordinator) begin() uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()
	c.publish()
	return gen
}

// fail cierra una transición fallida conservando la sesión actual.
func (c *Coordinator) fail(gen uint64, detail string) {
	c.mu.Lock()
	if c.generation == gen {
		c.loading = false
		c.lastErr = detail
	}
	c.mu.Unlock()
	c.publish()
}

// setSessionLocked único setter de usuario y solicitud: mantiene
// ProviderStatus == ProviderApplication.Status también dentro del usuario.
func (c *Coordinator) setSessionLocked(user *entity.SessionUser, app entity.ProviderApplication) {
	if app.Documents == nil {
		app.Documents = map[string]entity.DocumentUpload{}
	}
	c.application = app.Clone()
	if user == nil {
		c.user = nil
		return
	}
	u := *user
	u.AccessToken = c.accessToken
	u.ProviderStatus = app.Status
	u.ProviderApplication = app.Clone()
	c.user = &u
}

// clearLocked vuelve al estado sin sesión.
func (c *Coordinator) clearLocked() {
	c.accessToken = ""
	c.refreshToken = ""
	c.setSessionLocked(nil, entity.EmptyApplication())
	c.loading = false
}

// current devuelve la condición "nadie empezó otra transición después de gen"; se evalúa con c.mu tomado.
func (c *Coordinator) current(gen uint64) func() bool {
	return func() bool { return c.generation == gen }
}

// superseded descarta el resultado de una transición reemplazada. Si los tokens que persistió
// ya no están en memoria (logout u otro login), se retiran también del almacenamiento.
func (c *Coordinator) superseded(ctx context.Context, gen uint64, access string) {
	c.mu.RLock()
	inUse := c.accessToken == access
	c.mu.RUnlock()
	if !inUse {
		c.dropStoredTokensIf(ctx, access)
	}
	c.log.Info().Uint64("generation", gen).Msg("resultado descartado: empezó una transición posterior")
}

// persistTokens escribe los tokens en el almacenamiento y, solo si eso funciona y still
// sigue siendo cierta bajo c.mu, en memoria. Si still dejó de cumplirse, los tokens recién
// escritos se retiran y devuelve domain.ErrSuperseded. Un refresh vacío borra el anterior.
func (c *Coordinator) persistTokens(ctx context.Context, access, refresh string, still func() bool) error {
	write := func(s repository.ClientStorage) error {
		if err := s.Set(ctx, repository.KeyAccessToken, access); err != nil {
			return fmt.Errorf("guardar access token: %w", err)
		}
		if refresh != "" {
			if err := s.Set(ctx, repository.KeyRefreshToken, refresh); err != nil {
				return fmt.Errorf("guardar refresh token: %w", err)
			}
		} else if err := s.Delete(ctx, repository.KeyRefreshToken); err != nil {
			return fmt.Errorf("borrar refresh token: %w", err)
		}
		return nil
	}
	var err error
	if tx, ok := c.store.(repository.TxStorage); ok {
		err = tx.WithinTx(ctx, write)
	} else {
		err = write(c.store)
	}
	if err != nil {
		return err
	}
	c.mu.Lock()
	if still != nil && !still() {
		c.mu.Unlock()
		c.dropStoredTokensIf(ctx, access)
		return domain.ErrSuperseded
	}
	c.accessToken = access
	c.refreshToken = refresh
	if c.user != nil {
		c.user.AccessToken = access
	}
	c.mu.Unlock()
	return nil
}

// dropStoredTokens borra los tokens persistidos; los fallos solo se registran.
func (c *Coordinator) dropStoredTokens(ctx context.Context) {
	if err := c.store.Delete(ctx, repository.KeyAccessToken, repository.KeyRefreshToken); err != nil {
		c.log.Error().Err(err).Msg("no se pudieron borrar los tokens del almacenamiento")
	}
}

// dropStoredTokensIf borra los tokens persistidos solo si el access token guardado es access.
func (c *Coordinator) dropStoredTokensIf(ctx context.Context, access string) {
	stored, ok, err := c.store.Get(ctx, repository.KeyAccessToken)
	if err != nil {
		c.log.Error().Err(err).Msg("no se pudo leer el token del almacenamiento")
		return
	}
	if ok && stored == access {
		c.dropStoredTokens(ctx)
	}
}

// expire cierra la sesión tras un rechazo definitivo del backend.
func (c *Coordinator) expire(ctx context.Context) {
	c.dropStoredTokens(ctx)
	c.mu.Lock()
	c.generation++
	c.clearLocked()
	c.mu.Unlock()
	c.publish()
}
