package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/repository"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/storage"
	"github.com/seva-empresas/seva-admin/pkg/jwt"
)

var ctx = context.Background()

func login(t *testing.T, h *harness) *entity.SessionUser {
	t.Helper()
	u, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "Secreta1!"})
	require.NoError(t, err)
	return u
}

func assertConsistent(t *testing.T, s Snapshot) {
	t.Helper()
	assert.Equal(t, s.ProviderStatus, s.ProviderApplication.Status)
	if s.User != nil {
		assert.Equal(t, s.ProviderStatus, s.User.ProviderStatus)
		assert.Equal(t, s.ProviderStatus, s.User.ProviderApplication.Status)
	}
}

func TestLogin_PublicaSesionCompleta(t *testing.T) {
	b := newBackend()
	b.profileBody = `{"id":5,"nombre_persona":"Ana Pérez","email":"ana@seva.ec","roles":[{"nombre":"Proveedor"}]}`
	b.verifyBody = `{"estado":"aprobado","fecha_solicitud":"2024-03-01T10:00:00"}`
	h := newHarness(t, b)

	var mu sync.Mutex
	var snaps []Snapshot
	h.coord.Subscribe(func(s Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	u := login(t, h)
	assert.Equal(t, "5", u.ID)
	assert.Equal(t, "Ana Pérez", u.Name)
	assert.Equal(t, entity.RoleProvider, u.Role)
	assert.Equal(t, entity.ProviderStatusApproved, u.ProviderStatus)
	assert.Equal(t, "tok-1", u.AccessToken)
	assert.Equal(t, "tok-1", h.coord.AccessToken())

	stored, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", stored)
	refresh, _, _ := h.store.Get(ctx, repository.KeyRefreshToken)
	assert.Equal(t, "ref-1", refresh)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(snaps), 2)
	assert.True(t, snaps[0].IsLoading)
	last := snaps[len(snaps)-1]
	assert.False(t, last.IsLoading)
	assert.True(t, last.Authenticated())
	for _, s := range snaps {
		assertConsistent(t, s)
	}
	// una consulta de perfil y una de verificación
	assert.Equal(t, 1, b.count("/auth/profile"))
	assert.Equal(t, 1, b.count("/providers/verification-status"))
}

func TestLogin_CuentaInactiva(t *testing.T) {
	for _, tc := range []struct {
		code int
		body string
	}{
		{http.StatusBadRequest, `{"detail":"La cuenta está inactiva"}`},
		{http.StatusForbidden, `{"detail":"Usuario inactivo"}`},
	} {
		b := newBackend()
		b.loginStatus, b.loginBody = tc.code, tc.body
		h := newHarness(t, b)

		_, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrAccountInactive)
		assert.False(t, h.coord.Snapshot().Authenticated())
		assert.Equal(t, domain.ErrAccountInactive.Error(), h.coord.Snapshot().Error)
		_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
		assert.False(t, ok)
	}
}

func TestLogin_403SinInactividadConservaElDetalle(t *testing.T) {
	b := newBackend()
	b.loginStatus, b.loginBody = http.StatusForbidden, `{"detail":"Demasiados intentos, espera un minuto"}`
	h := newHarness(t, b)

	_, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "x"})
	assert.NotErrorIs(t, err, domain.ErrAccountInactive)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Demasiados intentos, espera un minuto", h.coord.Snapshot().Error)
}

func TestLogin_ErrorDelBackendSePropaga(t *testing.T) {
	b := newBackend()
	b.loginStatus, b.loginBody = http.StatusUnauthorized, `{"detail":"Credenciales incorrectas"}`
	h := newHarness(t, b)

	_, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "x"})
	assert.Equal(t, "Credenciales incorrectas", domain.DetailOf(err))
	assert.Zero(t, b.count("/auth/profile"))
}

func TestLogin_VerificacionFallidaUsaEspejo(t *testing.T) {
	b := newBackend()
	b.verifyCode, b.verifyBody = http.StatusInternalServerError, `{}`
	h := newHarness(t, b)
	require.NoError(t, h.store.Set(ctx, repository.ProviderStatusKey("ana@seva.ec"), "pending"))

	u := login(t, h)
	assert.Equal(t, entity.ProviderStatusPending, u.ProviderStatus)
	assertConsistent(t, h.coord.Snapshot())
}

func TestLogin_VerificacionFallidaSinEspejo(t *testing.T) {
	b := newBackend()
	b.verifyCode, b.verifyBody = http.StatusServiceUnavailable, ``
	h := newHarness(t, b)

	u := login(t, h)
	assert.Equal(t, entity.ProviderStatusNone, u.ProviderStatus)
}

func TestLogin_PerfilFallidoNoDejaTokens(t *testing.T) {
	b := newBackend()
	b.profileHook = func(int) (int, string) { return http.StatusInternalServerError, `{"detail":"boom"}` }
	h := newHarness(t, b)

	_, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "x"})
	assert.Error(t, err)
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok)
}

func TestRegister_PoliticaAntesDeLaRed(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)

	_, err := h.coord.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@seva.ec", Password: "debil"})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "password", vErr.Field)
	assert.Zero(t, b.count("/auth/signup"))

	_, err = h.coord.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "no-es-correo", Password: "Secreta1!"})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email", vErr.Field)
	assert.Zero(t, b.count("/auth/signup"))
}

func TestRegister_SinTokensNoCreaSesion(t *testing.T) {
	b := newBackend()
	b.signupBody = `{"message":"Revisa tu correo"}`
	h := newHarness(t, b)

	out, err := h.coord.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@seva.ec", Password: "Secreta1!"})
	require.NoError(t, err)
	assert.True(t, out.ConfirmationRequired)
	assert.Nil(t, out.User)
	assert.False(t, h.coord.Snapshot().Authenticated())
	assert.False(t, h.coord.Snapshot().IsLoading)
}

func TestRegister_ConTokensCreaSesionDesdeLaRespuesta(t *testing.T) {
	b := newBackend()
	b.signupBody = `{"access_token":"tok-9","refresh_token":"ref-9","user":{"id":"u-9","nombre":"Ana","email":"ana@seva.ec"}}`
	h := newHarness(t, b)

	out, err := h.coord.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@seva.ec", Password: "Secreta1!"})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, "u-9", out.User.ID)
	assert.Equal(t, entity.RoleClient, out.User.Role)
	assert.Equal(t, "tok-9", h.coord.AccessToken())
	assert.Zero(t, b.count("/auth/profile"))
	assertConsistent(t, h.coord.Snapshot())
}

func TestLogout_IdempotenteYTerminal(t *testing.T) {
	b := newBackend()
	b.logoutCode = http.StatusInternalServerError
	h := newHarness(t, b)

	before := h.coord.Snapshot()
	h.coord.Logout(ctx)
	h.coord.Logout(ctx)
	assert.Equal(t, before, h.coord.Snapshot())
	assert.Zero(t, b.count("/auth/logout"), "sin sesión no hay logout remoto")

	login(t, h)
	h.coord.Logout(ctx)
	s := h.coord.Snapshot()
	assert.False(t, s.Authenticated())
	assert.Equal(t, entity.ProviderStatusNone, s.ProviderStatus)
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok)
	_, ok, _ = h.store.Get(ctx, repository.KeyRefreshToken)
	assert.False(t, ok)
	assert.Equal(t, 1, b.count("/auth/logout"))
}

func TestReload_SinSesion(t *testing.T) {
	h := newHarness(t, newBackend())
	assert.ErrorIs(t, h.coord.ReloadUserProfile(ctx), domain.ErrNotAuthenticated)
}

func TestReload_ActualizaPerfil(t *testing.T) {
	b := newBackend()
	b.profileHook = func(n int) (int, string) {
		if n == 1 {
			return http.StatusOK, `{"id":5,"nombre_persona":"Ana","email":"ana@seva.ec","roles":["cliente"]}`
		}
		return http.StatusOK, `{"id":5,"nombre_persona":"Ana","email":"ana@seva.ec","roles":["ADMINISTRADOR"]}`
	}
	h := newHarness(t, b)
	login(t, h)

	require.NoError(t, h.coord.ReloadUserProfile(ctx))
	assert.Equal(t, entity.RoleAdmin, h.coord.Snapshot().User.Role)
	assert.Equal(t, "tok-1", h.coord.Snapshot().User.AccessToken)
}

func TestReload_TimeoutConservaSesion(t *testing.T) {
	b := newBackend()
	b.profileHook = func(n int) (int, string) {
		if n > 1 {
			time.Sleep(time.Second)
		}
		return http.StatusOK, `{"id":5,"nombre_persona":"Ana","email":"ana@seva.ec"}`
	}
	h := newHarness(t, b)
	login(t, h)
	before := h.coord.Snapshot()

	start := time.Now()
	err := h.coord.ReloadUserProfile(ctx)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.True(t, domain.IsTransient(err))
	assert.Less(t, time.Since(start), 900*time.Millisecond)

	after := h.coord.Snapshot()
	assert.True(t, after.Authenticated())
	assert.Equal(t, before.User, after.User)
	assert.False(t, after.IsLoading)
}

func TestReload_ErrorDeRedConservaSesion(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	login(t, h)
	h.server.Close()

	err := h.coord.ReloadUserProfile(ctx)
	assert.True(t, domain.IsTransient(err))
	assert.True(t, h.coord.Snapshot().Authenticated())
	stored, _, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.Equal(t, "tok-1", stored)
}

func TestReload_401CierraSesion(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	login(t, h)
	b.mu.Lock()
	b.valid = map[string]bool{}
	b.mu.Unlock()

	err := h.coord.ReloadUserProfile(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, h.coord.Snapshot().Authenticated())
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok)
	assert.Zero(t, b.count("/auth/refresh"), "la recarga no intenta refrescar")
}

func TestReload_ResultadoObsoletoSeDescarta(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	b := newBackend()
	b.profileHook = func(n int) (int, string) {
		switch n {
		case 1:
			return http.StatusOK, `{"id":5,"nombre_persona":"Inicial","email":"ana@seva.ec"}`
		case 2:
			close(started)
			<-release
			return http.StatusOK, `{"id":5,"nombre_persona":"Viejo","email":"ana@seva.ec"}`
		default:
			return http.StatusOK, `{"id":5,"nombre_persona":"Nuevo","email":"ana@seva.ec"}`
		}
	}
	h := newHarness(t, b)
	h.coord.reloadTimeout = 5 * time.Second
	login(t, h)

	done := make(chan error, 1)
	go func() { done <- h.coord.ReloadUserProfile(ctx) }()
	<-started

	require.NoError(t, h.coord.ReloadUserProfile(ctx))
	assert.Equal(t, "Nuevo", h.coord.Snapshot().User.Name)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "Nuevo", h.coord.Snapshot().User.Name, "la respuesta tardía no sobrescribe")
}

func TestLogin_LogoutDuranteLaCargaDescartaLaSesion(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	b := newBackend()
	b.profileHook = func(n int) (int, string) {
		if n == 1 {
			close(started)
			<-release
		}
		return http.StatusOK, `{"id":5,"nombre_persona":"Ana","email":"ana@seva.ec"}`
	}
	h := newHarness(t, b)

	done := make(chan error, 1)
	go func() {
		_, err := h.coord.Login(ctx, dto.LoginRequest{Email: "ana@seva.ec", Password: "Secreta1!"})
		done <- err
	}()
	<-started
	h.coord.Logout(ctx)
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrSuperseded)
	s := h.coord.Snapshot()
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsLoading)
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok, "el login reemplazado no deja tokens persistidos")
	_, ok, _ = h.store.Get(ctx, repository.KeyRefreshToken)
	assert.False(t, ok)
}

func TestRegister_LogoutDuranteLaCargaDescartaLaSesion(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	b := newBackend()
	b.signupBody = `{"access_token":"tok-9","refresh_token":"ref-9"}`
	b.profileHook = func(n int) (int, string) {
		if n == 1 {
			close(started)
			<-release
		}
		return http.StatusOK, `{"id":9,"nombre_persona":"Ana","email":"ana@seva.ec"}`
	}
	h := newHarness(t, b)

	done := make(chan error, 1)
	go func() {
		_, err := h.coord.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@seva.ec", Password: "Secreta1!"})
		done <- err
	}()
	<-started
	h.coord.Logout(ctx)
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrSuperseded)
	assert.False(t, h.coord.Snapshot().Authenticated())
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok)
}

func TestRefreshAccessToken_LogoutDuranteElRefreshNoRevive(t *testing.T) {
	b := newBackend()
	b.refreshDelay = 150 * time.Millisecond
	h := newHarness(t, b)
	login(t, h)

	done := make(chan error, 1)
	go func() { done <- h.coord.RefreshAccessToken(ctx) }()
	time.Sleep(50 * time.Millisecond)
	h.coord.Logout(ctx)

	assert.ErrorIs(t, <-done, domain.ErrSuperseded)
	assert.Empty(t, h.coord.AccessToken())
	_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.False(t, ok)
}

func TestRefreshAccessToken(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b)
	login(t, h)

	require.NoError(t, h.coord.RefreshAccessToken(ctx))
	assert.Equal(t, "tok-2", h.coord.AccessToken())
	assert.Equal(t, "tok-2", h.coord.Snapshot().User.AccessToken)
	stored, _, _ := h.store.Get(ctx, repository.KeyAccessToken)
	assert.Equal(t, "tok-2", stored)
	refresh, _, _ := h.store.Get(ctx, repository.KeyRefreshToken)
	assert.Equal(t, "ref-1", refresh, "sin rotación se conserva el refresh token")
}

func TestRefreshAccessToken_RechazadoCierraSesion(t *testing.T) {
	b := newBackend()
	b.refreshCode, b.refreshBody = http.StatusUnauthorized, `{"detail":"Refresh token inválido"}`
	h := newHarness(t, b)
	login(t, h)

	err := h.coord.RefreshAccessToken(ctx)
	assert.True(t, domain.IsUnauthorized(err))
	assert.False(t, h.coord.Snapshot().Authenticated())
	_, ok, _ := h.store.Get(ctx, repository.KeyRefreshToken)
	assert.False(t, ok)
}

func TestRefreshAccessToken_ConcurrentesCompartenSolicitud(t *testing.T) {
	b := newBackend()
	b.refreshDelay = 150 * time.Millisecond
	h := newHarness(t, b)
	login(t, h)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.coord.RefreshAccessToken(ctx))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, b.count("/auth/refresh"))
}

func TestRestore(t *testing.T) {
	t.Run("sin tokens", func(t *testing.T) {
		b := newBackend()
		h := newHarness(t, b)
		require.NoError(t, h.coord.Restore(ctx))
		assert.False(t, h.coord.Snapshot().Authenticated())
		assert.Zero(t, b.count("/auth/profile"))
	})

	t.Run("token vigente", func(t *testing.T) {
		b := newBackend()
		h := newHarness(t, b)
		tok, err := jwt.Generate("secreto", "5", "ana@seva.ec", nil, 24*time.Hour*365*50)
		require.NoError(t, err)
		require.NoError(t, h.store.Set(ctx, repository.KeyAccessToken, tok))

		require.NoError(t, h.coord.Restore(ctx))
		assert.True(t, h.coord.Snapshot().Authenticated())
		assert.Equal(t, tok, h.coord.AccessToken())
		assert.Zero(t, b.count("/auth/refresh"))
	})

	t.Run("token vencido con refresh", func(t *testing.T) {
		b := newBackend()
		expired, err := jwt.Generate("secreto", "5", "ana@seva.ec", nil, -time.Hour)
		require.NoError(t, err)
		fresh, err := jwt.Generate("secreto", "5", "ana@seva.ec", nil, 24*time.Hour*365*50)
		require.NoError(t, err)
		b.refreshBody = `{"access_token":"` + fresh + `","refresh_token":"ref-2"}`
		b.valid = map[string]bool{fresh: true}
		h := newHarness(t, b)
		h.coord.now = time.Now
		require.NoError(t, h.store.Set(ctx, repository.KeyAccessToken, expired))
		require.NoError(t, h.store.Set(ctx, repository.KeyRefreshToken, "ref-1"))

		require.NoError(t, h.coord.Restore(ctx))
		assert.Equal(t, 1, b.count("/auth/refresh"))
		assert.True(t, h.coord.Snapshot().Authenticated())
		assert.Equal(t, fresh, h.coord.AccessToken())
	})

	t.Run("token vencido sin refresh", func(t *testing.T) {
		b := newBackend()
		h := newHarness(t, b)
		h.coord.now = time.Now
		expired, err := jwt.Generate("secreto", "5", "ana@seva.ec", nil, -time.Hour)
		require.NoError(t, err)
		require.NoError(t, h.store.Set(ctx, repository.KeyAccessToken, expired))

		require.NoError(t, h.coord.Restore(ctx))
		assert.False(t, h.coord.Snapshot().Authenticated())
		_, ok, _ := h.store.Get(ctx, repository.KeyAccessToken)
		assert.False(t, ok)
		assert.Zero(t, b.count("/auth/profile"))
	})
}

func TestSubscribe_Baja(t *testing.T) {
	h := newHarness(t, newBackend())
	calls := 0
	unsubscribe := h.coord.Subscribe(func(Snapshot) { calls++ })
	h.coord.Logout(ctx)
	assert.Equal(t, 1, calls)
	unsubscribe()
	h.coord.Logout(ctx)
	assert.Equal(t, 1, calls)
}

// txMemory cuenta las transacciones pedidas a un almacenamiento en memoria.
type txMemory struct {
	*storage.Memory
	txs int
}

func (m *txMemory) WithinTx(_ context.Context, fn func(repository.ClientStorage) error) error {
	m.txs++
	return fn(m.Memory)
}

func TestLogin_TokensEnUnaTransaccion(t *testing.T) {
	h := newHarness(t, newBackend())
	store := &txMemory{Memory: storage.NewMemory()}
	h.coord = NewCoordinator(h.client, store, Config{Now: func() time.Time { return testNow }}, zerolog.Nop())

	login(t, h)
	assert.Equal(t, 1, store.txs)
	access, ok, err := store.Get(ctx, repository.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", access)
	refresh, _, _ := store.Get(ctx, repository.KeyRefreshToken)
	assert.Equal(t, "ref-1", refresh)
}
