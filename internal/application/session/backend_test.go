package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/storage"
)

// backend simula el API de SEVA para las pruebas del coordinador.
type backend struct {
	mu   sync.Mutex
	hits map[string]int

	valid map[string]bool // tokens aceptados por los endpoints protegidos; nil acepta cualquiera

	loginStatus  int
	loginBody    string
	signupBody   string
	refreshBody  string
	refreshCode  int
	profileBody  string
	profileHook  func(n int) (int, string) // n = número de llamada a /auth/profile
	verifyBody   string
	verifyCode   int
	logoutCode   int
	applyTypes   []string
	applySizes   []int
	applyNames   []string
	refreshDelay time.Duration
}

func newBackend() *backend {
	return &backend{
		hits:        map[string]int{},
		loginBody:   `{"access_token":"tok-1","refresh_token":"ref-1","token_type":"bearer"}`,
		profileBody: `{"id":5,"nombre_persona":"Ana Pérez","email":"ana@seva.ec","roles":["cliente"],"nombre_empresa":"Acme"}`,
		verifyBody:  `{"estado":null}`,
		refreshBody: `{"access_token":"tok-2"}`,
	}
}

func (b *backend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *backend) authorized(r *http.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.valid == nil {
		return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	return b.valid[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
}

func write(w http.ResponseWriter, code int, body string) {
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	b.mu.Lock()
	b.hits[path]++
	n := b.hits[path]
	b.mu.Unlock()

	switch path {
	case "/auth/login":
		write(w, b.loginStatus, b.loginBody)
		return
	case "/auth/signup":
		write(w, http.StatusCreated, b.signupBody)
		return
	case "/auth/refresh":
		if b.refreshDelay > 0 {
			time.Sleep(b.refreshDelay)
		}
		write(w, b.refreshCode, b.refreshBody)
		return
	case "/auth/logout":
		write(w, b.logoutCode, `{}`)
		return
	}

	if !b.authorized(r) {
		write(w, http.StatusUnauthorized, `{"detail":"Token inválido o expirado"}`)
		return
	}
	switch path {
	case "/auth/profile":
		if b.profileHook != nil {
			code, body := b.profileHook(n)
			write(w, code, body)
			return
		}
		write(w, 0, b.profileBody)
	case "/providers/verification-status":
		write(w, b.verifyCode, b.verifyBody)
	case "/providers/apply", "/providers/resubmit-documents":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			write(w, http.StatusBadRequest, `{"detail":"multipart inválido"}`)
			return
		}
		b.mu.Lock()
		b.applyTypes = r.MultipartForm.Value["nombres_tip_documento"]
		b.applySizes, b.applyNames = nil, nil
		for _, fh := range r.MultipartForm.File["documentos"] {
			b.applySizes = append(b.applySizes, int(fh.Size))
			b.applyNames = append(b.applyNames, fh.Filename)
		}
		b.mu.Unlock()
		write(w, http.StatusCreated, `{"id_solicitud":3,"estado":"pendiente"}`)
	case "/auth/profile/photo":
		write(w, 0, `{"foto_perfil":"/media/ana.png"}`)
	default:
		http.NotFound(w, r)
	}
}

type harness struct {
	backend *backend
	server  *httptest.Server
	store   *storage.Memory
	coord   *Coordinator
	client  *api.Client
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	client, err := api.New(api.Config{BaseURL: srv.URL + "/api/v1", Logger: zerolog.Nop()})
	require.NoError(t, err)
	store := storage.NewMemory()
	coord := NewCoordinator(client, store, Config{
		ReloadTimeout: 200 * time.Millisecond,
		Now:           func() time.Time { return testNow },
	}, zerolog.Nop())
	return &harness{backend: b, server: srv, store: store, coord: coord, client: client}
}
