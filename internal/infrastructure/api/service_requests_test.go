package api

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeServer responde a cada estrategia según responses (por índice); registra los intentos.
type probeServer struct {
	mu       sync.Mutex
	attempts []int
	respond  func(i int, w http.ResponseWriter)
}

func (p *probeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for i, s := range serviceRequestStrategies {
		if r.URL.Path != "/api/v1"+s.path || r.URL.RawQuery != s.query.Encode() {
			continue
		}
		p.mu.Lock()
		p.attempts = append(p.attempts, i)
		p.mu.Unlock()
		p.respond(i, w)
		return
	}
	http.NotFound(w, r)
}

func TestServiceRequestStrategies(t *testing.T) {
	require.Len(t, serviceRequestStrategies, 14)
	assert.Equal(t, "/service-requests/all", serviceRequestStrategies[0].path)
	assert.Equal(t, "/admin/service-requests", serviceRequestStrategies[1].path)
	seen := map[string]bool{}
	for _, s := range serviceRequestStrategies[2:] {
		assert.Equal(t, "/service-requests/", s.path)
		assert.False(t, seen[s.query.Encode()], "variante repetida: %s", s.query.Encode())
		seen[s.query.Encode()] = true
	}
}

func TestGetAllServiceRequests_SeDetieneEnLaPrimeraNoVacia(t *testing.T) {
	for _, k := range []int{0, 1, 5, 13} {
		srv := &probeServer{respond: func(i int, w http.ResponseWriter) {
			switch {
			case i < k && i%2 == 0:
				_, _ = io.WriteString(w, `[]`)
			case i < k:
				w.WriteHeader(http.StatusInternalServerError)
			case i == k:
				_, _ = io.WriteString(w, `[{"id_solicitud":1,"nombre_servicio":"Plomería"},{"id_solicitud":2}]`)
			default:
				_, _ = io.WriteString(w, `[{"id_solicitud":99}]`)
			}
		}}
		c := newTestClient(t, srv)

		got := c.GetAllServiceRequests(context.Background())
		require.Len(t, got, 2, "k=%d", k)
		assert.Equal(t, "Plomería", got[0].ServiceName)

		want := make([]int, k+1)
		for i := range want {
			want[i] = i
		}
		assert.Equal(t, want, srv.attempts, "k=%d: ninguna estrategia después de la ganadora", k)
	}
}

func TestGetAllServiceRequests_AgotadoDevuelveVacio(t *testing.T) {
	srv := &probeServer{respond: func(i int, w http.ResponseWriter) {
		if i%3 == 0 {
			_, _ = io.WriteString(w, `{"items":[]}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}}
	c := newTestClient(t, srv)

	got := c.GetAllServiceRequests(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Len(t, srv.attempts, len(serviceRequestStrategies))
}

func TestGetAllServiceRequests_ContextoCancelado(t *testing.T) {
	srv := &probeServer{respond: func(int, http.ResponseWriter) {}}
	c := newTestClient(t, srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := c.GetAllServiceRequests(ctx)
	assert.Empty(t, got)
	assert.Empty(t, srv.attempts)
}
