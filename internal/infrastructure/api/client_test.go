package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/api/v1/", Logger: zerolog.Nop()})
	require.NoError(t, err)
	return c
}

func TestNew_BaseURLPorDefecto(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", c.BaseURL())

	_, err = New(Config{BaseURL: "no es una url"})
	assert.Error(t, err)
}

func TestDo_NormalizaErrores(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail texto", http.StatusBadRequest, `{"detail":"Correo ya registrado"}`, "Correo ya registrado"},
		{"detail validación", http.StatusUnprocessableEntity,
			`{"detail":[{"loc":["body","email"],"msg":"email inválido","type":"value_error"}]}`, "email inválido"},
		{"sin cuerpo", http.StatusBadGateway, ``, "Error 502: Bad Gateway"},
		{"cuerpo no JSON", http.StatusInternalServerError, `<html>boom</html>`, "Error 500: Internal Server Error"},
		{"detail vacío", http.StatusNotFound, `{"detail":""}`, "Error 404: Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
			apiErr, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Detail)
		})
	}
}

func TestDo_FalloDeRedEsTransitorio(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url, Logger: zerolog.Nop()})
	require.NoError(t, err)
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/auth/profile"})
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsNetwork())
	assert.True(t, domain.IsTransient(err))
}

func TestDo_CabecerasYCuerpo(t *testing.T) {
	var got *http.Request
	var body []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		body, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"access_token":"a","refresh_token":"r"}`)
	}))

	out, err := c.WithToken("tok").Login(context.Background(), "ana@seva.ec", "Secreta1!")
	require.NoError(t, err)
	assert.True(t, out.HasTokens())
	assert.Equal(t, "/api/v1/auth/login", got.URL.Path)
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"email":"ana@seva.ec","password":"Secreta1!"}`, string(body))
}

func TestDo_SinTokenNoEnviaAuthorization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}))
	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveRequest(endpoint, method string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+endpoint+" "+http.StatusText(status))
}

func TestDo_ReportaAlObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id_categoria":7,"nombre":"Limpieza"}`)
	}))
	defer srv.Close()
	obs := &recordingObserver{}
	c, err := New(Config{BaseURL: srv.URL, Observer: obs, Logger: zerolog.Nop()})
	require.NoError(t, err)

	cat, err := c.GetCategory(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Limpieza", cat.Name)
	assert.Equal(t, []string{"GET /categories/{id} OK"}, obs.calls)
}

func TestDo_LimitadorRespetaContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	c, err := New(Config{BaseURL: srv.URL, RateLimitQPS: 0.001, RateLimitBurst: 1, Logger: zerolog.Nop()})
	require.NoError(t, err)

	require.NoError(t, c.Logout(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.Logout(ctx)
	assert.True(t, domain.IsTransient(err))
}

func TestDecodeList(t *testing.T) {
	out, err := decodeList[map[string]any]([]byte(`[{"a":1}]`))
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = decodeList[map[string]any]([]byte(`{"items":[{"a":1},{"a":2}],"total":2}`))
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = decodeList[map[string]any]([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = decodeList[map[string]any]([]byte(`{"detail":"x"}`))
	assert.Error(t, err)
}

func TestFlexID(t *testing.T) {
	var p struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":" uuid-1 ","c":null}`), &p))
	assert.Equal(t, FlexID("42"), p.A)
	assert.Equal(t, FlexID("uuid-1"), p.B)
	assert.Equal(t, FlexID(""), p.C)
}

func TestNetworkErrorConservaCausa(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.GetProfile(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
