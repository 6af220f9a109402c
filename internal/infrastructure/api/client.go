// Package api es el cliente REST del backend SEVA: funciones tipadas por recurso sobre
// un único Do que adjunta el bearer, normaliza errores y reporta métricas.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

// Observer recibe una observación por cada solicitud emitida. status 0 = sin respuesta.
type Observer interface {
	ObserveRequest(endpoint, method string, status int, elapsed time.Duration)
}

// Config opciones del cliente.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitQPS   float64 // <= 0 desactiva el limitador
	RateLimitBurst int
	HTTPClient     *http.Client // opcional, para pruebas
	Observer       Observer     // opcional
	Logger         zerolog.Logger
}

// Client cliente del backend. Es inmutable: WithToken y WithAuthRefresh devuelven copias.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	log      zerolog.Logger

	token string      // bearer fijo
	auth  *Authorized // bearer dinámico con refresh ante 401
}

// New construye el cliente. Sin BaseURL usa el host por defecto.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "http://localhost:8000/api/v1"
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("base URL inválida: %w", err)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	c := &Client{
		baseURL:  base,
		http:     hc,
		observer: cfg.Observer,
		log:      cfg.Logger.With().Str("component", "api").Logger(),
	}
	if cfg.RateLimitQPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitQPS), burst)
	}
	return c, nil
}

// BaseURL devuelve la raíz de la API.
func (c *Client) BaseURL() string { return c.baseURL }

// WithToken devuelve una copia que envía siempre el token dado y no reintenta ante 401.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	cp.auth = nil
	return &cp
}

// WithAuthRefresh devuelve una copia que toma el token de src y, ante un 401,
// refresca una sola vez y reintenta una sola vez.
func (c *Client) WithAuthRefresh(src TokenRefresher) *Client {
	cp := *c
	cp.token = ""
	cp.auth = &Authorized{Tokens: src, Log: c.log}
	return &cp
}

// Request descriptor de una solicitud. Body se codifica como JSON; Form como multipart.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Form     *Form
	Endpoint string // etiqueta de métricas; por defecto Path
}

// Response respuesta exitosa (2xx) ya leída.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// prepared cuerpo ya serializado: se puede reenviar idéntico.
type prepared struct {
	method      string
	url         string
	body        []byte
	contentType string
	endpoint    string
}

// Do ejecuta la solicitud. Los estados no 2xx vuelven como *domain.APIError; los fallos
// de transporte como *domain.APIError con StatusCode 0.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	p, err := c.prepare(req)
	if err != nil {
		return nil, err
	}
	if c.auth != nil {
		return c.auth.Do(ctx, func(ctx context.Context, token string) (*Response, error) {
			return c.send(ctx, p, token)
		})
	}
	return c.send(ctx, p, c.token)
}

func (c *Client) prepare(req Request) (*prepared, error) {
	u, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("construir URL %s: %w", req.Path, err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	p := &prepared{method: req.Method, url: u.String(), endpoint: req.Endpoint}
	if p.endpoint == "" {
		p.endpoint = req.Path
	}
	switch {
	case req.Form != nil:
		p.body, p.contentType, err = req.Form.encode()
		if err != nil {
			return nil, fmt.Errorf("codificar multipart: %w", err)
		}
	case req.Body != nil:
		p.body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("codificar JSON: %w", err)
		}
		p.contentType = "application/json"
	}
	return p, nil
}

func (c *Client) send(ctx context.Context, p *prepared, token string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.NewNetworkError(err)
		}
	}
	var body io.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, p.method, p.url, body)
	if err != nil {
		return nil, fmt.Errorf("crear solicitud: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if p.contentType != "" {
		httpReq.Header.Set("Content-Type", p.contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(p, 0, time.Since(start))
		c.log.Debug().Err(err).Str("method", p.method).Str("endpoint", p.endpoint).Msg("fallo de red")
		return nil, domain.NewNetworkError(err)
	}
	defer httpResp.Body.Close()
	raw, err := io.ReadAll(httpResp.Body)
	c.observe(p, httpResp.StatusCode, time.Since(start))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("leer respuesta: %w", err))
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, normalizeError(httpResp.StatusCode, httpResp.Status, raw)
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: raw}, nil
}

func (c *Client) observe(p *prepared, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(p.endpoint, p.method, status, elapsed)
	}
}

// call ejecuta la solicitud y decodifica el cuerpo en out (si no es nil).
func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s: %w", req.Path, err)
	}
	return nil
}
