package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// probeStrategy un candidato del descubrimiento de solicitudes de servicio.
type probeStrategy struct {
	name  string
	path  string
	query url.Values
}

// serviceRequestStrategies en orden estricto: endpoint dedicado, listado de admin y
// doce variantes de parámetros del listado paginado.
var serviceRequestStrategies = []probeStrategy{
	{name: "all", path: "/service-requests/all"},
	{name: "admin", path: "/admin/service-requests"},
	{name: "paged-plain", path: "/service-requests/"},
	{name: "paged-skip-limit", path: "/service-requests/", query: url.Values{"skip": {"0"}, "limit": {"1000"}}},
	{name: "paged-limit", path: "/service-requests/", query: url.Values{"limit": {"1000"}}},
	{name: "paged-offset-limit", path: "/service-requests/", query: url.Values{"offset": {"0"}, "limit": {"1000"}}},
	{name: "paged-page-size", path: "/service-requests/", query: url.Values{"page": {"1"}, "size": {"1000"}}},
	{name: "paged-page-page_size", path: "/service-requests/", query: url.Values{"page": {"1"}, "page_size": {"1000"}}},
	{name: "paged-page-per_page", path: "/service-requests/", query: url.Values{"page": {"1"}, "per_page": {"1000"}}},
	{name: "flag-all", path: "/service-requests/", query: url.Values{"all": {"true"}}},
	{name: "flag-include_all", path: "/service-requests/", query: url.Values{"include_all": {"true"}}},
	{name: "estado-todos", path: "/service-requests/", query: url.Values{"estado": {"todos"}}},
	{name: "estado_aprobacion-all", path: "/service-requests/", query: url.Values{"estado_aprobacion": {"all"}}},
	{name: "flag-admin", path: "/service-requests/", query: url.Values{"admin": {"true"}}},
}

// GetAllServiceRequests prueba las estrategias en orden y devuelve el primer listado no
// vacío sin intentar las siguientes. Si todas fallan o vienen vacías devuelve una lista
// vacía y nunca un error: "sin datos" y "endpoint no disponible" son indistinguibles.
func (c *Client) GetAllServiceRequests(ctx context.Context) []entity.ServiceRequest {
	for i, s := range serviceRequestStrategies {
		if ctx.Err() != nil {
			c.log.Warn().Err(ctx.Err()).Int("attempt", i+1).Msg("descubrimiento de solicitudes interrumpido")
			break
		}
		resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: s.path, Query: s.query, Endpoint: "probe:" + s.name})
		if err != nil {
			c.log.Debug().Err(err).Str("strategy", s.name).Msg("estrategia sin resultado")
			continue
		}
		items, err := decodeList[entity.ServiceRequest](resp.Body)
		if err != nil {
			c.log.Debug().Err(err).Str("strategy", s.name).Msg("respuesta no es un listado")
			continue
		}
		if len(items) > 0 {
			c.log.Debug().Str("strategy", s.name).Int("count", len(items)).Msg("solicitudes de servicio obtenidas")
			return items
		}
	}
	c.log.Warn().Msg("ninguna estrategia devolvió solicitudes de servicio")
	return []entity.ServiceRequest{}
}

// ServiceRequestInput propuesta de un proveedor para publicar un servicio.
type ServiceRequestInput struct {
	ServiceName string `json:"nombre_servicio"`
	Description string `json:"descripcion,omitempty"`
	CategoryID  int64  `json:"id_categoria"`
}

// reviewBody cuerpo de aprobación/rechazo.
type reviewBody struct {
	Comment string `json:"comentario_admin,omitempty"`
}

// CreateServiceRequest POST /service-requests/.
func (c *Client) CreateServiceRequest(ctx context.Context, in ServiceRequestInput) (*entity.ServiceRequest, error) {
	var out entity.ServiceRequest
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/service-requests/", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveServiceRequest PUT /service-requests/{id}/approve.
func (c *Client) ApproveServiceRequest(ctx context.Context, id int64, comment string) error {
	req := Request{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/service-requests/%d/approve", id),
		Body:     reviewBody{Comment: comment},
		Endpoint: "/service-requests/{id}/approve",
	}
	return c.call(ctx, req, nil)
}

// RejectServiceRequest PUT /service-requests/{id}/reject.
func (c *Client) RejectServiceRequest(ctx context.Context, id int64, reason string) error {
	req := Request{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/service-requests/%d/reject", id),
		Body:     reviewBody{Comment: reason},
		Endpoint: "/service-requests/{id}/reject",
	}
	return c.call(ctx, req, nil)
}
