package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// ServiceInput alta o edición de servicio.
type ServiceInput struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	CategoryID  int64           `json:"id_categoria"`
	Status      string          `json:"estado,omitempty"`
}

// ServiceQuery parámetros de /services/filtered; los valores cero no se envían.
type ServiceQuery struct {
	CategoryID int64
	ProviderID int64
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Limit      int
	Offset     int
}

func (q ServiceQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("id_categoria", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.ProviderID > 0 {
		v.Set("id_perfil", strconv.FormatInt(q.ProviderID, 10))
	}
	if q.Search != "" {
		v.Set("busqueda", q.Search)
	}
	if q.MinPrice != nil {
		v.Set("precio_min", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("precio_max", q.MaxPrice.String())
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("skip", strconv.Itoa(q.Offset))
	}
	return v
}

// ListServices GET /services/.
func (c *Client) ListServices(ctx context.Context) ([]entity.Service, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/services/"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Service](resp.Body)
}

// FilteredServices GET /services/filtered: listado unificado con filtros del lado servidor.
func (c *Client) FilteredServices(ctx context.Context, q ServiceQuery) ([]entity.Service, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/services/filtered", Query: q.values()})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Service](resp.Body)
}

// GetService GET /services/{id}.
func (c *Client) GetService(ctx context.Context, id int64) (*entity.Service, error) {
	var out entity.Service
	req := Request{Method: http.MethodGet, Path: fmt.Sprintf("/services/%d", id), Endpoint: "/services/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateService POST /services/.
func (c *Client) CreateService(ctx context.Context, in ServiceInput) (*entity.Service, error) {
	var out entity.Service
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/services/", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateService PUT /services/{id}.
func (c *Client) UpdateService(ctx context.Context, id int64, in ServiceInput) (*entity.Service, error) {
	var out entity.Service
	req := Request{Method: http.MethodPut, Path: fmt.Sprintf("/services/%d", id), Body: in, Endpoint: "/services/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteService DELETE /services/{id}.
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	req := Request{Method: http.MethodDelete, Path: fmt.Sprintf("/services/%d", id), Endpoint: "/services/{id}"}
	return c.call(ctx, req, nil)
}
