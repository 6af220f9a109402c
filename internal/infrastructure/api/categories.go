package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// CategoryInput alta o edición de categoría.
type CategoryInput struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Status      string `json:"estado,omitempty"`
}

// ListCategories GET /categories/.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/categories/"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Category](resp.Body)
}

// GetCategory GET /categories/{id}.
func (c *Client) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	var out entity.Category
	req := Request{Method: http.MethodGet, Path: fmt.Sprintf("/categories/%d", id), Endpoint: "/categories/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory POST /categories/.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	var out entity.Category
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/categories/", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory PUT /categories/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*entity.Category, error) {
	var out entity.Category
	req := Request{Method: http.MethodPut, Path: fmt.Sprintf("/categories/%d", id), Body: in, Endpoint: "/categories/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory DELETE /categories/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	req := Request{Method: http.MethodDelete, Path: fmt.Sprintf("/categories/%d", id), Endpoint: "/categories/{id}"}
	return c.call(ctx, req, nil)
}
