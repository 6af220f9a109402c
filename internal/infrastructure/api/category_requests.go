package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// CategoryRequestInput propuesta de categoría nueva.
type CategoryRequestInput struct {
	CategoryName string `json:"nombre_categoria"`
	Description  string `json:"descripcion,omitempty"`
}

// ListCategoryRequests GET /category-requests/.
func (c *Client) ListCategoryRequests(ctx context.Context) ([]entity.CategoryRequest, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/category-requests/"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.CategoryRequest](resp.Body)
}

// CreateCategoryRequest POST /category-requests/.
func (c *Client) CreateCategoryRequest(ctx context.Context, in CategoryRequestInput) (*entity.CategoryRequest, error) {
	var out entity.CategoryRequest
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/category-requests/", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveCategoryRequest PUT /category-requests/{id}/approve.
func (c *Client) ApproveCategoryRequest(ctx context.Context, id int64, comment string) error {
	req := Request{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/category-requests/%d/approve", id),
		Body:     reviewBody{Comment: comment},
		Endpoint: "/category-requests/{id}/approve",
	}
	return c.call(ctx, req, nil)
}

// RejectCategoryRequest PUT /category-requests/{id}/reject.
func (c *Client) RejectCategoryRequest(ctx context.Context, id int64, reason string) error {
	req := Request{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/category-requests/%d/reject", id),
		Body:     reviewBody{Comment: reason},
		Endpoint: "/category-requests/{id}/reject",
	}
	return c.call(ctx, req, nil)
}
