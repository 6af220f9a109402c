package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// UserProfileUpdate edición de perfil de un usuario desde administración.
type UserProfileUpdate struct {
	Name        string `json:"nombre_persona,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"telefono,omitempty"`
	CompanyName string `json:"nombre_empresa,omitempty"`
	TaxID       string `json:"ruc,omitempty"`
}

// ListUsers GET /admin/users.
func (c *Client) ListUsers(ctx context.Context) ([]entity.AdminUser, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/users"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.AdminUser](resp.Body)
}

// SearchUsers GET /admin/users/search?q=.
func (c *Client) SearchUsers(ctx context.Context, q string) ([]entity.AdminUser, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/users/search", Query: url.Values{"q": {q}}})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.AdminUser](resp.Body)
}

// GetUser GET /admin/users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*entity.AdminUser, error) {
	var out entity.AdminUser
	req := Request{Method: http.MethodGet, Path: "/admin/users/" + url.PathEscape(id), Endpoint: "/admin/users/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRoles GET /admin/roles.
func (c *Client) ListRoles(ctx context.Context) ([]entity.RoleDefinition, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/roles"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.RoleDefinition](resp.Body)
}

// ListPermissions GET /admin/permissions.
func (c *Client) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/permissions"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Permission](resp.Body)
}

// ToggleUserStatus PATCH /admin/users/{id}/toggle-status.
func (c *Client) ToggleUserStatus(ctx context.Context, id string) (*entity.AdminUser, error) {
	var out entity.AdminUser
	req := Request{
		Method:   http.MethodPatch,
		Path:     fmt.Sprintf("/admin/users/%s/toggle-status", url.PathEscape(id)),
		Endpoint: "/admin/users/{id}/toggle-status",
	}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetUserPassword POST /admin/users/{id}/reset-password.
func (c *Client) ResetUserPassword(ctx context.Context, id, newPassword string) error {
	req := Request{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/admin/users/%s/reset-password", url.PathEscape(id)),
		Body:     map[string]string{"new_password": newPassword},
		Endpoint: "/admin/users/{id}/reset-password",
	}
	return c.call(ctx, req, nil)
}

// UpdateUserProfile PUT /admin/users/{id}/profile.
func (c *Client) UpdateUserProfile(ctx context.Context, id string, in UserProfileUpdate) (*entity.AdminUser, error) {
	var out entity.AdminUser
	req := Request{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/admin/users/%s/profile", url.PathEscape(id)),
		Body:     in,
		Endpoint: "/admin/users/{id}/profile",
	}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
