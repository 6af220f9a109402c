package api

import (
	"context"
	"net/http"
)

// SignupRequest alta de cuenta.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"nombre_persona"`
	Phone       string `json:"telefono,omitempty"`
	CompanyName string `json:"nombre_empresa,omitempty"`
	TaxID       string `json:"ruc,omitempty"`
}

// AuthResponse respuesta de login, signup y refresh. El signup puede venir sin tokens
// cuando el backend exige confirmar el correo.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenType    string   `json:"token_type,omitempty"`
	User         *Profile `json:"user,omitempty"`
}

// HasTokens indica si la respuesta trae una sesión utilizable.
func (r *AuthResponse) HasTokens() bool { return r != nil && r.AccessToken != "" }

// Signup POST /auth/signup.
func (c *Client) Signup(ctx context.Context, in SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/signup", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh POST /auth/refresh. El backend puede rotar o no el refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var out AuthResponse
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/refresh", Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/logout"}, nil)
}

// RequestPasswordReset POST /auth/reset-password: envía el correo de recuperación.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/reset-password", Body: body}, nil)
}
