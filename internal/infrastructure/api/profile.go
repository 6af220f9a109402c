package api

import (
	"context"
	"net/http"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// Profile respuesta de /auth/profile. El backend ha cambiado los nombres de campo entre
// versiones; la sesión resuelve cuál usar (ver session.MapProfile).
type Profile struct {
	ID            FlexID           `json:"id"`
	UserID        FlexID           `json:"user_id"`
	PersonID      FlexID           `json:"id_persona"`
	Email         string           `json:"email"`
	NombrePersona string           `json:"nombre_persona"`
	Nombre        string           `json:"nombre"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Roles         entity.RoleNames `json:"roles"`
	CompanyName   string           `json:"nombre_empresa"`
	LegalName     string           `json:"razon_social"`
	TaxID         string           `json:"ruc"`
	PhotoPath     string           `json:"foto_perfil"`
	AvatarURL     string           `json:"avatar_url"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

// PhotoUpload imagen de perfil.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GetProfile GET /auth/profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/auth/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProfilePhoto POST /auth/profile/photo (multipart, campo "file").
func (c *Client) UploadProfilePhoto(ctx context.Context, photo PhotoUpload) (*Profile, error) {
	form := NewForm().File("file", photo.FileName, photo.ContentType, photo.Content)
	var out Profile
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/auth/profile/photo", Form: form}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
