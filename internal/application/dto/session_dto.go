package dto

import (
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest alta de cuenta. La política de contraseña se aplica aparte, antes que estas reglas.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	CompanyName     string `json:"company_name" validate:"omitempty,max=200"`
	TaxID           string `json:"tax_id" validate:"omitempty,len=13,numeric"`
}

// PasswordResetRequest solicitud de correo de recuperación.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ProviderProfileRequest datos de empresa de la solicitud de proveedor.
type ProviderProfileRequest struct {
	CompanyName string `json:"company_name" form:"company_name" validate:"required,max=200"`
	LegalName   string `json:"legal_name" form:"legal_name" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" form:"tax_id" validate:"required,len=13,numeric"`
	Description string `json:"description" form:"description" validate:"omitempty,max=1000"`
	Phone       string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Address     string `json:"address" form:"address" validate:"omitempty,max=300"`
	City        string `json:"city" form:"city" validate:"omitempty,max=100"`
	Website     string `json:"website" form:"website" validate:"omitempty,url"`
	Comment     string `json:"comment" form:"comment" validate:"omitempty,max=1000"`
}

// DocumentInput archivo recibido para una clave interna de documento (ruc, cedula, ...).
type DocumentInput struct {
	Key         string
	FileName    string
	ContentType string
	Content     []byte
}

// ProviderApplicationRequest solicitud o reenvío de documentos de proveedor.
type ProviderApplicationRequest struct {
	Profile   ProviderProfileRequest
	Documents []DocumentInput
}

// SessionResponse vista pública de la sesión.
type SessionResponse struct {
	Authenticated       bool                       `json:"authenticated"`
	User                *entity.SessionUser        `json:"user,omitempty"`
	ProviderStatus      entity.ProviderStatus      `json:"provider_status"`
	ProviderApplication entity.ProviderApplication `json:"provider_application"`
	IsLoading           bool                       `json:"is_loading"`
	Error               string                     `json:"error,omitempty"`
	Stale               bool                       `json:"stale,omitempty"`
}

// RegisterResponse resultado del alta.
type RegisterResponse struct {
	ConfirmationRequired bool             `json:"confirmation_required"`
	Session              *SessionResponse `json:"session,omitempty"`
}
