package dto

import (
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
)

// ReviewRequest aprobación o rechazo de una solicitud.
type ReviewRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// RejectRequest rechazo: el motivo es obligatorio.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=1000"`
}

// ListResponse listado filtrado con sus estadísticas.
type ListResponse[T filter.Item] struct {
	Items      []T               `json:"items"`
	Statistics filter.Statistics `json:"statistics"`
	Filters    filter.Config     `json:"filters"`
}

// UserProfileUpdateRequest edición de perfil desde administración.
type UserProfileUpdateRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" validate:"omitempty,len=13,numeric"`
}

// AdminPasswordResetRequest nueva contraseña asignada por un administrador.
type AdminPasswordResetRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}
