package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=activo inactivo"`
}

// ServiceRequest alta o edición de servicio.
type ServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=150"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=activo inactivo"`
}

// ServiceSearchQuery filtros del listado unificado de servicios.
type ServiceSearchQuery struct {
	CategoryID int64   `query:"category_id" validate:"omitempty,gt=0"`
	ProviderID int64   `query:"provider_id" validate:"omitempty,gt=0"`
	Search     string  `query:"q" validate:"omitempty,max=100"`
	MinPrice   *string `query:"min_price"`
	MaxPrice   *string `query:"max_price"`
	Limit      int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int     `query:"offset" validate:"omitempty,min=0"`
}

// NewServiceRequestRequest propuesta de servicio para moderación.
type NewServiceRequestRequest struct {
	ServiceName string `json:"service_name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
}

// NewCategoryRequestRequest propuesta de categoría para moderación.
type NewCategoryRequestRequest struct {
	CategoryName string `json:"category_name" validate:"required,min=2,max=100"`
	Description  string `json:"description" validate:"omitempty,max=500"`
}

// AvailabilityRequest franja horaria de un servicio.
type AvailabilityRequest struct {
	StartsAt  time.Time        `json:"starts_at" validate:"required"`
	EndsAt    time.Time        `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Available *bool            `json:"available"`
	Price     *decimal.Decimal `json:"price"`
}

// ReservationRequest reserva de una franja.
type ReservationRequest struct {
	ServiceID      int64  `json:"service_id" validate:"required,gt=0"`
	AvailabilityID int64  `json:"availability_id" validate:"required,gt=0"`
	Notes          string `json:"notes" validate:"omitempty,max=500"`
}
