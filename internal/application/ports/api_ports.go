// Package ports define los contratos de salida de los casos de uso. El cliente REST
// (infrastructure/api) los implementa todos; las pruebas usan dobles en memoria.
package ports

import (
	"context"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// ModerationAPI solicitudes de servicio y de categoría pendientes de revisión.
type ModerationAPI interface {
	// GetAllServiceRequests nunca falla: sin datos devuelve una lista vacía.
	GetAllServiceRequests(ctx context.Context) []entity.ServiceRequest
	ApproveServiceRequest(ctx context.Context, id int64, comment string) error
	RejectServiceRequest(ctx context.Context, id int64, reason string) error

	ListCategoryRequests(ctx context.Context) ([]entity.CategoryRequest, error)
	ApproveCategoryRequest(ctx context.Context, id int64, comment string) error
	RejectCategoryRequest(ctx context.Context, id int64, reason string) error
}

// UserDirectory consulta puntual de usuarios; la usa el enriquecimiento de correos.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*entity.AdminUser, error)
}

// UserAdminAPI administración de usuarios, roles y permisos.
type UserAdminAPI interface {
	UserDirectory
	ListUsers(ctx context.Context) ([]entity.AdminUser, error)
	SearchUsers(ctx context.Context, q string) ([]entity.AdminUser, error)
	ListRoles(ctx context.Context) ([]entity.RoleDefinition, error)
	ListPermissions(ctx context.Context) ([]entity.Permission, error)
	ToggleUserStatus(ctx context.Context, id string) (*entity.AdminUser, error)
	ResetUserPassword(ctx context.Context, id, newPassword string) error
	UpdateUserProfile(ctx context.Context, id string, in api.UserProfileUpdate) (*entity.AdminUser, error)
}

// CatalogAPI categorías, servicios y propuestas de los proveedores.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	CreateCategory(ctx context.Context, in api.CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, in api.CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListServices(ctx context.Context) ([]entity.Service, error)
	FilteredServices(ctx context.Context, q api.ServiceQuery) ([]entity.Service, error)
	GetService(ctx context.Context, id int64) (*entity.Service, error)
	CreateService(ctx context.Context, in api.ServiceInput) (*entity.Service, error)
	UpdateService(ctx context.Context, id int64, in api.ServiceInput) (*entity.Service, error)
	DeleteService(ctx context.Context, id int64) error

	CreateServiceRequest(ctx context.Context, in api.ServiceRequestInput) (*entity.ServiceRequest, error)
	CreateCategoryRequest(ctx context.Context, in api.CategoryRequestInput) (*entity.CategoryRequest, error)
}

// BookingAPI disponibilidad de servicios y reservas.
type BookingAPI interface {
	ListAvailability(ctx context.Context, serviceID int64) ([]entity.Availability, error)
	CreateAvailability(ctx context.Context, serviceID int64, in api.AvailabilityInput) (*entity.Availability, error)
	UpdateAvailability(ctx context.Context, id int64, in api.AvailabilityInput) (*entity.Availability, error)
	DeleteAvailability(ctx context.Context, id int64) error
	CreateReservation(ctx context.Context, in api.ReservationInput) (*entity.Reservation, error)
	ListReservations(ctx context.Context) ([]entity.Reservation, error)
}

var (
	_ ModerationAPI = (*api.Client)(nil)
	_ UserAdminAPI  = (*api.Client)(nil)
	_ CatalogAPI    = (*api.Client)(nil)
	_ BookingAPI    = (*api.Client)(nil)
)
