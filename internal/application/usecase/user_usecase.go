package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/password"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// UserUseCase administración de usuarios desde la consola.
type UserUseCase struct {
	api ports.UserAdminAPI
	log zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto del backend.
func NewUserUseCase(api ports.UserAdminAPI, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{api: api, log: log.With().Str("component", "users").Logger()}
}

// List devuelve todos los usuarios, o los que coinciden con q si no está vacío.
func (uc *UserUseCase) List(ctx context.Context, q string) ([]entity.AdminUser, error) {
	var (
		users []entity.AdminUser
		err   error
	)
	if q = strings.TrimSpace(q); q != "" {
		users, err = uc.api.SearchUsers(ctx, q)
	} else {
		users, err = uc.api.ListUsers(ctx)
	}
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.AdminUser{}
	}
	return users, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.AdminUser, error) {
	if err := validUserID(id); err != nil {
		return nil, err
	}
	return uc.api.GetUser(ctx, id)
}

// Roles catálogo de roles del backend.
func (uc *UserUseCase) Roles(ctx context.Context) ([]entity.RoleDefinition, error) {
	return uc.api.ListRoles(ctx)
}

// Permissions catálogo de permisos del backend.
func (uc *UserUseCase) Permissions(ctx context.Context) ([]entity.Permission, error) {
	return uc.api.ListPermissions(ctx)
}

// ToggleStatus activa o desactiva la cuenta.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id string) (*entity.AdminUser, error) {
	if err := validUserID(id); err != nil {
		return nil, err
	}
	u, err := uc.api.ToggleUserStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", id).Bool("active", u.Active).Msg("estado de usuario cambiado")
	return u, nil
}

// ResetPassword asigna una contraseña nueva; aplica la misma política que el registro.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.AdminPasswordResetRequest) error {
	if err := validUserID(id); err != nil {
		return err
	}
	if err := password.Validate(in.NewPassword); err != nil {
		return err
	}
	if err := uc.api.ResetUserPassword(ctx, id, in.NewPassword); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("contraseña restablecida por administración")
	return nil
}

// UpdateProfile edita los datos de perfil; los campos vacíos no se envían.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id string, in dto.UserProfileUpdateRequest) (*entity.AdminUser, error) {
	if err := validUserID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.api.UpdateUserProfile(ctx, id, api.UserProfileUpdate{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		TaxID:       in.TaxID,
	})
}

func validUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Detail: "Identificador inválido"}
	}
	return nil
}
