package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
)

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar o buscar usuarios
// @Tags         users
// @Param        q  query  string  false  "Búsqueda"
// @Success      200  {array}  entity.AdminUser
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  entity.AdminUser
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Roles godoc
// @Summary      Catálogo de roles
// @Tags         users
// @Success      200  {array}  entity.RoleDefinition
// @Router       /api/admin/roles [get]
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	out, err := h.uc.Roles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Permissions godoc
// @Summary      Catálogo de permisos
// @Tags         users
// @Success      200  {array}  entity.Permission
// @Router       /api/admin/permissions [get]
func (h *UserHandler) Permissions(c *fiber.Ctx) error {
	out, err := h.uc.Permissions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleStatus godoc
// @Summary      Activar o desactivar cuenta
// @Tags         users
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  entity.AdminUser
// @Router       /api/admin/users/{id}/toggle-status [post]
func (h *UserHandler) ToggleStatus(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Asignar contraseña
// @Tags         users
// @Param        id    path  string                         true  "ID"
// @Param        body  body  dto.AdminPasswordResetRequest  true  "Contraseña"
// @Success      204
// @Router       /api/admin/users/{id}/password [post]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.AdminPasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.uc.ResetPassword(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateProfile godoc
// @Summary      Editar perfil de usuario
// @Tags         users
// @Param        id    path  string                        true  "ID"
// @Param        body  body  dto.UserProfileUpdateRequest  true  "Perfil"
// @Success      200   {object}  entity.AdminUser
// @Router       /api/admin/users/{id} [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UserProfileUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
