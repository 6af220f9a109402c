package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/session"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// LocalSessionUser key de Locals con el *entity.SessionUser vigente.
const LocalSessionUser = "session_user"

// sessionSource es lo único que el middleware necesita del coordinador.
type sessionSource interface {
	Snapshot() session.Snapshot
}

// RequireSession exige una sesión activa en el coordinador y deja el usuario en Locals.
func RequireSession(src sessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := src.Snapshot()
		if !snap.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: domain.ErrNotAuthenticated.Error()})
		}
		c.Locals(LocalSessionUser, snap.User)
		return c.Next()
	}
}

// RequireRole verifica que el rol efectivo esté entre los permitidos.
// Debe usarse DESPUÉS de RequireSession.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetSessionUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: domain.ErrNotAuthenticated.Error()})
		}
		for _, r := range allowed {
			if user.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Detail: domain.ErrForbidden.Error()})
	}
}

// GetSessionUser devuelve el usuario de la sesión (después de RequireSession).
func GetSessionUser(c *fiber.Ctx) *entity.SessionUser {
	u, _ := c.Locals(LocalSessionUser).(*entity.SessionUser)
	return u
}
