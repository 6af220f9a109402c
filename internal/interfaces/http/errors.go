package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/domain"
)

// statusFor traduce un error de aplicación al código HTTP de la consola.
func statusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotClient), errors.Is(err, domain.ErrAccountInactive):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, domain.ErrSuperseded):
		return fiber.StatusConflict
	}
	if apiErr, ok := domain.AsAPIError(err); ok {
		if apiErr.IsNetwork() {
			return fiber.StatusBadGateway
		}
		return apiErr.StatusCode
	}
	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		return fErr.Code
	}
	return fiber.StatusInternalServerError
}

// respondError escribe el sobre {detail} con el código que corresponde a err.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{Detail: domain.DetailOf(err)})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: detail})
}

// ErrorHandler manejador de último recurso de Fiber: rutas inexistentes, pánicos recuperados.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Detail: domain.DetailOf(err)})
	}
}
