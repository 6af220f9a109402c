package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
)

// BookingHandler disponibilidad y reservas.
type BookingHandler struct {
	uc *usecase.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// ListAvailability godoc
// @Summary      Franjas de un servicio
// @Tags         booking
// @Param        id  path  int  true  "ID del servicio"
// @Success      200  {array}  entity.Availability
// @Router       /api/services/{id}/availability [get]
func (h *BookingHandler) ListAvailability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListAvailability(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAvailability godoc
// @Summary      Agregar franja
// @Tags         booking
// @Param        id    path  int                      true  "ID del servicio"
// @Param        body  body  dto.AvailabilityRequest  true  "Franja"
// @Success      201   {object}  entity.Availability
// @Router       /api/provider/services/{id}/availability [post]
func (h *BookingHandler) CreateAvailability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateAvailability(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAvailability godoc
// @Summary      Editar franja
// @Tags         booking
// @Param        id    path  int                      true  "ID de la franja"
// @Param        body  body  dto.AvailabilityRequest  true  "Franja"
// @Success      200   {object}  entity.Availability
// @Router       /api/provider/availability/{id} [put]
func (h *BookingHandler) UpdateAvailability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateAvailability(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAvailability godoc
// @Summary      Eliminar franja
// @Tags         booking
// @Param        id  path  int  true  "ID de la franja"
// @Success      204
// @Router       /api/provider/availability/{id} [delete]
func (h *BookingHandler) DeleteAvailability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteAvailability(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reserve godoc
// @Summary      Reservar una franja
// @Tags         booking
// @Param        body  body  dto.ReservationRequest  true  "Reserva"
// @Success      201   {object}  entity.Reservation
// @Router       /api/reservations [post]
func (h *BookingHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Reserve(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReservations godoc
// @Summary      Mis reservas
// @Tags         booking
// @Success      200  {array}  entity.Reservation
// @Router       /api/reservations [get]
func (h *BookingHandler) ListReservations(c *fiber.Ctx) error {
	out, err := h.uc.ListReservations(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
