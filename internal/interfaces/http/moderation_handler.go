package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
)

// ModerationHandler bandejas de solicitudes de servicio y de categoría (solo admin).
type ModerationHandler struct {
	uc *usecase.ModerationUseCase
}

// NewModerationHandler construye el handler.
func NewModerationHandler(uc *usecase.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{uc: uc}
}

// ListServiceRequests godoc
// @Summary      Solicitudes de servicio
// @Description  Descarga todas las solicitudes, completa correos de contacto y aplica los filtros.
// @Tags         moderation
// @Produce      json
// @Param        date         query  string  false  "all|today|week|month|year|custom"
// @Param        category     query  string  false  "ID de categoría"
// @Param        company      query  string  false  "Empresa"
// @Param        status       query  string  false  "Estado"
// @Param        custom_date  query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ListResponse[entity.ServiceRequest]
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/admin/service-requests [get]
func (h *ModerationHandler) ListServiceRequests(c *fiber.Ctx) error {
	cfg, err := filterConfig(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListServiceRequests(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveServiceRequest godoc
// @Summary      Aprobar solicitud de servicio
// @Tags         moderation
// @Accept       json
// @Param        id    path  int                true   "ID"
// @Param        body  body  dto.ReviewRequest  false  "Comentario"
// @Success      204
// @Router       /api/admin/service-requests/{id}/approve [post]
func (h *ModerationHandler) ApproveServiceRequest(c *fiber.Ctx) error {
	id, in, err := reviewInput[dto.ReviewRequest](c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ApproveServiceRequest(c.UserContext(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectServiceRequest godoc
// @Summary      Rechazar solicitud de servicio
// @Tags         moderation
// @Accept       json
// @Param        id    path  int                true  "ID"
// @Param        body  body  dto.RejectRequest  true  "Motivo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/service-requests/{id}/reject [post]
func (h *ModerationHandler) RejectServiceRequest(c *fiber.Ctx) error {
	id, in, err := reviewInput[dto.RejectRequest](c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RejectServiceRequest(c.UserContext(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ServiceRequestsReport godoc
// @Summary      Reporte PDF de solicitudes de servicio
// @Tags         moderation
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/admin/service-requests/report.pdf [get]
func (h *ModerationHandler) ServiceRequestsReport(c *fiber.Ctx) error {
	cfg, err := filterConfig(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.ServiceRequestsReport(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "solicitudes-servicio.pdf", pdf)
}

// ListCategoryRequests godoc
// @Summary      Solicitudes de categoría
// @Tags         moderation
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.CategoryRequest]
// @Router       /api/admin/category-requests [get]
func (h *ModerationHandler) ListCategoryRequests(c *fiber.Ctx) error {
	cfg, err := filterConfig(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListCategoryRequests(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApproveCategoryRequest godoc
// @Summary      Aprobar solicitud de categoría
// @Tags         moderation
// @Param        id  path  int  true  "ID"
// @Success      204
// @Router       /api/admin/category-requests/{id}/approve [post]
func (h *ModerationHandler) ApproveCategoryRequest(c *fiber.Ctx) error {
	id, in, err := reviewInput[dto.ReviewRequest](c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ApproveCategoryRequest(c.UserContext(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RejectCategoryRequest godoc
// @Summary      Rechazar solicitud de categoría
// @Tags         moderation
// @Param        id    path  int                true  "ID"
// @Param        body  body  dto.RejectRequest  true  "Motivo"
// @Success      204
// @Router       /api/admin/category-requests/{id}/reject [post]
func (h *ModerationHandler) RejectCategoryRequest(c *fiber.Ctx) error {
	id, in, err := reviewInput[dto.RejectRequest](c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RejectCategoryRequest(c.UserContext(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CategoryRequestsReport godoc
// @Summary      Reporte PDF de solicitudes de categoría
// @Tags         moderation
// @Produce      application/pdf
// @Router       /api/admin/category-requests/report.pdf [get]
func (h *ModerationHandler) CategoryRequestsReport(c *fiber.Ctx) error {
	cfg, err := filterConfig(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.CategoryRequestsReport(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "solicitudes-categoria.pdf", pdf)
}

// reviewInput lee el id de la ruta y el cuerpo opcional de la revisión.
func reviewInput[T any](c *fiber.Ctx) (int64, T, error) {
	var in T
	id, err := paramID(c, "id")
	if err != nil {
		return 0, in, err
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return 0, in, fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
		}
	}
	return id, in, nil
}

func sendPDF(c *fiber.Ctx, name string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(pdf)
}
