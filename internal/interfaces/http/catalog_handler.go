package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
)

// CatalogHandler categorías, servicios y propuestas.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         catalog
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  entity.Category
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Accept       json
// @Param        body  body  dto.CategoryRequest  true  "Categoría"
// @Success      201   {object}  entity.Category
// @Router       /api/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Editar categoría
// @Tags         catalog
// @Param        id    path  int                  true  "ID"
// @Param        body  body  dto.CategoryRequest  true  "Categoría"
// @Success      200   {object}  entity.Category
// @Router       /api/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateCategory(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         catalog
// @Param        id  path  int  true  "ID"
// @Success      204
// @Router       /api/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteCategory(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchServices godoc
// @Summary      Buscar servicios
// @Tags         marketplace
// @Produce      json
// @Param        q            query  string  false  "Texto"
// @Param        category_id  query  int     false  "Categoría"
// @Param        provider_id  query  int     false  "Proveedor"
// @Param        min_price    query  string  false  "Precio mínimo"
// @Param        max_price    query  string  false  "Precio máximo"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {array}  entity.Service
// @Router       /api/services [get]
func (h *CatalogHandler) SearchServices(c *fiber.Ctx) error {
	var q dto.ServiceSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.uc.SearchServices(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ServiceOverview godoc
// @Summary      Servicios con filtros y estadísticas
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.Service]
// @Router       /api/admin/services [get]
func (h *CatalogHandler) ServiceOverview(c *fiber.Ctx) error {
	cfg, err := filterConfig(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ServiceOverview(c.UserContext(), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetService godoc
// @Summary      Obtener servicio
// @Tags         marketplace
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  entity.Service
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetService(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateService godoc
// @Summary      Publicar servicio
// @Tags         provider
// @Accept       json
// @Param        body  body  dto.ServiceRequest  true  "Servicio"
// @Success      201   {object}  entity.Service
// @Router       /api/provider/services [post]
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateService(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateService godoc
// @Summary      Editar servicio
// @Tags         provider
// @Param        id    path  int                 true  "ID"
// @Param        body  body  dto.ServiceRequest  true  "Servicio"
// @Success      200   {object}  entity.Service
// @Router       /api/provider/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateService(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteService godoc
// @Summary      Eliminar servicio
// @Tags         provider
// @Param        id  path  int  true  "ID"
// @Success      204
// @Router       /api/provider/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteService(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProposeService godoc
// @Summary      Proponer servicio para moderación
// @Tags         provider
// @Param        body  body  dto.NewServiceRequestRequest  true  "Propuesta"
// @Success      201   {object}  entity.ServiceRequest
// @Router       /api/provider/service-requests [post]
func (h *CatalogHandler) ProposeService(c *fiber.Ctx) error {
	var in dto.NewServiceRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ProposeService(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProposeCategory godoc
// @Summary      Proponer categoría
// @Tags         provider
// @Param        body  body  dto.NewCategoryRequestRequest  true  "Propuesta"
// @Success      201   {object}  entity.CategoryRequest
// @Router       /api/provider/category-requests [post]
func (h *CatalogHandler) ProposeCategory(c *fiber.Ctx) error {
	var in dto.NewCategoryRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.ProposeCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
