package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
)

// paramID lee un identificador numérico de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Detail: "Identificador inválido"}
	}
	return id, nil
}

// filterConfig lee los selectores de filtro de la query (?date=&category=&company=&status=&custom_date=).
func filterConfig(c *fiber.Ctx) (filter.Config, error) {
	var cfg filter.Config
	if err := c.QueryParser(&cfg); err != nil {
		return cfg, &domain.ValidationError{Field: "query", Detail: "Filtros inválidos"}
	}
	return cfg, nil
}
