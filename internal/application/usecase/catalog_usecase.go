package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
	"github.com/seva-empresas/seva-admin/pkg/deadline"
)

// CatalogUseCase categorías, servicios y propuestas de proveedores.
type CatalogUseCase struct {
	api         ports.CatalogAPI
	log         zerolog.Logger
	loadTimeout time.Duration
	now         func() time.Time
}

// NewCatalogUseCase construye el caso de uso. loadTimeout acota los listados (0 = sin límite).
func NewCatalogUseCase(api ports.CatalogAPI, loadTimeout time.Duration, log zerolog.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		api:         api,
		log:         log.With().Str("component", "catalog").Logger(),
		loadTimeout: loadTimeout,
		now:         time.Now,
	}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// ListCategories listado completo de categorías.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	items, err := deadline.Run(ctx, uc.loadTimeout, uc.api.ListCategories)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Category{}
	}
	return items, nil
}

// GetCategory obtiene una categoría por ID.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return uc.api.GetCategory(ctx, id)
}

// CreateCategory crea una categoría. Sin estado explícito queda activa.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*entity.Category, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.api.CreateCategory(ctx, toCategoryInput(in, "activo"))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", c.ID).Str("name", c.Name).Msg("categoría creada")
	return c, nil
}

// UpdateCategory reemplaza nombre, descripción y estado.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, in dto.CategoryRequest) (*entity.Category, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.api.UpdateCategory(ctx, id, toCategoryInput(in, ""))
}

// DeleteCategory elimina una categoría.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := uc.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Msg("categoría eliminada")
	return nil
}

func toCategoryInput(in dto.CategoryRequest, defaultStatus string) api.CategoryInput {
	status := in.Status
	if status == "" {
		status = defaultStatus
	}
	return api.CategoryInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Status:      status,
	}
}

// ── Servicios ─────────────────────────────────────────────────────────────────

// SearchServices listado unificado: sin criterios usa /services/, con criterios /services/filtered.
func (uc *CatalogUseCase) SearchServices(ctx context.Context, q dto.ServiceSearchQuery) ([]entity.Service, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	query, err := toServiceQuery(q)
	if err != nil {
		return nil, err
	}
	var items []entity.Service
	if query == (api.ServiceQuery{}) {
		items, err = deadline.Run(ctx, uc.loadTimeout, uc.api.ListServices)
	} else {
		items, err = deadline.Run(ctx, uc.loadTimeout, func(ctx context.Context) ([]entity.Service, error) {
			return uc.api.FilteredServices(ctx, query)
		})
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Service{}
	}
	return items, nil
}

// ServiceOverview listado de servicios con los filtros y estadísticas de la administración.
func (uc *CatalogUseCase) ServiceOverview(ctx context.Context, cfg filter.Config) (*dto.ListResponse[entity.Service], error) {
	items, err := deadline.Run(ctx, uc.loadTimeout, uc.api.ListServices)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Service{}
	}
	res := filter.Derive(items, cfg, uc.now())
	return &dto.ListResponse[entity.Service]{Items: res.Items, Statistics: res.Statistics, Filters: cfg}, nil
}

func toServiceQuery(q dto.ServiceSearchQuery) (api.ServiceQuery, error) {
	out := api.ServiceQuery{
		CategoryID: q.CategoryID,
		ProviderID: q.ProviderID,
		Search:     strings.TrimSpace(q.Search),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	var err error
	if out.MinPrice, err = parsePrice("min_price", q.MinPrice); err != nil {
		return api.ServiceQuery{}, err
	}
	if out.MaxPrice, err = parsePrice("max_price", q.MaxPrice); err != nil {
		return api.ServiceQuery{}, err
	}
	if out.MinPrice != nil && out.MaxPrice != nil && out.MinPrice.GreaterThan(*out.MaxPrice) {
		return api.ServiceQuery{}, &domain.ValidationError{Field: "min_price", Detail: "El precio mínimo no puede superar al máximo"}
	}
	return out, nil
}

func parsePrice(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil || d.IsNegative() {
		return nil, &domain.ValidationError{Field: field, Detail: "Precio inválido"}
	}
	return &d, nil
}

// GetService obtiene un servicio por ID.
func (uc *CatalogUseCase) GetService(ctx context.Context, id int64) (*entity.Service, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return uc.api.GetService(ctx, id)
}

// CreateService publica un servicio del proveedor en sesión.
func (uc *CatalogUseCase) CreateService(ctx context.Context, in dto.ServiceRequest) (*entity.Service, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.api.CreateService(ctx, toServiceInput(in))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", s.ID).Str("price", s.Price.StringFixed(2)).Msg("servicio creado")
	return s, nil
}

// UpdateService reemplaza los datos del servicio.
func (uc *CatalogUseCase) UpdateService(ctx context.Context, id int64, in dto.ServiceRequest) (*entity.Service, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.api.UpdateService(ctx, id, toServiceInput(in))
}

// DeleteService elimina un servicio.
func (uc *CatalogUseCase) DeleteService(ctx context.Context, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return uc.api.DeleteService(ctx, id)
}

func toServiceInput(in dto.ServiceRequest) api.ServiceInput {
	return api.ServiceInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		CategoryID:  in.CategoryID,
		Status:      in.Status,
	}
}

// ── Propuestas ────────────────────────────────────────────────────────────────

// ProposeService envía una solicitud de servicio a moderación.
func (uc *CatalogUseCase) ProposeService(ctx context.Context, in dto.NewServiceRequestRequest) (*entity.ServiceRequest, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.api.CreateServiceRequest(ctx, api.ServiceRequestInput{
		ServiceName: strings.TrimSpace(in.ServiceName),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
	})
}

// ProposeCategory envía una propuesta de categoría a moderación.
func (uc *CatalogUseCase) ProposeCategory(ctx context.Context, in dto.NewCategoryRequestRequest) (*entity.CategoryRequest, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.api.CreateCategoryRequest(ctx, api.CategoryRequestInput{
		CategoryName: strings.TrimSpace(in.CategoryName),
		Description:  strings.TrimSpace(in.Description),
	})
}
