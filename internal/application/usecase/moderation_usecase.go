package usecase

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
	"github.com/seva-empresas/seva-admin/pkg/deadline"
)

// ModerationConfig límites de las cargas de listados.
type ModerationConfig struct {
	LoadTimeout           time.Duration
	EnrichmentConcurrency int
	Now                   func() time.Time
}

// ModerationUseCase revisión de solicitudes de servicio y de categoría.
type ModerationUseCase struct {
	api         ports.ModerationAPI
	users       ports.UserDirectory
	reports     ports.ReportRenderer
	log         zerolog.Logger
	loadTimeout time.Duration
	concurrency int
	now         func() time.Time

	emailsMu sync.RWMutex
	emails   map[string]string // user id -> correo
}

// NewModerationUseCase construye el caso de uso. reports puede ser nil si no se exporta.
func NewModerationUseCase(api ports.ModerationAPI, users ports.UserDirectory, reports ports.ReportRenderer, cfg ModerationConfig, log zerolog.Logger) *ModerationUseCase {
	if cfg.EnrichmentConcurrency <= 0 {
		cfg.EnrichmentConcurrency = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ModerationUseCase{
		api:         api,
		users:       users,
		reports:     reports,
		log:         log.With().Str("component", "moderation").Logger(),
		loadTimeout: cfg.LoadTimeout,
		concurrency: cfg.EnrichmentConcurrency,
		now:         cfg.Now,
		emails:      make(map[string]string),
	}
}

// ListServiceRequests descubre el listado completo, completa correos faltantes y aplica filtros.
func (uc *ModerationUseCase) ListServiceRequests(ctx context.Context, cfg filter.Config) (*dto.ListResponse[entity.ServiceRequest], error) {
	items, err := uc.loadServiceRequests(ctx)
	if err != nil {
		return nil, err
	}
	res := filter.Derive(items, cfg, uc.now())
	return &dto.ListResponse[entity.ServiceRequest]{Items: res.Items, Statistics: res.Statistics, Filters: cfg}, nil
}

func (uc *ModerationUseCase) loadServiceRequests(ctx context.Context) ([]entity.ServiceRequest, error) {
	items, err := deadline.Run(ctx, uc.loadTimeout, func(ctx context.Context) ([]entity.ServiceRequest, error) {
		return uc.api.GetAllServiceRequests(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ContactEmail == "" {
			ids = append(ids, it.UserID)
		}
	}
	uc.resolveEmails(ctx, ids)
	for i := range items {
		if items[i].ContactEmail == "" {
			items[i].ContactEmail = uc.cachedEmail(items[i].UserID)
		}
	}
	return items, nil
}

// ListCategoryRequests igual que ListServiceRequests para las propuestas de categoría.
func (uc *ModerationUseCase) ListCategoryRequests(ctx context.Context, cfg filter.Config) (*dto.ListResponse[entity.CategoryRequest], error) {
	items, err := uc.loadCategoryRequests(ctx)
	if err != nil {
		return nil, err
	}
	res := filter.Derive(items, cfg, uc.now())
	return &dto.ListResponse[entity.CategoryRequest]{Items: res.Items, Statistics: res.Statistics, Filters: cfg}, nil
}

func (uc *ModerationUseCase) loadCategoryRequests(ctx context.Context) ([]entity.CategoryRequest, error) {
	items, err := deadline.Run(ctx, uc.loadTimeout, uc.api.ListCategoryRequests)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.CategoryRequest{}
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ContactEmail == "" {
			ids = append(ids, it.UserID)
		}
	}
	uc.resolveEmails(ctx, ids)
	for i := range items {
		if items[i].ContactEmail == "" {
			items[i].ContactEmail = uc.cachedEmail(items[i].UserID)
		}
	}
	return items, nil
}

// resolveEmails consulta GET /admin/users/{id} para los ids aún no conocidos, con
// concurrencia acotada. Cada fallo se registra y se omite.
func (uc *ModerationUseCase) resolveEmails(ctx context.Context, ids []string) {
	if uc.users == nil {
		return
	}
	seen := make(map[string]struct{}, len(ids))
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if uc.cachedEmail(id) == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return
	}

	err := deadline.Do(ctx, uc.loadTimeout, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(uc.concurrency)
		for _, id := range missing {
			g.Go(func() error {
				u, err := uc.users.GetUser(gctx, id)
				if err != nil {
					uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo obtener el correo del solicitante")
					return nil
				}
				if u != nil && u.Email != "" {
					uc.emailsMu.Lock()
					uc.emails[id] = u.Email
					uc.emailsMu.Unlock()
				}
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		uc.log.Warn().Err(err).Int("pending", len(missing)).Msg("enriquecimiento de correos incompleto")
	}
}

func (uc *ModerationUseCase) cachedEmail(id string) string {
	if id == "" {
		return ""
	}
	uc.emailsMu.RLock()
	defer uc.emailsMu.RUnlock()
	return uc.emails[id]
}

// ApproveServiceRequest aprueba una solicitud de servicio con un comentario opcional.
func (uc *ModerationUseCase) ApproveServiceRequest(ctx context.Context, id int64, in dto.ReviewRequest) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	if err := uc.api.ApproveServiceRequest(ctx, id, in.Comment); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Msg("solicitud de servicio aprobada")
	return nil
}

// RejectServiceRequest rechaza una solicitud de servicio; el motivo es obligatorio.
func (uc *ModerationUseCase) RejectServiceRequest(ctx context.Context, id int64, in dto.RejectRequest) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	if err := uc.api.RejectServiceRequest(ctx, id, in.Reason); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Msg("solicitud de servicio rechazada")
	return nil
}

// ApproveCategoryRequest aprueba una propuesta de categoría.
func (uc *ModerationUseCase) ApproveCategoryRequest(ctx context.Context, id int64, in dto.ReviewRequest) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	if err := uc.api.ApproveCategoryRequest(ctx, id, in.Comment); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Msg("solicitud de categoría aprobada")
	return nil
}

// RejectCategoryRequest rechaza una propuesta de categoría; el motivo es obligatorio.
func (uc *ModerationUseCase) RejectCategoryRequest(ctx context.Context, id int64, in dto.RejectRequest) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	if err := uc.api.RejectCategoryRequest(ctx, id, in.Reason); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Msg("solicitud de categoría rechazada")
	return nil
}

// ServiceRequestsReport exporta a PDF el listado filtrado de solicitudes de servicio.
func (uc *ModerationUseCase) ServiceRequestsReport(ctx context.Context, cfg filter.Config) ([]byte, error) {
	list, err := uc.ListServiceRequests(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rows := make([]ports.ReportRow, 0, len(list.Items))
	for _, it := range list.Items {
		rows = append(rows, ports.ReportRow{
			ID:       strconv.FormatInt(it.ID, 10),
			Title:    it.ServiceName,
			Company:  it.FilterCompany(),
			Email:    it.ContactEmail,
			Category: firstNonEmpty(it.CategoryName, it.FilterCategory()),
			Status:   it.FilterStatus(),
			Date:     uc.formatDate(it.FilterTimestamp()),
		})
	}
	return uc.render(ctx, "Solicitudes de servicio", cfg, list.Statistics, rows)
}

// CategoryRequestsReport exporta a PDF el listado filtrado de propuestas de categoría.
func (uc *ModerationUseCase) CategoryRequestsReport(ctx context.Context, cfg filter.Config) ([]byte, error) {
	list, err := uc.ListCategoryRequests(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rows := make([]ports.ReportRow, 0, len(list.Items))
	for _, it := range list.Items {
		rows = append(rows, ports.ReportRow{
			ID:      strconv.FormatInt(it.ID, 10),
			Title:   it.CategoryName,
			Company: it.FilterCompany(),
			Email:   it.ContactEmail,
			Status:  it.FilterStatus(),
			Date:    uc.formatDate(it.FilterTimestamp()),
		})
	}
	return uc.render(ctx, "Solicitudes de categoría", cfg, list.Statistics, rows)
}

func (uc *ModerationUseCase) render(ctx context.Context, title string, cfg filter.Config, stats filter.Statistics, rows []ports.ReportRow) ([]byte, error) {
	if uc.reports == nil {
		return nil, domain.NewAPIError(http.StatusNotImplemented, "La exportación de reportes no está disponible")
	}
	return uc.reports.RenderModerationReport(ctx, &ports.ModerationReport{
		Title:       title,
		GeneratedAt: uc.now(),
		Filters:     cfg,
		Statistics:  stats,
		Rows:        rows,
	})
}

func (uc *ModerationUseCase) formatDate(raw string) string {
	t, ok := filter.ParseTimestamp(raw, uc.now().Location())
	if !ok {
		return raw
	}
	return t.Format("02/01/2006")
}

func validID(id int64) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Detail: "Identificador inválido"}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
