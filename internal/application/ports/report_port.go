package ports

import (
	"context"
	"time"

	"github.com/seva-empresas/seva-admin/internal/domain/filter"
)

// ReportRow una fila del reporte de moderación, ya formateada.
type ReportRow struct {
	ID       string
	Title    string
	Company  string
	Email    string
	Category string
	Status   string
	Date     string
}

// ModerationReport listado filtrado de solicitudes con su cabecera de estadísticas.
type ModerationReport struct {
	Title       string
	GeneratedAt time.Time
	Filters     filter.Config
	Statistics  filter.Statistics
	Rows        []ReportRow
}

// ReportRenderer genera el documento del reporte (PDF).
type ReportRenderer interface {
	RenderModerationReport(ctx context.Context, report *ModerationReport) ([]byte, error)
}
