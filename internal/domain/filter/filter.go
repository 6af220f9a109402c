// Package filter deriva subconjuntos visibles y estadísticas de listados ya descargados.
// Las funciones son puras: nunca modifican la lista de entrada.
package filter

import (
	"strings"
	"time"
)

// DateFilter selector de rango de fechas.
type DateFilter string

const (
	DateAll    DateFilter = "all"
	DateToday  DateFilter = "today"
	DateWeek   DateFilter = "week"
	DateMonth  DateFilter = "month"
	DateYear   DateFilter = "year"
	DateCustom DateFilter = "custom"
)

// All es el valor de "sin restricción" para los selectores de texto.
const All = "all"

// Item es cualquier registro filtrable de un listado de administración.
type Item interface {
	FilterTimestamp() string // created_at / fecha_*
	FilterCategory() string  // id_categoria
	FilterCompany() string   // nombre_empresa / razon_social
	FilterStatus() string    // estado_aprobacion / estado
}

// Config selectores independientes. CustomDate (YYYY-MM-DD) solo aplica con DateCustom.
type Config struct {
	Date       DateFilter `json:"dateFilter" query:"date"`
	Category   string     `json:"categoryFilter" query:"category"`
	Company    string     `json:"companyFilter" query:"company"`
	Status     string     `json:"statusFilter" query:"status"`
	CustomDate string     `json:"customDate" query:"custom_date"`
}

func isAll(s string) bool { return s == "" || s == All }

// Inactive indica que ningún filtro restringe el listado.
func (c Config) Inactive() bool {
	return isAll(string(c.Date)) && isAll(c.Category) && isAll(c.Company) && isAll(c.Status)
}

// Apply devuelve los elementos que cumplen todos los filtros activos (AND).
// Si todos los filtros son "all" devuelve la misma slice de entrada sin copiarla;
// el llamador no debe modificarla.
func Apply[T Item](items []T, cfg Config, now time.Time) []T {
	if cfg.Inactive() {
		return items
	}
	match := dateMatcher(cfg, now)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !isAll(cfg.Category) && it.FilterCategory() != cfg.Category {
			continue
		}
		if !isAll(cfg.Company) && it.FilterCompany() != cfg.Company {
			continue
		}
		if !isAll(cfg.Status) && it.FilterStatus() != cfg.Status {
			continue
		}
		if match != nil && !match(it.FilterTimestamp()) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// dateMatcher devuelve nil cuando el filtro de fecha no restringe.
// Un elemento sin fecha interpretable nunca cumple un filtro de fecha activo.
func dateMatcher(cfg Config, now time.Time) func(string) bool {
	loc := now.Location()
	switch cfg.Date {
	case DateToday:
		today := now.Format(time.DateOnly)
		return func(raw string) bool {
			ts, ok := ParseTimestamp(raw, loc)
			return ok && ts.Format(time.DateOnly) == today
		}
	case DateWeek:
		since := now.Add(-7 * 24 * time.Hour)
		return func(raw string) bool {
			ts, ok := ParseTimestamp(raw, loc)
			return ok && !ts.Before(since)
		}
	case DateMonth:
		return func(raw string) bool {
			ts, ok := ParseTimestamp(raw, loc)
			return ok && ts.Year() == now.Year() && ts.Month() == now.Month()
		}
	case DateYear:
		return func(raw string) bool {
			ts, ok := ParseTimestamp(raw, loc)
			return ok && ts.Year() == now.Year()
		}
	case DateCustom:
		day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(cfg.CustomDate), loc)
		if err != nil {
			// fecha personalizada vacía o inválida: no restringe
			return nil
		}
		return func(raw string) bool {
			ts, ok := ParseTimestamp(raw, loc)
			if !ok {
				return false
			}
			y, m, d := ts.Date()
			return y == day.Year() && m == day.Month() && d == day.Day()
		}
	default:
		return nil
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp interpreta las fechas del backend. Las fechas sin zona se toman en loc;
// las que traen zona se convierten a loc para comparar días calendario locales.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts.In(loc), true
		}
	}
	return time.Time{}, false
}
