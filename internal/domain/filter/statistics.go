package filter

import (
	"strings"
	"time"
)

// Statistics resumen de un listado. Pending, Approved y Rejected se cuentan sobre
// la lista sin filtrar; solo Filtered sigue a los filtros activos.
type Statistics struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Compute calcula las estadísticas a partir de la lista completa y la filtrada.
func Compute[T Item](all, filtered []T) Statistics {
	s := Statistics{Total: len(all), Filtered: len(filtered)}
	for _, it := range all {
		switch strings.ToLower(strings.TrimSpace(it.FilterStatus())) {
		case "pendiente":
			s.Pending++
		case "aprobada", "aprobado":
			s.Approved++
		case "rechazada", "rechazado":
			s.Rejected++
		}
	}
	return s
}

// Result subconjunto visible más sus estadísticas.
type Result[T Item] struct {
	Items      []T        `json:"items"`
	Statistics Statistics `json:"statistics"`
}

// Derive aplica los filtros y calcula las estadísticas en un solo paso.
func Derive[T Item](items []T, cfg Config, now time.Time) Result[T] {
	visible := Apply(items, cfg, now)
	return Result[T]{Items: visible, Statistics: Compute(items, visible)}
}
