// Package role resuelve el rol efectivo de la consola a partir de los roles del backend.
package role

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

var (
	adminMarkers    = []string{"admin", "administrador"}
	providerMarkers = []string{"provider", "proveedor"}
)

// Classify es total: siempre devuelve exactamente un rol. Admin tiene precedencia
// sobre provider; sin roles el resultado es client.
func Classify(names []string) entity.Role {
	lower := cases.Lower(language.Und)
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		normalized = append(normalized, strings.TrimSpace(lower.String(n)))
	}
	if containsAny(normalized, adminMarkers) {
		return entity.RoleAdmin
	}
	if containsAny(normalized, providerMarkers) {
		return entity.RoleProvider
	}
	return entity.RoleClient
}

func containsAny(values, markers []string) bool {
	for _, v := range values {
		for _, m := range markers {
			if v == m {
				return true
			}
		}
	}
	return false
}
