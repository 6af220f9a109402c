package session

import (
	"strings"
	"time"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/domain/filter"
	"github.com/seva-empresas/seva-admin/internal/domain/role"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// MapProfile convierte el perfil del backend en el usuario de sesión. Cadenas de respaldo:
//
//	ID:      id -> user_id -> id_persona
//	Nombre:  nombre_persona -> nombre -> first_name [+ last_name] -> email
//	Empresa: nombre_empresa -> razon_social
//	Foto:    foto_perfil -> avatar_url
//
// El rol sale de role.Classify sobre roles. Provider status y solicitud quedan en none;
// los completa la consulta de verificación.
func MapProfile(p *api.Profile) entity.SessionUser {
	if p == nil {
		return entity.SessionUser{Role: entity.RoleClient, ProviderStatus: entity.ProviderStatusNone,
			ProviderApplication: entity.EmptyApplication()}
	}
	email := strings.TrimSpace(p.Email)
	u := entity.SessionUser{
		ID:                  firstNonBlank(p.ID.String(), p.UserID.String(), p.PersonID.String()),
		Name:                displayName(p, email),
		Email:               email,
		Role:                role.Classify(p.Roles),
		CompanyName:         firstNonBlank(p.CompanyName, p.LegalName),
		TaxID:               strings.TrimSpace(p.TaxID),
		ProfilePhotoPath:    firstNonBlank(p.PhotoPath, p.AvatarURL),
		ProviderStatus:      entity.ProviderStatusNone,
		ProviderApplication: entity.EmptyApplication(),
	}
	u.CreatedAt = parseTime(p.CreatedAt)
	u.UpdatedAt = parseTime(p.UpdatedAt)
	return u
}

func displayName(p *api.Profile, email string) string {
	if name := firstNonBlank(p.NombrePersona, p.Nombre); name != "" {
		return name
	}
	if first := strings.TrimSpace(p.FirstName); first != "" {
		return strings.TrimSpace(first + " " + strings.TrimSpace(p.LastName))
	}
	return email
}

// MapVerification traduce /providers/verification-status a la solicitud de la sesión.
// Documentos con el mismo tipo se quedan con el último reportado.
func MapVerification(v *api.VerificationStatus) entity.ProviderApplication {
	app := entity.EmptyApplication()
	if v == nil {
		return app
	}
	app.Status = mapStatus(v.Status)
	if t := parseTime(v.SubmittedAt); !t.IsZero() {
		app.SubmittedAt = &t
	}
	if t := parseTime(v.ReviewedAt); !t.IsZero() {
		app.ReviewedAt = &t
	}
	if app.Status == entity.ProviderStatusRejected {
		app.RejectionReason = firstNonBlank(v.RejectionReason, v.AdminComment)
	}
	for _, d := range v.Documents {
		if d.TypeName == "" {
			continue
		}
		app.Documents[d.TypeName] = entity.DocumentUpload{
			FileName:     d.FileName,
			DocumentType: d.TypeName,
			URL:          d.URL,
		}
	}
	return app
}

func mapStatus(raw string) entity.ProviderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pendiente", "pending", "en_revision", "en revisión":
		return entity.ProviderStatusPending
	case "aprobado", "aprobada", "approved", "verificado":
		return entity.ProviderStatusApproved
	case "rechazado", "rechazada", "rejected":
		return entity.ProviderStatusRejected
	default:
		return entity.ProviderStatusNone
	}
}

func parseTime(raw string) time.Time {
	t, ok := filter.ParseTimestamp(raw, time.UTC)
	if !ok {
		return time.Time{}
	}
	return t
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
