package entity

import "time"

// Role rol efectivo del usuario en la consola.
type Role string

// Roles válidos para SessionUser.
const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ProviderStatus estado del onboarding de proveedor.
type ProviderStatus string

const (
	ProviderStatusNone     ProviderStatus = "none"
	ProviderStatusPending  ProviderStatus = "pending"
	ProviderStatusApproved ProviderStatus = "approved"
	ProviderStatusRejected ProviderStatus = "rejected"
)

// DocumentUpload descriptor de un documento enviado en la solicitud de proveedor.
type DocumentUpload struct {
	FileName     string `json:"file_name"`
	DocumentType string `json:"document_type"`
	ContentType  string `json:"content_type,omitempty"`
	Size         int64  `json:"size"`
	URL          string `json:"url,omitempty"`
}

// ProviderApplication solicitud de proveedor tal como la conoce la sesión.
type ProviderApplication struct {
	Status          ProviderStatus            `json:"status"`
	SubmittedAt     *time.Time                `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time                `json:"reviewed_at,omitempty"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
	Documents       map[string]DocumentUpload `json:"documents,omitempty"`
}

// EmptyApplication es la solicitud por defecto de una cuenta sin onboarding.
func EmptyApplication() ProviderApplication {
	return ProviderApplication{Status: ProviderStatusNone, Documents: map[string]DocumentUpload{}}
}

// Clone copia la solicitud, incluido el mapa de documentos.
func (a ProviderApplication) Clone() ProviderApplication {
	out := a
	out.Documents = make(map[string]DocumentUpload, len(a.Documents))
	for k, v := range a.Documents {
		out.Documents[k] = v
	}
	return out
}

// SessionUser usuario autenticado de la consola.
type SessionUser struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Role                Role                `json:"role"`
	CompanyName         string              `json:"company_name,omitempty"`
	TaxID               string              `json:"tax_id,omitempty"` // RUC
	AccessToken         string              `json:"-"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	ProfilePhotoPath    string              `json:"profile_photo_path,omitempty"`
	ProviderStatus      ProviderStatus      `json:"provider_status"`
	ProviderApplication ProviderApplication `json:"provider_application"`
}
