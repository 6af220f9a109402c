package entity

// Estados de aprobación usados por el backend en solicitudes.
const (
	StatusPending   = "pendiente"
	StatusApproved  = "aprobada"
	StatusApprovedM = "aprobado"
	StatusRejected  = "rechazada"
	StatusRejectedM = "rechazado"
)

// ServiceRequest solicitud de un proveedor para publicar un servicio nuevo.
type ServiceRequest struct {
	ID           int64  `json:"id_solicitud"`
	ServiceName  string `json:"nombre_servicio"`
	Description  string `json:"descripcion,omitempty"`
	CategoryID   int64  `json:"id_categoria,omitempty"`
	CategoryName string `json:"nombre_categoria,omitempty"`
	ProviderID   int64  `json:"id_perfil,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	CompanyName  string `json:"nombre_empresa,omitempty"`
	LegalName    string `json:"razon_social,omitempty"`
	ContactEmail string `json:"email_contacto,omitempty"`
	Status       string `json:"estado_aprobacion,omitempty"`
	State        string `json:"estado,omitempty"`
	AdminComment string `json:"comentario_admin,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	RequestedAt  string `json:"fecha_solicitud,omitempty"`
}

func (r ServiceRequest) FilterTimestamp() string { return firstNonEmpty(r.CreatedAt, r.RequestedAt) }
func (r ServiceRequest) FilterCategory() string  { return formatID(r.CategoryID) }
func (r ServiceRequest) FilterCompany() string   { return firstNonEmpty(r.CompanyName, r.LegalName) }
func (r ServiceRequest) FilterStatus() string    { return firstNonEmpty(r.Status, r.State) }

// CategoryRequest solicitud de un proveedor para crear una categoría.
type CategoryRequest struct {
	ID           int64  `json:"id_solicitud"`
	CategoryName string `json:"nombre_categoria"`
	Description  string `json:"descripcion,omitempty"`
	ProviderID   int64  `json:"id_perfil,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	CompanyName  string `json:"nombre_empresa,omitempty"`
	LegalName    string `json:"razon_social,omitempty"`
	ContactEmail string `json:"email_contacto,omitempty"`
	Status       string `json:"estado_aprobacion,omitempty"`
	State        string `json:"estado,omitempty"`
	AdminComment string `json:"comentario_admin,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	RequestedAt  string `json:"fecha_solicitud,omitempty"`
}

func (r CategoryRequest) FilterTimestamp() string { return firstNonEmpty(r.CreatedAt, r.RequestedAt) }
func (r CategoryRequest) FilterCategory() string  { return "" }
func (r CategoryRequest) FilterCompany() string   { return firstNonEmpty(r.CompanyName, r.LegalName) }
func (r CategoryRequest) FilterStatus() string    { return firstNonEmpty(r.Status, r.State) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
