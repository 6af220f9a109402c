package entity

// AdminUser usuario tal como lo lista la administración.
type AdminUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre_persona,omitempty"`
	Email       string    `json:"email"`
	CompanyName string    `json:"nombre_empresa,omitempty"`
	TaxID       string    `json:"ruc,omitempty"`
	Phone       string    `json:"telefono,omitempty"`
	Roles       RoleNames `json:"roles,omitempty"`
	Active      bool      `json:"estado"`
	CreatedAt   string    `json:"created_at,omitempty"`
}

// RoleDefinition rol configurable del backend.
type RoleDefinition struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Permission permiso asignable a roles.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}
