package entity

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Category categoría de servicios del marketplace.
type Category struct {
	ID          int64  `json:"id_categoria"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Status      string `json:"estado,omitempty"` // activo, inactivo
	CreatedAt   string `json:"created_at,omitempty"`
}

// Service servicio publicado por un proveedor.
type Service struct {
	ID           int64           `json:"id_servicio"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion,omitempty"`
	Price        decimal.Decimal `json:"precio"`
	CategoryID   int64           `json:"id_categoria"`
	CategoryName string          `json:"nombre_categoria,omitempty"`
	ProviderID   int64           `json:"id_perfil,omitempty"`
	CompanyName  string          `json:"nombre_empresa,omitempty"`
	Status       string          `json:"estado,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

func (s Service) FilterTimestamp() string { return s.CreatedAt }
func (s Service) FilterCategory() string  { return formatID(s.CategoryID) }
func (s Service) FilterCompany() string   { return s.CompanyName }
func (s Service) FilterStatus() string    { return s.Status }

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
