package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability franja disponible de un servicio.
type Availability struct {
	ID        int64            `json:"id_disponibilidad"`
	ServiceID int64            `json:"id_servicio"`
	StartsAt  time.Time        `json:"fecha_inicio"`
	EndsAt    time.Time        `json:"fecha_fin"`
	Available bool             `json:"disponible"`
	Price     *decimal.Decimal `json:"precio,omitempty"`
}

// Reservation reserva de un cliente sobre una franja.
type Reservation struct {
	ID             int64           `json:"id_reserva"`
	ServiceID      int64           `json:"id_servicio"`
	AvailabilityID int64           `json:"id_disponibilidad"`
	UserID         string          `json:"user_id,omitempty"`
	Status         string          `json:"estado,omitempty"`
	Notes          string          `json:"observacion,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      string          `json:"created_at,omitempty"`
}
