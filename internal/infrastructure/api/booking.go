package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seva-empresas/seva-admin/internal/domain/entity"
)

// AvailabilityInput franja a crear o editar.
type AvailabilityInput struct {
	StartsAt  time.Time        `json:"fecha_inicio"`
	EndsAt    time.Time        `json:"fecha_fin"`
	Available bool             `json:"disponible"`
	Price     *decimal.Decimal `json:"precio,omitempty"`
}

// ReservationInput solicitud de reserva.
type ReservationInput struct {
	ServiceID      int64  `json:"id_servicio"`
	AvailabilityID int64  `json:"id_disponibilidad"`
	Notes          string `json:"observacion,omitempty"`
}

// ListAvailability GET /services/{id}/availability.
func (c *Client) ListAvailability(ctx context.Context, serviceID int64) ([]entity.Availability, error) {
	resp, err := c.Do(ctx, Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/services/%d/availability", serviceID),
		Endpoint: "/services/{id}/availability",
	})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Availability](resp.Body)
}

// CreateAvailability POST /services/{id}/availability.
func (c *Client) CreateAvailability(ctx context.Context, serviceID int64, in AvailabilityInput) (*entity.Availability, error) {
	var out entity.Availability
	req := Request{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/services/%d/availability", serviceID),
		Body:     in,
		Endpoint: "/services/{id}/availability",
	}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAvailability PUT /availability/{id}.
func (c *Client) UpdateAvailability(ctx context.Context, id int64, in AvailabilityInput) (*entity.Availability, error) {
	var out entity.Availability
	req := Request{Method: http.MethodPut, Path: fmt.Sprintf("/availability/%d", id), Body: in, Endpoint: "/availability/{id}"}
	if err := c.call(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAvailability DELETE /availability/{id}.
func (c *Client) DeleteAvailability(ctx context.Context, id int64) error {
	req := Request{Method: http.MethodDelete, Path: fmt.Sprintf("/availability/%d", id), Endpoint: "/availability/{id}"}
	return c.call(ctx, req, nil)
}

// CreateReservation POST /reservations.
func (c *Client) CreateReservation(ctx context.Context, in ReservationInput) (*entity.Reservation, error) {
	var out entity.Reservation
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/reservations", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReservations GET /reservations: reservas del usuario autenticado.
func (c *Client) ListReservations(ctx context.Context) ([]entity.Reservation, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/reservations"})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Reservation](resp.Body)
}
