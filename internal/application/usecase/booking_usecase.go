package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
	"github.com/seva-empresas/seva-admin/pkg/deadline"
)

// BookingUseCase disponibilidad de servicios y reservas.
type BookingUseCase struct {
	api         ports.BookingAPI
	log         zerolog.Logger
	loadTimeout time.Duration
	now         func() time.Time
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(api ports.BookingAPI, loadTimeout time.Duration, log zerolog.Logger) *BookingUseCase {
	return &BookingUseCase{
		api:         api,
		log:         log.With().Str("component", "booking").Logger(),
		loadTimeout: loadTimeout,
		now:         time.Now,
	}
}

// ListAvailability franjas de un servicio.
func (uc *BookingUseCase) ListAvailability(ctx context.Context, serviceID int64) ([]entity.Availability, error) {
	if err := validID(serviceID); err != nil {
		return nil, err
	}
	items, err := deadline.Run(ctx, uc.loadTimeout, func(ctx context.Context) ([]entity.Availability, error) {
		return uc.api.ListAvailability(ctx, serviceID)
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Availability{}
	}
	return items, nil
}

// CreateAvailability agrega una franja futura al servicio.
func (uc *BookingUseCase) CreateAvailability(ctx context.Context, serviceID int64, in dto.AvailabilityRequest) (*entity.Availability, error) {
	if err := validID(serviceID); err != nil {
		return nil, err
	}
	input, err := uc.toAvailabilityInput(in)
	if err != nil {
		return nil, err
	}
	a, err := uc.api.CreateAvailability(ctx, serviceID, input)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("service_id", serviceID).Time("starts_at", a.StartsAt).Msg("franja creada")
	return a, nil
}

// UpdateAvailability reemplaza una franja.
func (uc *BookingUseCase) UpdateAvailability(ctx context.Context, id int64, in dto.AvailabilityRequest) (*entity.Availability, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	input, err := uc.toAvailabilityInput(in)
	if err != nil {
		return nil, err
	}
	return uc.api.UpdateAvailability(ctx, id, input)
}

// DeleteAvailability elimina una franja.
func (uc *BookingUseCase) DeleteAvailability(ctx context.Context, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	return uc.api.DeleteAvailability(ctx, id)
}

func (uc *BookingUseCase) toAvailabilityInput(in dto.AvailabilityRequest) (api.AvailabilityInput, error) {
	if err := dto.Validate(in); err != nil {
		return api.AvailabilityInput{}, err
	}
	if !in.StartsAt.After(uc.now()) {
		return api.AvailabilityInput{}, &domain.ValidationError{Field: "starts_at", Detail: "La franja debe comenzar en el futuro"}
	}
	if in.Price != nil && in.Price.LessThanOrEqual(decimal.Zero) {
		return api.AvailabilityInput{}, &domain.ValidationError{Field: "price", Detail: "El precio debe ser mayor a cero"}
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return api.AvailabilityInput{
		StartsAt:  in.StartsAt.UTC(),
		EndsAt:    in.EndsAt.UTC(),
		Available: available,
		Price:     in.Price,
	}, nil
}

// Reserve reserva una franja de un servicio para el usuario en sesión.
func (uc *BookingUseCase) Reserve(ctx context.Context, in dto.ReservationRequest) (*entity.Reservation, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.api.CreateReservation(ctx, api.ReservationInput{
		ServiceID:      in.ServiceID,
		AvailabilityID: in.AvailabilityID,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", r.ID).Int64("service_id", r.ServiceID).Msg("reserva creada")
	return r, nil
}

// ListReservations reservas del usuario en sesión.
func (uc *BookingUseCase) ListReservations(ctx context.Context) ([]entity.Reservation, error) {
	items, err := deadline.Run(ctx, uc.loadTimeout, uc.api.ListReservations)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Reservation{}
	}
	return items, nil
}
