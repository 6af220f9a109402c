package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seva-empresas/seva-admin/internal/application/dto"
	"github.com/seva-empresas/seva-admin/internal/domain"
)

func newBooking(f *fakeBooking) *BookingUseCase {
	uc := NewBookingUseCase(f, time.Second, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestCreateAvailability_Validaciones(t *testing.T) {
	uc := newBooking(&fakeBooking{})
	start := fixedNow.Add(24 * time.Hour)
	negative := decimal.NewFromInt(-5)

	cases := []struct {
		name  string
		in    dto.AvailabilityRequest
		field string
	}{
		{"fin antes del inicio", dto.AvailabilityRequest{StartsAt: start, EndsAt: start.Add(-time.Hour)}, "ends_at"},
		{"en el pasado", dto.AvailabilityRequest{StartsAt: fixedNow.Add(-time.Hour), EndsAt: fixedNow}, "starts_at"},
		{"precio negativo", dto.AvailabilityRequest{StartsAt: start, EndsAt: start.Add(time.Hour), Price: &negative}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateAvailability(context.Background(), 3, tc.in)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "err = %v", err)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestCreateAvailability_DisponiblePorDefecto(t *testing.T) {
	f := &fakeBooking{}
	uc := newBooking(f)
	loc := time.FixedZone("ECT", -5*3600)
	start := time.Date(2024, 3, 20, 9, 0, 0, 0, loc)

	a, err := uc.CreateAvailability(context.Background(), 3, dto.AvailabilityRequest{StartsAt: start, EndsAt: start.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.True(t, a.Available)
	assert.EqualValues(t, 3, a.ServiceID)
	assert.Equal(t, time.UTC, f.lastIn.StartsAt.Location())
	assert.True(t, f.lastIn.StartsAt.Equal(start))

	closed := false
	_, err = uc.UpdateAvailability(context.Background(), 1, dto.AvailabilityRequest{StartsAt: start, EndsAt: start.Add(time.Hour), Available: &closed})
	require.NoError(t, err)
	assert.False(t, f.lastIn.Available)
}

func TestReserve(t *testing.T) {
	f := &fakeBooking{}
	uc := newBooking(f)

	_, err := uc.Reserve(context.Background(), dto.ReservationRequest{ServiceID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := uc.Reserve(context.Background(), dto.ReservationRequest{ServiceID: 1, AvailabilityID: 2, Notes: "Piso 3"})
	require.NoError(t, err)
	assert.EqualValues(t, 11, r.ID)

	list, err := uc.ListReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	slots, err := uc.ListAvailability(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, slots)
}
