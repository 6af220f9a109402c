package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seva-empresas/seva-admin/internal/application/ports"
	"github.com/seva-empresas/seva-admin/internal/domain"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
)

// fakeModeration doble de ports.ModerationAPI.
type fakeModeration struct {
	serviceRequests  []entity.ServiceRequest
	categoryRequests []entity.CategoryRequest
	block            bool // GetAllServiceRequests espera a que venza el contexto

	mu       sync.Mutex
	approved []int64
	rejected map[int64]string
}

func (f *fakeModeration) GetAllServiceRequests(ctx context.Context) []entity.ServiceRequest {
	if f.block {
		<-ctx.Done()
		return []entity.ServiceRequest{}
	}
	out := make([]entity.ServiceRequest, len(f.serviceRequests))
	copy(out, f.serviceRequests)
	return out
}

func (f *fakeModeration) ApproveServiceRequest(_ context.Context, id int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeModeration) RejectServiceRequest(_ context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejected == nil {
		f.rejected = map[int64]string{}
	}
	f.rejected[id] = reason
	return nil
}

func (f *fakeModeration) ListCategoryRequests(context.Context) ([]entity.CategoryRequest, error) {
	out := make([]entity.CategoryRequest, len(f.categoryRequests))
	copy(out, f.categoryRequests)
	return out, nil
}

func (f *fakeModeration) ApproveCategoryRequest(ctx context.Context, id int64, c string) error {
	return f.ApproveServiceRequest(ctx, id, c)
}

func (f *fakeModeration) RejectCategoryRequest(ctx context.Context, id int64, r string) error {
	return f.RejectServiceRequest(ctx, id, r)
}

// fakeUsers doble de ports.UserAdminAPI; cuenta llamadas y concurrencia de GetUser.
type fakeUsers struct {
	emails map[string]string
	delay  time.Duration

	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32

	listed   int
	searched string
	reset    map[string]string
	updated  api.UserProfileUpdate
}

func (f *fakeUsers) GetUser(ctx context.Context, id string) (*entity.AdminUser, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	email, ok := f.emails[id]
	if !ok {
		return nil, domain.NewAPIError(404, "Usuario no encontrado")
	}
	return &entity.AdminUser{ID: id, Email: email}, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]entity.AdminUser, error) {
	f.listed++
	return nil, nil
}

func (f *fakeUsers) SearchUsers(_ context.Context, q string) ([]entity.AdminUser, error) {
	f.searched = q
	return []entity.AdminUser{{ID: "1", Email: "ana@seva.ec"}}, nil
}

func (f *fakeUsers) ListRoles(context.Context) ([]entity.RoleDefinition, error) {
	return []entity.RoleDefinition{{ID: 1, Name: "admin"}}, nil
}

func (f *fakeUsers) ListPermissions(context.Context) ([]entity.Permission, error) {
	return nil, nil
}

func (f *fakeUsers) ToggleUserStatus(_ context.Context, id string) (*entity.AdminUser, error) {
	return &entity.AdminUser{ID: id, Active: false}, nil
}

func (f *fakeUsers) ResetUserPassword(_ context.Context, id, pw string) error {
	if f.reset == nil {
		f.reset = map[string]string{}
	}
	f.reset[id] = pw
	return nil
}

func (f *fakeUsers) UpdateUserProfile(_ context.Context, id string, in api.UserProfileUpdate) (*entity.AdminUser, error) {
	f.updated = in
	return &entity.AdminUser{ID: id, Name: in.Name, Email: in.Email}, nil
}

// fakeRenderer captura el último reporte.
type fakeRenderer struct {
	last *ports.ModerationReport
}

func (f *fakeRenderer) RenderModerationReport(_ context.Context, r *ports.ModerationReport) ([]byte, error) {
	f.last = r
	return []byte("%PDF-fake"), nil
}

// fakeCatalog doble de ports.CatalogAPI.
type fakeCatalog struct {
	services    []entity.Service
	listCalls   int
	lastQuery   *api.ServiceQuery
	lastCatIn   api.CategoryInput
	lastSvcIn   api.ServiceInput
	lastPropose api.ServiceRequestInput
}

func (f *fakeCatalog) ListCategories(context.Context) ([]entity.Category, error) { return nil, nil }
func (f *fakeCatalog) GetCategory(_ context.Context, id int64) (*entity.Category, error) {
	return &entity.Category{ID: id}, nil
}
func (f *fakeCatalog) CreateCategory(_ context.Context, in api.CategoryInput) (*entity.Category, error) {
	f.lastCatIn = in
	return &entity.Category{ID: 1, Name: in.Name, Status: in.Status}, nil
}
func (f *fakeCatalog) UpdateCategory(_ context.Context, id int64, in api.CategoryInput) (*entity.Category, error) {
	f.lastCatIn = in
	return &entity.Category{ID: id, Name: in.Name, Status: in.Status}, nil
}
func (f *fakeCatalog) DeleteCategory(context.Context, int64) error { return nil }
func (f *fakeCatalog) ListServices(context.Context) ([]entity.Service, error) {
	f.listCalls++
	return f.services, nil
}
func (f *fakeCatalog) FilteredServices(_ context.Context, q api.ServiceQuery) ([]entity.Service, error) {
	f.lastQuery = &q
	return f.services, nil
}
func (f *fakeCatalog) GetService(_ context.Context, id int64) (*entity.Service, error) {
	return &entity.Service{ID: id}, nil
}
func (f *fakeCatalog) CreateService(_ context.Context, in api.ServiceInput) (*entity.Service, error) {
	f.lastSvcIn = in
	return &entity.Service{ID: 9, Name: in.Name, Price: in.Price}, nil
}
func (f *fakeCatalog) UpdateService(_ context.Context, id int64, in api.ServiceInput) (*entity.Service, error) {
	f.lastSvcIn = in
	return &entity.Service{ID: id, Name: in.Name, Price: in.Price}, nil
}
func (f *fakeCatalog) DeleteService(context.Context, int64) error { return nil }
func (f *fakeCatalog) CreateServiceRequest(_ context.Context, in api.ServiceRequestInput) (*entity.ServiceRequest, error) {
	f.lastPropose = in
	return &entity.ServiceRequest{ID: 3, ServiceName: in.ServiceName, Status: entity.StatusPending}, nil
}
func (f *fakeCatalog) CreateCategoryRequest(_ context.Context, in api.CategoryRequestInput) (*entity.CategoryRequest, error) {
	return &entity.CategoryRequest{ID: 4, CategoryName: in.CategoryName, Status: entity.StatusPending}, nil
}

// fakeBooking doble de ports.BookingAPI.
type fakeBooking struct {
	lastIn       api.AvailabilityInput
	reservations []entity.Reservation
}

func (f *fakeBooking) ListAvailability(context.Context, int64) ([]entity.Availability, error) {
	return nil, nil
}
func (f *fakeBooking) CreateAvailability(_ context.Context, serviceID int64, in api.AvailabilityInput) (*entity.Availability, error) {
	f.lastIn = in
	return &entity.Availability{ID: 1, ServiceID: serviceID, StartsAt: in.StartsAt, EndsAt: in.EndsAt, Available: in.Available}, nil
}
func (f *fakeBooking) UpdateAvailability(_ context.Context, id int64, in api.AvailabilityInput) (*entity.Availability, error) {
	f.lastIn = in
	return &entity.Availability{ID: id}, nil
}
func (f *fakeBooking) DeleteAvailability(context.Context, int64) error { return nil }
func (f *fakeBooking) CreateReservation(_ context.Context, in api.ReservationInput) (*entity.Reservation, error) {
	r := entity.Reservation{ID: 11, ServiceID: in.ServiceID, AvailabilityID: in.AvailabilityID, Notes: in.Notes}
	f.reservations = append(f.reservations, r)
	return &r, nil
}
func (f *fakeBooking) ListReservations(context.Context) ([]entity.Reservation, error) {
	return f.reservations, nil
}

var (
	_ ports.ModerationAPI  = (*fakeModeration)(nil)
	_ ports.UserAdminAPI   = (*fakeUsers)(nil)
	_ ports.CatalogAPI     = (*fakeCatalog)(nil)
	_ ports.BookingAPI     = (*fakeBooking)(nil)
	_ ports.ReportRenderer = (*fakeRenderer)(nil)
)
