package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/seva-empresas/seva-admin/internal/application/session"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
	"github.com/seva-empresas/seva-admin/internal/domain/entity"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session      *session.Coordinator
	ModerationUC *usecase.ModerationUseCase
	UserUC       *usecase.UserUseCase
	CatalogUC    *usecase.CatalogUseCase
	BookingUC    *usecase.BookingUseCase
	Metrics      *metrics.Registry // opcional
	AppName      string
	Log          zerolog.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Sesión (público: login, registro y estado)
	sessionHandler := NewSessionHandler(deps.Session)
	sess := api.Group("/session")
	sess.Get("/", sessionHandler.Get)
	sess.Post("/login", sessionHandler.Login)
	sess.Post("/register", sessionHandler.Register)
	sess.Post("/logout", sessionHandler.Logout)
	sess.Post("/reload", sessionHandler.Reload)
	sess.Post("/reset-password", sessionHandler.ResetPassword)

	// Rutas protegidas: el middleware va por ruta o por prefijo, nunca en la raíz de /api,
	// para que una ruta inexistente siga respondiendo 404.
	auth := RequireSession(deps.Session)

	sess.Post("/photo", auth, sessionHandler.UploadPhoto)
	sess.Post("/provider-application", auth, RequireRole(entity.RoleClient), sessionHandler.SubmitApplication)
	sess.Post("/provider-application/resubmit", auth, RequireRole(entity.RoleClient), sessionHandler.ResubmitApplication)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	bookingHandler := NewBookingHandler(deps.BookingUC)

	// Marketplace (cualquier rol)
	api.Get("/categories", auth, catalogHandler.ListCategories)
	api.Get("/categories/:id", auth, catalogHandler.GetCategory)
	api.Get("/services", auth, catalogHandler.SearchServices)
	api.Get("/services/:id", auth, catalogHandler.GetService)
	api.Get("/services/:id/availability", auth, bookingHandler.ListAvailability)
	api.Get("/reservations", auth, bookingHandler.ListReservations)
	api.Post("/reservations", auth, bookingHandler.Reserve)

	// Proveedor
	provider := api.Group("/provider", auth, RequireRole(entity.RoleProvider, entity.RoleAdmin))
	provider.Post("/services", catalogHandler.CreateService)
	provider.Put("/services/:id", catalogHandler.UpdateService)
	provider.Delete("/services/:id", catalogHandler.DeleteService)
	provider.Post("/services/:id/availability", bookingHandler.CreateAvailability)
	provider.Put("/availability/:id", bookingHandler.UpdateAvailability)
	provider.Delete("/availability/:id", bookingHandler.DeleteAvailability)
	provider.Post("/service-requests", catalogHandler.ProposeService)
	provider.Post("/category-requests", catalogHandler.ProposeCategory)

	// Administración
	admin := api.Group("/admin", auth, RequireRole(entity.RoleAdmin))

	moderationHandler := NewModerationHandler(deps.ModerationUC)
	admin.Get("/service-requests", moderationHandler.ListServiceRequests)
	admin.Get("/service-requests/report.pdf", moderationHandler.ServiceRequestsReport)
	admin.Post("/service-requests/:id/approve", moderationHandler.ApproveServiceRequest)
	admin.Post("/service-requests/:id/reject", moderationHandler.RejectServiceRequest)
	admin.Get("/category-requests", moderationHandler.ListCategoryRequests)
	admin.Get("/category-requests/report.pdf", moderationHandler.CategoryRequestsReport)
	admin.Post("/category-requests/:id/approve", moderationHandler.ApproveCategoryRequest)
	admin.Post("/category-requests/:id/reject", moderationHandler.RejectCategoryRequest)

	admin.Get("/services", catalogHandler.ServiceOverview)
	admin.Post("/categories", catalogHandler.CreateCategory)
	admin.Put("/categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", catalogHandler.DeleteCategory)

	userHandler := NewUserHandler(deps.UserUC)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Put("/users/:id", userHandler.UpdateProfile)
	admin.Post("/users/:id/toggle-status", userHandler.ToggleStatus)
	admin.Post("/users/:id/password", userHandler.ResetPassword)
	admin.Get("/roles", userHandler.Roles)
	admin.Get("/permissions", userHandler.Permissions)
}
