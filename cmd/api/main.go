package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/seva-empresas/seva-admin/internal/application/session"
	"github.com/seva-empresas/seva-admin/internal/application/usecase"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/api"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/metrics"
	infrapdf "github.com/seva-empresas/seva-admin/internal/infrastructure/pdf"
	"github.com/seva-empresas/seva-admin/internal/infrastructure/storage"
	httpRouter "github.com/seva-empresas/seva-admin/internal/interfaces/http"
	"github.com/seva-empresas/seva-admin/pkg/config"
	"github.com/seva-empresas/seva-admin/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando consola")

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesión")
	}
	defer closeStore()

	reg := metrics.NewRegistry()
	client, err := api.New(api.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimitQPS:   cfg.API.RateLimitQPS,
		RateLimitBurst: cfg.API.RateLimitBurst,
		Observer:       reg,
		Logger:         log.Zerolog(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	// El coordinador usa el cliente sin refresh; los casos de uso, el que refresca ante 401.
	coord := session.NewCoordinator(client, store, session.Config{
		ReloadTimeout: cfg.Session.ReloadTimeout,
	}, log.Zerolog())
	coord.Subscribe(func(s session.Snapshot) { reg.SetSessionActive(s.Authenticated()) })
	if err := coord.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo restaurar la sesión guardada")
	}
	authed := client.WithAuthRefresh(coord)

	moderationUC := usecase.NewModerationUseCase(authed, authed,
		infrapdf.NewMarotoReportGenerator(cfg.App.Name),
		usecase.ModerationConfig{
			LoadTimeout:           cfg.Session.ListLoadTimeout,
			EnrichmentConcurrency: cfg.API.EnrichmentConcurrency,
		}, log.Zerolog())
	userUC := usecase.NewUserUseCase(authed, log.Zerolog())
	catalogUC := usecase.NewCatalogUseCase(authed, cfg.Session.ListLoadTimeout, log.Zerolog())
	bookingUC := usecase.NewBookingUseCase(authed, cfg.Session.ListLoadTimeout, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * session.MaxUploadSize,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SEVA Empresas - consola",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:      coord,
		ModerationUC: moderationUC,
		UserUC:       userUC,
		CatalogUC:    catalogUC,
		BookingUC:    bookingUC,
		Metrics:      reg,
		AppName:      cfg.App.Name,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
