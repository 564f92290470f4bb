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

	appanalytics "github.com/jhoicas/consola-hardware/internal/application/analytics"
	"github.com/jhoicas/consola-hardware/internal/application/auth"
	"github.com/jhoicas/consola-hardware/internal/application/notifications"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/domain/repository"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/backend"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/consola-hardware/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/consola-hardware/internal/infrastructure/redis"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/resend"
	httpRouter "github.com/jhoicas/consola-hardware/internal/interfaces/http"
	"github.com/jhoicas/consola-hardware/pkg/config"
	"github.com/jhoicas/consola-hardware/pkg/logger"
	"github.com/jhoicas/consola-hardware/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando consola")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Alertas ya mostradas por usuario
	var seen repository.SeenRepository
	switch cfg.Seen.Store {
	case "redis":
		client, err := infraredis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		seen = infraredis.NewSeenRepository(client)
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		seen = postgres.NewSeenRepository(pool)
	default:
		seen = memory.NewSeenRepository()
	}
	log.Info().Str("store", cfg.Seen.Store).Msg("almacén de alertas vistas listo")

	api := backend.NewClient(cfg.Backend)

	// Poller + hub: el poller arranca en pausa y lo reanuda la primera pestaña visible.
	poller := notifications.NewPoller(api, nil, log.Component("poller"),
		notifications.WithInterval(cfg.Poller.Interval),
		notifications.StartPaused(),
	)
	hub := notifications.NewHub(seen, poller, log.Component("hub"))
	poller.SetPublisher(hub)
	if cfg.Poller.Enabled {
		go poller.Run(ctx)
	} else {
		log.Warn().Msg("poller de estado físico deshabilitado (POLLER_ENABLED=false)")
	}

	mailer := resend.NewMailer(cfg.Resend)
	if !mailer.Enabled() {
		log.Warn().Msg("RESEND_API_KEY o CONTACT_TO vacío: el formulario de contacto responderá 503")
	}

	empresaUC := usecase.NewEmpresaUseCase(api)
	hardwareUC := usecase.NewHardwareUseCase(api)
	usuarioUC := usecase.NewUsuarioUseCase(api, api)
	contactUC := usecase.NewContactUseCase(mailer)
	dashboardUC := appanalytics.NewDashboardUseCase(empresaUC, hardwareUC, poller)
	authUC := auth.NewAuthUseCase(api, cfg.Auth)

	views, err := httpRouter.NewRenderer(web.TemplatesFS())
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantillas")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(views, log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consola de Hardware",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		total, visible := hub.Len()
		snap := poller.Snapshot()
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"poller": fiber.Map{
				"enabled": cfg.Poller.Enabled,
				"paused":  poller.Paused(),
				"loaded":  snap.Loaded,
				"alerts":  snap.Count(),
			},
			"tabs": fiber.Map{"total": total, "visible": visible},
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		EmpresaUC:   empresaUC,
		UsuarioUC:   usuarioUC,
		HardwareUC:  hardwareUC,
		ContactUC:   contactUC,
		DashboardUC: dashboardUC,
		Status:      poller,
		Hub:         hub,
		Seen:        seen,
		Report:      infrapdf.NewHardwareReport(),
		Views:       views,
		Static:      web.StaticFS(),
		Sessions:    httpRouter.NewSessions(cfg.Session),
		Log:         log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
