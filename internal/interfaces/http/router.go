package http

import (
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/consola-hardware/internal/application/analytics"
	"github.com/jhoicas/consola-hardware/internal/application/auth"
	"github.com/jhoicas/consola-hardware/internal/application/notifications"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/repository"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	EmpresaUC   *usecase.EmpresaUseCase
	UsuarioUC   *usecase.UsuarioUseCase
	HardwareUC  *usecase.HardwareUseCase
	ContactUC   *usecase.ContactUseCase
	DashboardUC *appanalytics.DashboardUseCase

	Status StatusSource
	Hub    *notifications.Hub
	Seen   repository.SeenRepository
	Report ReportGenerator

	Views    *Renderer
	Static   fs.FS
	Sessions *Sessions
	Log      *logger.Logger
}

// Router registra páginas, API JSON, websocket y métricas.
func Router(app *fiber.App, deps RouterDeps) {
	val := NewValidator()
	log := deps.Log

	app.Use(RequestLogger(log.Component("http")))
	app.Use(LoadSession(deps.Sessions))

	if deps.Static != nil {
		app.Use("/static", filesystem.New(filesystem.Config{
			Root:   nethttp.FS(deps.Static),
			MaxAge: 3600,
		}))
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, val, deps.Views, log)
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC, val)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, val)
	hardwareHandler := NewHardwareHandler(deps.HardwareUC, val, deps.Views, deps.Report)
	contactHandler := NewContactHandler(deps.ContactUC, val)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	notificationHandler := NewNotificationHandler(deps.Status, deps.Hub, deps.HardwareUC, deps.Seen, val, log)
	pageHandler := NewPageHandler(deps.Views, deps.Sessions, deps.EmpresaUC, hardwareHandler, deps.DashboardUC, log)

	loggedIn := LoginRequired("")
	adminOnly := LoginRequired(entity.RoleAdmin)

	// Páginas públicas
	app.Get("/", pageHandler.Index)
	app.Get("/login", authHandler.LoginPage)
	app.Get("/logout", authHandler.Logout)

	// Panel de administración
	admin := app.Group("/admin", adminOnly)
	admin.Get("/", pageHandler.AdminDashboard)
	admin.Get("/empresas", pageHandler.AdminEmpresas)
	admin.Get("/hardware", pageHandler.AdminHardware)
	admin.Get("/hardware/cards", hardwareHandler.Cards)
	admin.Get("/users", pageHandler.AdminUsers)
	admin.Get("/stats", pageHandler.AdminStats)

	// Portal de empresa
	empresa := app.Group("/empresa", LoginRequired(entity.RoleEmpresa))
	empresa.Get("/", pageHandler.EmpresaDashboard)
	empresa.Get("/empleados", pageHandler.EmpresaEmpleados)
	empresa.Get("/perfil", pageHandler.EmpresaPerfil)
	empresa.Get("/hardware/cards", hardwareHandler.Cards)

	// API JSON
	api := app.Group("/api")
	api.Post("/login", authHandler.Login)
	api.Post("/contact", contactHandler.Send)
	api.Get("/me", loggedIn, authHandler.Me)
	api.Get("/dashboard", loggedIn, dashboardHandler.GetSummary)

	empresas := api.Group("/empresas", loggedIn)
	empresas.Get("/", adminOnly, empresaHandler.List)
	empresas.Post("/", adminOnly, empresaHandler.Create)
	empresas.Get("/:id", adminOnly, empresaHandler.Get)
	empresas.Put("/:id", adminOnly, empresaHandler.Update)
	empresas.Post("/:id/toggle", adminOnly, empresaHandler.Toggle)
	empresas.Delete("/:id", adminOnly, empresaHandler.Delete)

	// Usuarios: admin o la propia empresa
	access := RequireEmpresaAccess("id")
	empresas.Get("/:id/sedes", access, usuarioHandler.Sedes)
	empresas.Get("/:id/usuarios", access, usuarioHandler.List)
	empresas.Post("/:id/usuarios", access, usuarioHandler.Create)
	empresas.Get("/:id/usuarios/:uid", access, usuarioHandler.Get)
	empresas.Put("/:id/usuarios/:uid", access, usuarioHandler.Update)
	empresas.Delete("/:id/usuarios/:uid", access, usuarioHandler.Delete)

	hw := api.Group("/hardware", loggedIn)
	hw.Get("/", hardwareHandler.List)
	hw.Get("/export.pdf", hardwareHandler.Export)
	hw.Get("/:id", hardwareHandler.Get)
	hw.Post("/", adminOnly, hardwareHandler.Create)
	hw.Put("/:id", adminOnly, hardwareHandler.Update)
	hw.Post("/:id/toggle", adminOnly, hardwareHandler.Toggle)
	hw.Delete("/:id", adminOnly, hardwareHandler.Delete)
	api.Get("/hardware-types", loggedIn, hardwareHandler.Types)

	notif := api.Group("/notifications", loggedIn)
	notif.Get("/", notificationHandler.Get)
	notif.Post("/refresh", notificationHandler.Refresh)
	notif.Post("/seen", notificationHandler.MarkSeen)
	notif.Delete("/seen", notificationHandler.ResetSeen)

	app.Get("/ws/notifications", notificationHandler.Upgrade, websocket.New(notificationHandler.Stream))

	app.Use(pageHandler.NotFound)
}
