package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/consola-hardware/internal/application/analytics"
	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

// PageHandler páginas HTML de la consola. Los datos se piden al backend en el servidor;
// las altas y ediciones las hace el JavaScript contra /api.
type PageHandler struct {
	views     *Renderer
	sessions  *Sessions
	empresas  *usecase.EmpresaUseCase
	hardware  *HardwareHandler
	dashboard *appanalytics.DashboardUseCase
	log       *logger.Logger
}

// NewPageHandler construye el handler.
func NewPageHandler(views *Renderer, sessions *Sessions, empresas *usecase.EmpresaUseCase, hw *HardwareHandler, dashboard *appanalytics.DashboardUseCase, log *logger.Logger) *PageHandler {
	return &PageHandler{views: views, sessions: sessions, empresas: empresas, hardware: hw, dashboard: dashboard, log: log}
}

func (h *PageHandler) page(c *fiber.Ctx, title, active string, data any) PageData {
	return PageData{Title: title, Active: active, User: GetSession(c), Data: data, Open: c.Query("open")}
}

// failPage sesión del backend vencida: se cierra la de la consola y se vuelve al login.
// Otros errores pintan la página de error.
func (h *PageHandler) failPage(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		h.sessions.Clear(c)
		return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
	status, _ := errorEnvelope(err)
	if status == fiber.StatusNotFound {
		c.Status(status)
		return h.views.Render(c, "404.html", h.page(c, "No encontrado", "", nil))
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("no se pudo cargar la página")
	c.Status(status)
	return h.views.Render(c, "500.html", h.page(c, "Error", "", nil))
}

// Index GET /: landing con el formulario de contacto.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.views.Render(c, "index.html", h.page(c, "Inicio", "", nil))
}

// AdminDashboard GET /admin.
func (h *PageHandler) AdminDashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext(), "")
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "admin_dashboard.html", h.page(c, "Dashboard", "dashboard", summary))
}

// AdminStats GET /admin/stats.
func (h *PageHandler) AdminStats(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext(), "")
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "admin_stats.html", h.page(c, "Estadísticas", "stats", summary))
}

// AdminEmpresas GET /admin/empresas.
func (h *PageHandler) AdminEmpresas(c *fiber.Ctx) error {
	list, err := h.empresas.List(c.UserContext())
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "admin_empresas.html", h.page(c, "Empresas", "empresas", list))
}

// AdminHardware GET /admin/hardware?search=&type=&status=&open=<id>.
func (h *PageHandler) AdminHardware(c *fiber.Ctx) error {
	grid, err := h.hardware.grid(c)
	if err != nil {
		return h.failPage(c, err)
	}
	empresas, err := h.empresas.List(c.UserContext())
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "admin_hardware.html", h.page(c, "Hardware", "hardware", struct {
		Grid     gridView
		Empresas []dto.EmpresaResponse
	}{Grid: grid, Empresas: empresas}))
}

// AdminUsers GET /admin/users?empresa=<id>.
func (h *PageHandler) AdminUsers(c *fiber.Ctx) error {
	empresas, err := h.empresas.List(c.UserContext())
	if err != nil {
		return h.failPage(c, err)
	}
	selected := c.Query("empresa")
	var current *dto.EmpresaResponse
	for i := range empresas {
		if empresas[i].ID == selected {
			current = &empresas[i]
			break
		}
	}
	return h.views.Render(c, "admin_users.html", h.page(c, "Usuarios", "users", struct {
		Empresas []dto.EmpresaResponse
		Selected string
		Empresa  *dto.EmpresaResponse
	}{Empresas: empresas, Selected: selected, Empresa: current}))
}

// EmpresaDashboard GET /empresa: resumen y grilla del hardware propio.
func (h *PageHandler) EmpresaDashboard(c *fiber.Ctx) error {
	sess := GetSession(c)
	summary, err := h.dashboard.GetSummary(c.UserContext(), sess.EmpresaID)
	if err != nil {
		return h.failPage(c, err)
	}
	grid, err := h.hardware.grid(c)
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "empresa_dashboard.html", h.page(c, "Inicio", "dashboard", struct {
		Summary *dto.DashboardSummaryDTO
		Grid    gridView
	}{Summary: summary, Grid: grid}))
}

// EmpresaEmpleados GET /empresa/empleados.
func (h *PageHandler) EmpresaEmpleados(c *fiber.Ctx) error {
	emp, err := h.empresas.Get(c.UserContext(), GetSession(c).EmpresaID)
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "empresa_empleados.html", h.page(c, "Empleados", "empleados", emp))
}

// EmpresaPerfil GET /empresa/perfil.
func (h *PageHandler) EmpresaPerfil(c *fiber.Ctx) error {
	emp, err := h.empresas.Get(c.UserContext(), GetSession(c).EmpresaID)
	if err != nil {
		return h.failPage(c, err)
	}
	return h.views.Render(c, "empresa_perfil.html", h.page(c, "Perfil", "perfil", emp))
}

// NotFound última ruta: 404 en JSON o HTML según la petición.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{Message: msgNotFound})
	}
	c.Status(fiber.StatusNotFound)
	return h.views.Render(c, "404.html", h.page(c, "No encontrado", "", nil))
}
