package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/consola-hardware/internal/application/analytics"
)

// DashboardHandler KPIs del dashboard y la página de estadísticas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Empresas (total/activas), hardware por clase de estado, alertas del último chequeo
// @Description  y conteo por empresa. Un usuario empresa solo recibe su propio resumen.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardSummaryDTO}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), empresaScope(c))
	if err != nil {
		return fail(c, "dashboard_summary", err)
	}
	return ok(c, fiber.StatusOK, summary, "")
}
