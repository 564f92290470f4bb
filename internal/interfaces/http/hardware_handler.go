package http

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/pdf"
)

// ReportGenerator genera el PDF del listado. Lo implementa *pdf.HardwareReport.
type ReportGenerator interface {
	Generate(ctx context.Context, in pdf.ReportInput) ([]byte, error)
}

// HardwareHandler API de hardware, fragmentos de la grilla y exportación.
type HardwareHandler struct {
	uc     *usecase.HardwareUseCase
	val    *Validator
	views  *Renderer
	report ReportGenerator
}

// NewHardwareHandler construye el handler.
func NewHardwareHandler(uc *usecase.HardwareUseCase, val *Validator, views *Renderer, report ReportGenerator) *HardwareHandler {
	return &HardwareHandler{uc: uc, val: val, views: views, report: report}
}

// cardView tarjeta de la grilla con su clase ya resuelta.
type cardView struct {
	entity.Hardware
	Class string
	Admin bool
}

// cardsView lote de tarjetas más el centinela del siguiente lote.
type cardsView struct {
	Items       []cardView
	Done        bool
	MoreURL     string // fragmento que pide el IntersectionObserver
	FallbackURL string // página con más tarjetas reveladas (enlace "Cargar más")
}

// gridView filtros + primer lote de la pantalla de hardware.
type gridView struct {
	PageURL   string
	CardsURL  string // fragmento que recarga la grilla al cambiar los filtros
	ExportURL string
	Criteria  hardware.Criteria
	Types     []string
	Classes   []string
	Total     int
	Cards     cardsView
}

func criteriaFrom(c *fiber.Ctx) hardware.Criteria {
	return hardware.Criteria{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
}

func criteriaQuery(cr hardware.Criteria) url.Values {
	q := url.Values{}
	if cr.Search != "" {
		q.Set("search", cr.Search)
	}
	if cr.Type != "" {
		q.Set("type", cr.Type)
	}
	if cr.Status != "" {
		q.Set("status", cr.Status)
	}
	return q
}

// cardsBase ruta del fragmento según el panel.
func cardsBase(c *fiber.Ctx) string {
	if IsAdmin(c) {
		return "/admin/hardware/cards"
	}
	return "/empresa/hardware/cards"
}

// pageBase ruta de la página con la grilla según el panel.
func pageBase(c *fiber.Ctx) string {
	if IsAdmin(c) {
		return "/admin/hardware"
	}
	return "/empresa"
}

func newCardsView(c *fiber.Ctx, b hardware.Batch, cr hardware.Criteria) cardsView {
	admin := IsAdmin(c)
	items := make([]cardView, 0, len(b.Items))
	for _, h := range b.Items {
		items = append(items, cardView{Hardware: h, Class: hardware.Classify(h), Admin: admin})
	}
	v := cardsView{Items: items, Done: b.Done}
	if !b.Done {
		more := criteriaQuery(cr)
		more.Set("offset", strconv.Itoa(b.Next))
		v.MoreURL = cardsBase(c) + "?" + more.Encode()

		fallback := criteriaQuery(cr)
		fallback.Set("shown", strconv.Itoa(b.Next+hardware.BatchSize))
		v.FallbackURL = pageBase(c) + "?" + fallback.Encode()
	}
	return v
}

// grid arma la vista inicial de la grilla para las páginas de admin y empresa.
func (h *HardwareHandler) grid(c *fiber.Ctx) (gridView, error) {
	cr := criteriaFrom(c)
	g, err := h.uc.Grid(c.UserContext(), empresaScope(c), cr, c.QueryInt("shown", hardware.BatchSize))
	if err != nil {
		return gridView{}, err
	}
	return gridView{
		PageURL:   pageBase(c),
		CardsURL:  cardsBase(c),
		ExportURL: "/api/hardware/export.pdf?" + criteriaQuery(cr).Encode(),
		Criteria:  cr,
		Types:     g.Types,
		Classes:   hardware.Classes,
		Total:     g.Batch.Total,
		Cards:     newCardsView(c, g.Batch, cr),
	}, nil
}

// List godoc
// @Summary      Listar hardware filtrado
// @Description  La empresa solo ve su propio hardware. Counts y types se calculan sin filtrar.
// @Tags         hardware
// @Produce      json
// @Param        search  query  string  false  "Texto libre (sin distinguir tildes ni mayúsculas)"
// @Param        type    query  string  false  "Tipo exacto"
// @Param        status  query  string  false  "available | out_of_stock | inactive | discontinued"
// @Success      200     {object}  dto.Envelope{data=dto.HardwareListResponse}
// @Failure      400     {object}  dto.Envelope
// @Router       /api/hardware [get]
func (h *HardwareHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), empresaScope(c), criteriaFrom(c))
	if err != nil {
		return fail(c, "hardware_list", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Get godoc
// @Summary      Obtener hardware
// @Tags         hardware
// @Produce      json
// @Param        id   path  string  true  "ID del hardware"
// @Success      200  {object}  dto.Envelope{data=dto.HardwareResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/hardware/{id} [get]
func (h *HardwareHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "hardware_get", err)
	}
	if scope := empresaScope(c); scope != "" && out.EmpresaID != scope {
		// Otra empresa: se responde como inexistente.
		return fail(c, "hardware_get", domain.ErrNotFound)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Create godoc
// @Summary      Crear hardware
// @Tags         hardware
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HardwareRequest  true  "Datos del hardware"
// @Success      201   {object}  dto.Envelope{data=dto.HardwareResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/hardware [post]
func (h *HardwareHandler) Create(c *fiber.Ctx) error {
	var in dto.HardwareRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "hardware_create", err)
	}
	return ok(c, fiber.StatusCreated, out, "Hardware creado correctamente")
}

// Update godoc
// @Summary      Actualizar hardware
// @Tags         hardware
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del hardware"
// @Param        body  body  dto.HardwareRequest  true  "Datos del hardware"
// @Success      200   {object}  dto.Envelope{data=dto.HardwareResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/hardware/{id} [put]
func (h *HardwareHandler) Update(c *fiber.Ctx) error {
	var in dto.HardwareRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, "hardware_update", err)
	}
	return ok(c, fiber.StatusOK, out, "Hardware actualizado correctamente")
}

// Toggle godoc
// @Summary      Activar o desactivar hardware
// @Tags         hardware
// @Produce      json
// @Param        id   path  string  true  "ID del hardware"
// @Success      200  {object}  dto.Envelope{data=dto.HardwareResponse}
// @Router       /api/hardware/{id}/toggle [post]
func (h *HardwareHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "hardware_toggle", err)
	}
	msg := "Hardware desactivado"
	if out.Active {
		msg = "Hardware activado"
	}
	return ok(c, fiber.StatusOK, out, msg)
}

// Delete godoc
// @Summary      Eliminar hardware
// @Tags         hardware
// @Produce      json
// @Param        id   path  string  true  "ID del hardware"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/hardware/{id} [delete]
func (h *HardwareHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "hardware_delete", err)
	}
	return ok(c, fiber.StatusOK, nil, "Hardware eliminado correctamente")
}

// Types godoc
// @Summary      Tipos de hardware
// @Description  Catálogo del backend más los tipos presentes en el hardware visible.
// @Tags         hardware
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]string}
// @Router       /api/hardware-types [get]
func (h *HardwareHandler) Types(c *fiber.Ctx) error {
	items, err := h.uc.Load(c.UserContext(), empresaScope(c))
	if err != nil {
		return fail(c, "hardware_types", err)
	}
	return ok(c, fiber.StatusOK, h.uc.Types(c.UserContext(), items), "")
}

// Cards devuelve el siguiente lote de tarjetas como fragmento HTML.
// GET /admin/hardware/cards?offset=N y /empresa/hardware/cards?offset=N
func (h *HardwareHandler) Cards(c *fiber.Ctx) error {
	cr := criteriaFrom(c)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	b, err := h.uc.Batch(c.UserContext(), empresaScope(c), cr, offset)
	if err != nil {
		status, _ := errorEnvelope(err)
		return c.Status(status).SendString("")
	}
	c.Set("X-Total-Count", strconv.Itoa(b.Total))
	return h.views.Partial(c, "hardware_cards", newCardsView(c, b, cr))
}

// Export godoc
// @Summary      Exportar el listado filtrado a PDF
// @Tags         hardware
// @Produce      application/pdf
// @Param        search  query  string  false  "Texto libre"
// @Param        type    query  string  false  "Tipo exacto"
// @Param        status  query  string  false  "Clase de estado"
// @Success      200     {file}  binary
// @Router       /api/hardware/export.pdf [get]
func (h *HardwareHandler) Export(c *fiber.Ctx) error {
	cr := criteriaFrom(c)
	items, counts, err := h.uc.Filtered(c.UserContext(), empresaScope(c), cr)
	if err != nil {
		return fail(c, "hardware_export", err)
	}
	scope := "Todas las empresas"
	if sess := GetSession(c); sess != nil && !IsAdmin(c) {
		scope = sess.EmpresaName
	}
	now := time.Now()
	doc, err := h.report.Generate(c.UserContext(), pdf.ReportInput{
		Scope:       scope,
		Criteria:    cr,
		Items:       items,
		Counts:      counts,
		GeneratedAt: now,
	})
	if err != nil {
		return fail(c, "hardware_export", fmt.Errorf("generando PDF: %w", err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="hardware-%s.pdf"`, now.Format("20060102-1504")))
	return c.Send(doc)
}
