package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
)

// EmpresaHandler CRUD de empresas (solo administración).
type EmpresaHandler struct {
	uc  *usecase.EmpresaUseCase
	val *Validator
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase, val *Validator) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, val: val}
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.EmpresaResponse}
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, "empresa_list", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Get godoc
// @Summary      Obtener empresa (llena el modal de edición)
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=dto.EmpresaResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "empresa_get", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Create godoc
// @Summary      Crear empresa
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmpresaRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Envelope{data=dto.EmpresaResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.EmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "empresa_create", err)
	}
	return ok(c, fiber.StatusCreated, out, "Empresa creada correctamente")
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la empresa"
// @Param        body  body  dto.EmpresaRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.Envelope{data=dto.EmpresaResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/empresas/{id} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	var in dto.EmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, "empresa_update", err)
	}
	return ok(c, fiber.StatusOK, out, "Empresa actualizada correctamente")
}

// Toggle godoc
// @Summary      Activar o desactivar empresa
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=dto.EmpresaResponse}
// @Router       /api/empresas/{id}/toggle [post]
func (h *EmpresaHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "empresa_toggle", err)
	}
	msg := "Empresa desactivada"
	if out.Active {
		msg = "Empresa activada"
	}
	return ok(c, fiber.StatusOK, out, msg)
}

// Delete godoc
// @Summary      Eliminar empresa
// @Tags         empresas
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/empresas/{id} [delete]
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "empresa_delete", err)
	}
	return ok(c, fiber.StatusOK, nil, "Empresa eliminada correctamente")
}
