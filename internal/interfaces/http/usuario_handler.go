package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
)

// UsuarioHandler CRUD de usuarios de una empresa. Las rutas van detrás de RequireEmpresaAccess.
type UsuarioHandler struct {
	uc  *usecase.UsuarioUseCase
	val *Validator
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, val *Validator) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, val: val}
}

// List godoc
// @Summary      Listar usuarios de la empresa
// @Tags         usuarios
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=[]dto.UsuarioResponse}
// @Router       /api/empresas/{id}/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "usuario_list", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         usuarios
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        uid   path  string  true  "ID del usuario"
// @Success      200   {object}  dto.Envelope{data=dto.UsuarioResponse}
// @Router       /api/empresas/{id}/usuarios/{uid} [get]
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"), c.Params("uid"))
	if err != nil {
		return fail(c, "usuario_get", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Sedes godoc
// @Summary      Opciones de sede para el desplegable del modal
// @Tags         usuarios
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=[]string}
// @Router       /api/empresas/{id}/sedes [get]
func (h *UsuarioHandler) Sedes(c *fiber.Ctx) error {
	out, err := h.uc.SedeOptions(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "usuario_sedes", err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la empresa"
// @Param        body  body  dto.UsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.Envelope{data=dto.UsuarioResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/empresas/{id}/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.UsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, "usuario_create", err)
	}
	return ok(c, fiber.StatusCreated, out, "Usuario creado correctamente")
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la empresa"
// @Param        uid   path  string              true  "ID del usuario"
// @Param        body  body  dto.UsuarioRequest  true  "Datos del usuario"
// @Success      200   {object}  dto.Envelope{data=dto.UsuarioResponse}
// @Router       /api/empresas/{id}/usuarios/{uid} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), c.Params("uid"), in)
	if err != nil {
		return fail(c, "usuario_update", err)
	}
	return ok(c, fiber.StatusOK, out, "Usuario actualizado correctamente")
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Param        uid  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope
// @Router       /api/empresas/{id}/usuarios/{uid} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.Params("uid")); err != nil {
		return fail(c, "usuario_delete", err)
	}
	return ok(c, fiber.StatusOK, nil, "Usuario eliminado correctamente")
}
