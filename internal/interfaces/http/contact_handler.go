package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
)

// ContactHandler formulario de contacto de la landing.
type ContactHandler struct {
	uc  *usecase.ContactUseCase
	val *Validator
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase, val *Validator) *ContactHandler {
	return &ContactHandler{uc: uc, val: val}
}

// Send godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contacto
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, subject, message"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      503   {object}  dto.Envelope
// @Router       /api/contact [post]
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	if err := h.uc.Send(c.UserContext(), in); err != nil {
		status, env := errorEnvelope(err)
		if status == fiber.StatusServiceUnavailable {
			env.Message = "El formulario de contacto no está disponible en este momento"
		}
		return c.Status(status).JSON(env)
	}
	return ok(c, fiber.StatusOK, nil, "Mensaje enviado. Le responderemos pronto.")
}
