package http

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/metrics"
)

// Mensajes que ve el usuario en el toast.
const (
	msgInvalid     = "Datos inválidos"
	msgInvalidBody = "Cuerpo de la petición inválido"
	msgNotFound    = "Recurso no encontrado"
	msgConflict    = "Conflicto: el recurso fue modificado o ya existe"
	msgServer      = "Error del servidor, intente más tarde"
	msgUnavailable = "Servicio no disponible, intente más tarde"
	msgSession     = "Sesión expirada, inicie sesión nuevamente"
	msgForbidden   = "No tiene permisos para esta acción"
)

// ok responde {success:true, data, message}.
func ok(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data, Message: message})
}

// invalid responde 400 con los errores por campo.
func invalid(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Message: msgInvalid, Errors: fields})
}

// badBody responde 400 cuando el JSON no se pudo leer.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Message: msgInvalidBody})
}

// fail traduce un error de caso de uso a la respuesta de error del envelope.
// 401/403 llevan redirect a /login para que el cliente salga de la pantalla.
// op identifica la operación en la métrica de errores del backend.
func fail(c *fiber.Ctx, op string, err error) error {
	status, env := errorEnvelope(err)
	if status >= fiber.StatusInternalServerError || isUpstream(err) {
		metrics.BackendErrorsTotal.WithLabelValues(op).Inc()
	}
	return c.Status(status).JSON(env)
}

func errorEnvelope(err error) (int, dto.Envelope) {
	var apiErr *domain.APIError
	hasAPI := errors.As(err, &apiErr)

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.Envelope{Message: msgSession, Redirect: "/login"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.Envelope{Message: msgForbidden, Redirect: "/login"}
	case errors.Is(err, domain.ErrInvalidInput):
		env := dto.Envelope{Message: detail(err, domain.ErrInvalidInput, msgInvalid)}
		if hasAPI {
			env.Errors = apiErr.Fields
			if apiErr.Message != "" {
				env.Message = apiErr.Message
			}
		}
		return fiber.StatusBadRequest, env
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.Envelope{Message: msgNotFound}
	case errors.Is(err, domain.ErrConflict):
		env := dto.Envelope{Message: msgConflict}
		if hasAPI && apiErr.Message != "" {
			env.Message = apiErr.Message
		}
		return fiber.StatusConflict, env
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, dto.Envelope{Message: msgUnavailable}
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, dto.Envelope{Message: msgServer}
	default:
		return fiber.StatusInternalServerError, dto.Envelope{Message: msgServer}
	}
}

// detail extrae el texto que sigue al error centinela en "centinela: detalle".
func detail(err, sentinel error, fallback string) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		if d := strings.TrimSpace(msg[i+len(prefix):]); d != "" {
			r := []rune(d)
			return string(unicode.ToUpper(r[0])) + string(r[1:])
		}
	}
	return fallback
}

func isUpstream(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr)
}
