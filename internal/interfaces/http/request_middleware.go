package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/metrics"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

// RequestLogger registra cada petición con zerolog y alimenta las métricas HTTP.
// La ruta de las métricas es el patrón registrado (/api/empresas/:id), no la URL real.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de medir.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP())
		if sess := GetSession(c); sess != nil {
			ev.Str("user", sess.UserID)
		}
		ev.Msg("http")
		return nil
	}
}

// ErrorHandler respuesta por defecto de Fiber: JSON para /api y páginas de error para el resto.
func ErrorHandler(r *Renderer, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		if wantsJSON(c) || r == nil {
			msg := msgServer
			if code == fiber.StatusNotFound {
				msg = msgNotFound
			}
			return c.Status(code).JSON(dto.Envelope{Message: msg})
		}
		page := "500.html"
		if code == fiber.StatusNotFound {
			page = "404.html"
		}
		c.Status(code)
		return r.Render(c, page, PageData{Title: "Error", User: GetSession(c)})
	}
}
