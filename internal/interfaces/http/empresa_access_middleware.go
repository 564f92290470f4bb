package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// RequireEmpresaAccess deja pasar al administrador y a la empresa cuyo id coincide con el
// parámetro de ruta param. Debe usarse después de LoginRequired.
//
// Comportamiento:
//   - 403 {error} si la sesión es de otra empresa.
//   - 401 {error} si no hay sesión (LoginRequired debería haberlo cortado antes).
func RequireEmpresaAccess(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autorizado"})
		}
		if sess.Role == entity.RoleAdmin {
			return c.Next()
		}
		if sess.EmpresaID == "" || sess.EmpresaID != c.Params(param) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado"})
		}
		return c.Next()
	}
}
