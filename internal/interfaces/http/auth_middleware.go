package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/pkg/config"
	"github.com/jhoicas/consola-hardware/pkg/jwt"
)

// LocalSession clave de c.Locals con la *jwt.Session del usuario autenticado.
const LocalSession = "session"

// Sessions lee y escribe la cookie de sesión firmada.
type Sessions struct {
	cfg config.SessionConfig
}

// NewSessions construye el manejador de la cookie.
func NewSessions(cfg config.SessionConfig) *Sessions {
	return &Sessions{cfg: cfg}
}

// Write firma la sesión y la guarda en una cookie HTTP-only.
func (s *Sessions) Write(c *fiber.Ctx, sess jwt.Session) error {
	token, err := jwt.Generate(s.cfg.Secret, s.cfg.Issuer, sess, s.cfg.Lifetime)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.Lifetime),
		HTTPOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear borra la cookie.
func (s *Sessions) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Read devuelve la sesión de la cookie o nil si falta, expiró o la firma no coincide.
func (s *Sessions) Read(c *fiber.Ctx) *jwt.Session {
	token := c.Cookies(s.cfg.CookieName)
	if token == "" {
		return nil
	}
	sess, err := jwt.Parse(s.cfg.Secret, token)
	if err != nil {
		return nil
	}
	return sess
}

// LoadSession deja la sesión (si existe) en c.Locals y la sesión del backend en el
// contexto de usuario para que los proxies la reenvíen. No bloquea ninguna ruta.
func LoadSession(s *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess := s.Read(c); sess != nil {
			c.Locals(LocalSession, sess)
			if sess.BackendSession != "" {
				c.SetUserContext(ports.WithSession(c.UserContext(), sess.BackendSession))
			}
		}
		return c.Next()
	}
}

// LoginRequired exige sesión y, si role no está vacío, ese rol.
//   - Sin sesión: las páginas redirigen a /login?next=<url>; JSON responde 401 {error}.
//   - Rol distinto: las páginas redirigen a /; JSON responde 403 {error}.
//
// Debe usarse después de LoadSession.
func LoginRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			if wantsJSON(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autorizado"})
			}
			return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		if role != "" && sess.Role != role {
			if wantsJSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado"})
			}
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión cargada por LoadSession o nil.
func GetSession(c *fiber.Ctx) *jwt.Session {
	sess, _ := c.Locals(LocalSession).(*jwt.Session)
	return sess
}

// IsAdmin indica si el usuario actual es administrador.
func IsAdmin(c *fiber.Ctx) bool {
	sess := GetSession(c)
	return sess != nil && sess.Role == entity.RoleAdmin
}

// empresaScope empresa a la que se limita la consulta: vacío para admin, la propia para empresa.
func empresaScope(c *fiber.Ctx) string {
	sess := GetSession(c)
	if sess == nil || sess.Role == entity.RoleAdmin {
		return ""
	}
	return sess.EmpresaID
}

// wantsJSON distingue llamadas fetch de navegación: rutas /api, cuerpo JSON o Accept JSON.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	accept := c.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMEApplicationJSON) && !strings.Contains(accept, fiber.MIMETextHTML)
}

// safeNext valida el destino post-login: solo rutas locales.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
