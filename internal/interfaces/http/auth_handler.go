package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-hardware/internal/application/auth"
	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

// AuthHandler login, logout y usuario actual.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	sessions *Sessions
	val      *Validator
	views    *Renderer
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessions *Sessions, val *Validator, views *Renderer, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, val: val, views: views, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, user_type"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}

	sess, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		status, env := errorEnvelope(err)
		if status == fiber.StatusUnauthorized {
			// En el login un 401 es "credenciales inválidas", no sesión expirada.
			env = dto.Envelope{Message: "Correo o contraseña incorrectos"}
		}
		if status == fiber.StatusForbidden {
			env = dto.Envelope{Message: "El usuario no tiene una empresa asignada"}
		}
		h.log.Warn().Str("email", in.Email).Err(err).Msg("login rechazado")
		return c.Status(status).JSON(env)
	}

	if err := h.sessions.Write(c, *sess); err != nil {
		h.log.Error().Err(err).Msg("no se pudo firmar la sesión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{Message: msgServer})
	}
	h.log.Info().Str("user", sess.UserID).Str("role", sess.Role).Msg("login")
	return c.JSON(dto.LoginResponse{Success: true, Role: sess.Role, Redirect: auth.RedirectFor(sess.Role)})
}

// LoginPage GET /login. Un usuario ya autenticado va directo a su panel.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if sess := GetSession(c); sess != nil {
		return c.Redirect(auth.RedirectFor(sess.Role), fiber.StatusFound)
	}
	return h.views.Render(c, "login.html", PageData{Title: "Ingresar", Next: safeNext(c.Query("next"))})
}

// Logout GET /logout: borra la cookie y vuelve a la landing.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.Redirect("/", fiber.StatusFound)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	return ok(c, fiber.StatusOK, fiber.Map{
		"id":           sess.UserID,
		"email":        sess.Email,
		"name":         sess.Name,
		"role":         sess.Role,
		"empresa_id":   sess.EmpresaID,
		"empresa_name": sess.EmpresaName,
	}, "")
}
