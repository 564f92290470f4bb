package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/consola-hardware/internal/interfaces/http"
	"github.com/jhoicas/consola-hardware/pkg/config"
	pkgjwt "github.com/jhoicas/consola-hardware/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testIssuer    = "consola-test"
	testCookie    = "consola_session"
	testEmpresaID = "e1"
)

var testSessionCfg = config.SessionConfig{
	Secret:     testSecret,
	CookieName: testCookie,
	Lifetime:   time.Hour,
	Issuer:     testIssuer,
}

func adminSession() pkgjwt.Session {
	return pkgjwt.Session{UserID: "admin", Email: "admin@consola.co", Name: "Admin", Role: "admin"}
}

func empresaSession() pkgjwt.Session {
	return pkgjwt.Session{
		UserID:      "u7",
		Email:       "ana@andina.co",
		Name:        "Ana",
		Role:        "empresa",
		EmpresaID:   testEmpresaID,
		EmpresaName: "Andina",
	}
}

// cookieFor firma la sesión y devuelve el valor del header Cookie.
func cookieFor(t *testing.T, s pkgjwt.Session) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, testIssuer, s, time.Hour)
	require.NoError(t, err, "debe generarse un token válido")
	return testCookie + "=" + tok
}

// buildTestApp app mínima con LoadSession + LoginRequired y un handler dummy
// que devuelve 200 si pasa los middlewares.
func buildTestApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.LoadSession(apphttp.NewSessions(testSessionCfg)))
	handler := func(c *fiber.Ctx) error {
		sess := apphttp.GetSession(c)
		return c.JSON(fiber.Map{"ok": true, "role": sess.Role, "admin": apphttp.IsAdmin(c)})
	}
	app.Get("/protected", apphttp.LoginRequired(role), handler)
	app.Get("/api/protected", apphttp.LoginRequired(role), handler)
	app.Get("/api/empresas/:id/usuarios", apphttp.LoginRequired(""), apphttp.RequireEmpresaAccess("id"), handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, cookie, accept string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "cuerpo: %s", body)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests LoginRequired
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginRequired_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", cookieFor(t, adminSession()), "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, true, body["admin"])
}

func TestLoginRequired_SinSesionPaginaRedirigeALogin(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/protected?x=1", "", "text/html")

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	loc := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/login?next="), "Location: %s", loc)
	assert.Contains(t, loc, "%2Fprotected%3Fx%3D1")
}

func TestLoginRequired_SinSesionAPIResponde401(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/api/protected", "", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No autorizado", decodeBody(t, resp)["error"])
}

func TestLoginRequired_AcceptJSONResponde401(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/protected", "", "application/json")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRequired_RolIncorrectoAPIResponde403(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/api/protected", cookieFor(t, empresaSession()), "")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Acceso denegado", decodeBody(t, resp)["error"])
}

func TestLoginRequired_RolIncorrectoPaginaVuelveAlInicio(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", cookieFor(t, empresaSession()), "text/html")

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginRequired_CookieFirmadaConOtroSecret(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testIssuer, adminSession(), time.Hour)
	require.NoError(t, err)

	app := buildTestApp("")
	resp := doRequest(t, app, "/api/protected", testCookie+"="+tok, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRequired_CookieExpirada(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, adminSession(), -time.Minute)
	require.NoError(t, err)

	app := buildTestApp("")
	resp := doRequest(t, app, "/api/protected", testCookie+"="+tok, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireEmpresaAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireEmpresaAccess_PropiaEmpresa(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/api/empresas/"+testEmpresaID+"/usuarios", cookieFor(t, empresaSession()), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireEmpresaAccess_OtraEmpresa(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/api/empresas/e2/usuarios", cookieFor(t, empresaSession()), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireEmpresaAccess_AdminCualquierEmpresa(t *testing.T) {
	app := buildTestApp("")
	resp := doRequest(t, app, "/api/empresas/e2/usuarios", cookieFor(t, adminSession()), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Sessions
// ──────────────────────────────────────────────────────────────────────────────

func TestSessions_WriteYClear(t *testing.T) {
	sessions := apphttp.NewSessions(testSessionCfg)
	app := fiber.New()
	app.Get("/in", func(c *fiber.Ctx) error { return sessions.Write(c, empresaSession()) })
	app.Get("/out", func(c *fiber.Ctx) error {
		sessions.Clear(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/in", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	sess, err := pkgjwt.Parse(testSecret, cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, empresaSession(), *sess)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/out", nil), -1)
	require.NoError(t, err)
	cookies = resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}
