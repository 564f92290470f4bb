package http_test

import (
	"context"
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
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/consola-hardware/internal/application/analytics"
	"github.com/jhoicas/consola-hardware/internal/application/auth"
	"github.com/jhoicas/consola-hardware/internal/application/notifications"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/backend"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/memory"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/resend"
	apphttp "github.com/jhoicas/consola-hardware/internal/interfaces/http"
	"github.com/jhoicas/consola-hardware/pkg/config"
	"github.com/jhoicas/consola-hardware/pkg/logger"
	"github.com/jhoicas/consola-hardware/web"
)

const (
	fixtureHardware = `{"success":true,"data":[
		{"_id":"1","nombre":"Router Norte","tipo":"router","activa":true,"empresa_id":"e1","empresa_nombre":"Andina","sede":"Norte",
			"datos":{"datos":{"brand":"Cisco","price":"120.50","stock":3,"status":"available"}}},
		{"_id":"2","nombre":"Switch Norte","tipo":"switch","activa":true,"empresa_id":"e1","empresa_nombre":"Andina","sede":"Norte",
			"datos":{"datos":{"brand":"HP","price":"80","stock":0,"status":"available"}}},
		{"_id":"3","nombre":"Cámara Lobby","tipo":"camara","activa":false,"empresa_id":"e1","empresa_nombre":"Andina","sede":"Norte",
			"physical_status":{"estado":"inactivo"},"datos":{"brand":"Axis","price":"45","stock":1,"status":"available"}},
		{"_id":"4","nombre":"Servidor","tipo":"servidor","activa":true,"empresa_id":"e1","empresa_nombre":"Andina","sede":"Centro",
			"datos":"{\"datos\":{\"brand\":\"Dell\",\"price\":900,\"stock\":1,\"status\":\"discontinued\"}}"},
		{"_id":"5","nombre":"Router Sur","tipo":"router","activa":true,"empresa_id":"e2","empresa_nombre":"Sur","sede":"Principal",
			"physical_status":"inactivo","datos":{"datos":{"brand":"Cisco","price":"110","stock":2,"status":"available"}}}
	]}`
	fixtureEmpresas = `{"success":true,"data":[
		{"_id":"e1","nombre":"Andina","email":"info@andina.co","ubicacion":"Bogotá","sedes":["Norte","Centro"],"activa":true},
		{"_id":"e2","nombre":"Sur","email":"info@sur.co","sedes":[],"activa":true}
	]}`
	// La tercera alerta dice "Andina" pero es de otra empresa: el alcance va por ids.
	fixtureStatus = `{"success":true,"data":{"inactive_hardware":[
		{"hardware_id":"3","hardware_nombre":"Cámara Lobby","empresa_nombre":"Andina","sede_nombre":"Norte"},
		{"hardware_id":"5","hardware_nombre":"Router Sur","empresa_nombre":"Sur","sede_nombre":"Principal"},
		{"hardware_id":"h9","hardware_nombre":"Sensor Patio","empresa_id":"e2","empresa_nombre":"Andina","sede_nombre":"Patio"}
	]}}`
	fixtureTypes = `{"success":true,"data":[{"_id":"t1","nombre":"lector"},{"_id":"t2","nombre":"Router"}]}`
)

// filterEmpresa deja en el fixture de hardware solo los de la empresa.
func filterEmpresa(t *testing.T, empresaID string) string {
	t.Helper()
	var env struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(fixtureHardware), &env))
	out := make([]map[string]any, 0, len(env.Data))
	for _, h := range env.Data {
		if h["empresa_id"] == empresaID {
			out = append(out, h)
		}
	}
	b, err := json.Marshal(map[string]any{"success": true, "data": map[string]any{"hardware": out}})
	require.NoError(t, err)
	return string(b)
}

// fakeBackend responde con los fixtures y registra las peticiones de escritura.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	byEmpresa := map[string]string{"e1": filterEmpresa(t, "e1"), "e2": filterEmpresa(t, "e2")}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/hardware/all-including-inactive", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, fixtureHardware)
	})
	for id, body := range byEmpresa {
		body := body
		mux.HandleFunc("/api/hardware/empresa/"+id+"/including-inactive", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
	}
	mux.HandleFunc("/api/hardware-types", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, fixtureTypes)
	})
	mux.HandleFunc("/api/hardware/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			_, _ = io.WriteString(w, `{"success":true,"message":"eliminado"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"_id":"1","nombre":"Router Norte","tipo":"router","activa":true,"empresa_id":"e1","datos":{"datos":{"stock":3,"status":"available"}}}}`)
	})
	mux.HandleFunc("/api/hardware/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"_id":"5","nombre":"Router Sur","tipo":"router","activa":true,"empresa_id":"e2","datos":{"datos":{"stock":2,"status":"available"}}}}`)
	})
	mux.HandleFunc("/api/hardware/physical-status/check", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, fixtureStatus)
	})
	mux.HandleFunc("/api/empresas", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			in["_id"] = "e3"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": in})
			return
		}
		_, _ = io.WriteString(w, fixtureEmpresas)
	})
	mux.HandleFunc("/api/empresas/e1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"_id":"e1","nombre":"Andina","email":"info@andina.co","sedes":["Norte","Centro"],"activa":true}}`)
	})
	mux.HandleFunc("/api/empresas/e9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Empresa no encontrada"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	app    *fiber.App
	poller *notifications.Poller
}

// newTestEnv arma la consola completa contra el backend falso, con login local.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	srv := fakeBackend(t)
	log := logger.Nop()

	api := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, SessionCookie: "session", Timeout: 2 * time.Second})
	seen := memory.NewSeenRepository()
	poller := notifications.NewPoller(api, nil, log, notifications.StartPaused())
	hub := notifications.NewHub(seen, poller, log)
	poller.SetPublisher(hub)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	empresaUC := usecase.NewEmpresaUseCase(api)
	hardwareUC := usecase.NewHardwareUseCase(api)

	views, err := apphttp.NewRenderer(web.TemplatesFS())
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(views, log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(api, config.AuthConfig{
			Mode:              auth.ModeLocal,
			AdminEmail:        "admin@consola.co",
			AdminPasswordHash: string(hash),
			AdminName:         "Admin",
		}),
		EmpresaUC:   empresaUC,
		UsuarioUC:   usecase.NewUsuarioUseCase(api, api),
		HardwareUC:  hardwareUC,
		ContactUC:   usecase.NewContactUseCase(resend.NewMailer(config.ResendConfig{})),
		DashboardUC: appanalytics.NewDashboardUseCase(empresaUC, hardwareUC, poller),
		Status:      poller,
		Hub:         hub,
		Seen:        seen,
		Report:      pdf.NewHardwareReport(),
		Views:       views,
		Static:      web.StaticFS(),
		Sessions:    apphttp.NewSessions(testSessionCfg),
		Log:         log,
	})
	return testEnv{app: app, poller: poller}
}

func (e testEnv) do(t *testing.T, method, path, body, cookie string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_LocalOK_EscribeCookie(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/login", `{"email":"ADMIN@consola.co","password":"secreto123"}`, "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "/admin", body["redirect"])

	var found bool
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			found = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found, "debe escribirse la cookie de sesión")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/login", `{"email":"admin@consola.co","password":"otra"}`, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Correo o contraseña incorrectos", decodeBody(t, resp)["message"])
	assert.Empty(t, resp.Cookies())
}

func TestLogin_EmailInvalido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/login", `{"email":"no-es-email","password":"x"}`, "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs, ok := decodeBody(t, resp)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
}

func TestLoginPage_ConSesionRedirigeAlPanel(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/login", "", cookieFor(t, empresaSession()))

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/empresa", resp.Header.Get("Location"))
}

func TestMe_DevuelveSesion(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/me", "", cookieFor(t, empresaSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Andina", data["empresa_name"])
	assert.Equal(t, "empresa", data["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresas_ListAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/empresas", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].([]any)
	require.Len(t, data, 2)
	sur := data[1].(map[string]any)
	assert.Equal(t, []any{"Principal"}, sur["sede_options"], "sin sedes se ofrece la sede por defecto")
}

func TestEmpresas_ListEmpresaProhibido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/empresas", "", cookieFor(t, empresaSession()))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestEmpresas_Create(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/empresas",
		`{"name":"  Nueva  ","email":"nueva@empresa.co","sedes":["Norte"]}`, cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "e3", body["data"].(map[string]any)["id"])
}

func TestEmpresas_CreateInvalida(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/empresas", `{"name":"","email":"x"}`, cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs := decodeBody(t, resp)["errors"].(map[string]any)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
}

func TestEmpresas_GetNoExiste(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/empresas/e9", "", cookieFor(t, adminSession()))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hardware
// ──────────────────────────────────────────────────────────────────────────────

func TestHardware_ListEmpresaSoloPropio(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/hardware", "", cookieFor(t, empresaSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 4, data["total"])
	for _, it := range data["items"].([]any) {
		assert.Equal(t, testEmpresaID, it.(map[string]any)["empresa_id"])
	}
}

func TestHardware_ListFiltroEstado(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/hardware?status=inactive", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	items := data["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Cámara Lobby", items[0].(map[string]any)["name"])
	counts := data["counts"].(map[string]any)
	assert.EqualValues(t, 2, counts["available"], "los contadores no dependen del filtro")
}

func TestHardware_ListEstadoDesconocido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/hardware?status=roto", "", cookieFor(t, adminSession()))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHardware_GetDeOtraEmpresaEsNoEncontrado(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/hardware/5", "", cookieFor(t, empresaSession()))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/hardware/1", "", cookieFor(t, empresaSession()))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHardware_CreateSoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/hardware", `{"name":"X"}`, cookieFor(t, empresaSession()))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestHardware_DeleteSoloAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodDelete, "/api/hardware/1", "", cookieFor(t, empresaSession()))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/hardware/1", "", cookieFor(t, adminSession()))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hardware eliminado correctamente", decodeBody(t, resp)["message"])
}

func TestHardware_TiposConCatalogo(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/hardware-types", "", cookieFor(t, empresaSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].([]any)
	assert.Equal(t, []any{"lector", "Router", "switch", "camara", "servidor"}, data)
}

func TestHardware_BusquedaSinResultados(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/hardware?search=zzz", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := readString(t, resp)
	assert.Contains(t, html, "No hay hardware que coincida con los filtros.")
	assert.Equal(t, 0, strings.Count(html, `class="hw-card`))
	assert.Contains(t, html, "0 equipos")
}

func TestHardware_CardsFiltradasDesdeElPrimerLote(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/hardware/cards?offset=0&type=router", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
	html := readString(t, resp)
	assert.Equal(t, 2, strings.Count(html, `class="hw-card`))
	assert.NotContains(t, html, "sentinel")
}

func TestHardware_CardsPrimerLoteYCentinela(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/hardware/cards?offset=0", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	html := readString(t, resp)
	assert.Equal(t, 3, strings.Count(html, `class="hw-card`))
	assert.Contains(t, html, `data-next="/admin/hardware/cards?offset=3"`)
	assert.Contains(t, html, `href="/admin/hardware?shown=6"`)
}

func TestHardware_CardsUltimoLoteSinCentinela(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/hardware/cards?offset=3", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := readString(t, resp)
	assert.Equal(t, 2, strings.Count(html, `class="hw-card`))
	assert.NotContains(t, html, "sentinel")
}

func TestHardware_CardsSinSesionRedirige(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/empresa/hardware/cards?offset=3", "", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestHardware_ExportPDF(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/hardware/export.pdf?type=router", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="hardware-`)
	body := readString(t, resp)
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifications_GetFiltraPorEmpresa(t *testing.T) {
	env := newTestEnv(t)
	env.poller.Poll(context.Background())

	resp := env.do(t, http.MethodGet, "/api/notifications", "", cookieFor(t, adminSession()))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 3, data["count"])
	assert.Equal(t, true, data["loaded"])

	resp = env.do(t, http.MethodGet, "/api/notifications", "", cookieFor(t, empresaSession()))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["count"])
	alert := data["alerts"].([]any)[0].(map[string]any)
	assert.Equal(t, "Cámara Lobby", alert["hardwareName"])
	assert.Equal(t, "Norte", alert["sedeName"])
}

func TestNotifications_DashboardCuentaLoMismoQueElPanel(t *testing.T) {
	env := newTestEnv(t)
	env.poller.Poll(context.Background())

	for name, sess := range map[string]string{
		"admin":   cookieFor(t, adminSession()),
		"empresa": cookieFor(t, empresaSession()),
	} {
		t.Run(name, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, "/api/notifications", "", sess)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			panel := decodeBody(t, resp)["data"].(map[string]any)

			resp = env.do(t, http.MethodGet, "/api/dashboard", "", sess)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			dash := decodeBody(t, resp)["data"].(map[string]any)

			assert.Equal(t, panel["count"], dash["alerts"])
		})
	}
}

func TestNotifications_RefreshConAlcanceDeEmpresa(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/notifications/refresh", "", cookieFor(t, empresaSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["count"], "la alerta de e2 con nombre Andina no cuenta")
}

func TestNotifications_MarkSeenSinIDs(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/notifications/seen", `{"ids":[]}`, cookieFor(t, adminSession()))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotifications_WebsocketSinSesion(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/ws/notifications", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contacto y páginas
// ──────────────────────────────────────────────────────────────────────────────

func TestContact_SinMailerConfigurado(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ana","email":"ana@correo.co","message":"Hola, quiero una demo"}`, "")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "El formulario de contacto no está disponible en este momento", decodeBody(t, resp)["message"])
}

func TestContact_Invalido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/contact", `{"name":"A","email":"x","message":""}`, "")

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs := decodeBody(t, resp)["errors"].(map[string]any)
	assert.Len(t, errs, 3)
}

func TestPages_IndexPublica(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/", "", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := readString(t, resp)
	assert.Contains(t, html, `id="contact-form"`)
	assert.NotContains(t, html, `id="notif-bell"`)
}

func TestPages_AdminHardwareConGrilla(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/hardware?open=3", "", cookieFor(t, adminSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := readString(t, resp)
	assert.Contains(t, html, `data-open="3"`)
	assert.Contains(t, html, `id="notif-bell"`)
	assert.Equal(t, 3, strings.Count(html, `class="hw-card`))
	assert.Contains(t, html, "5 equipos")
	assert.Contains(t, html, `data-cards="/admin/hardware/cards"`)
	assert.Contains(t, html, `data-action="delete-hardware"`)
}

func TestPages_EmpresaDashboard(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/empresa?shown=6", "", cookieFor(t, empresaSession()))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	html := readString(t, resp)
	assert.Equal(t, 4, strings.Count(html, `class="hw-card`), "shown revela más de un lote")
	assert.NotContains(t, html, "Router Sur")
}

func TestPages_AdminSinSesionRedirige(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/admin/empresas", "", "")

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fadmin%2Fempresas", resp.Header.Get("Location"))
}

func TestPages_NoEncontrada(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/no-existe", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readString(t, resp), "La página que busca no existe")

	resp = env.do(t, http.MethodGet, "/api/no-existe", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["success"])
}

func TestStatic_SirveAppJS(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/static/app.js", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStatic_ErrorDelPanelOcultaLaLista(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/static/app.js", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	js := string(body)
	start := strings.Index(js, "if (ev.type === 'error')")
	require.NotEqual(t, -1, start)
	branch := js[start : start+strings.Index(js[start:], "return;")]
	assert.Contains(t, branch, "list.innerHTML = ''")
	assert.Contains(t, branch, "list.classList.add('hidden')")
	assert.Contains(t, branch, "empty.classList.add('hidden')")
}
