package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
	"github.com/jhoicas/consola-hardware/pkg/format"
	"github.com/jhoicas/consola-hardware/pkg/jwt"
)

// pages plantillas que se componen con layout.html y partials.html.
var pages = []string{
	"index.html",
	"login.html",
	"admin_dashboard.html",
	"admin_empresas.html",
	"admin_hardware.html",
	"admin_users.html",
	"admin_stats.html",
	"empresa_dashboard.html",
	"empresa_empleados.html",
	"empresa_perfil.html",
	"404.html",
	"500.html",
}

// PageData datos base de todas las páginas. User es nil en páginas públicas.
type PageData struct {
	Title  string
	Active string
	User   *jwt.Session
	Data   any
	Open   string // ?open=<id>: modal a abrir al cargar (handoff desde el panel de alertas)
	Next   string
	Error  string
}

// FuncMap funciones disponibles en las plantillas.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"currency": format.Currency,
		"date_format": func(t time.Time) string {
			return format.Date(t, format.DateLayout)
		},
		"classLabel": hardware.ClassLabel,
		"classOf":    hardware.Classify,
		"isAdmin": func(s *jwt.Session) bool {
			return s != nil && s.Role == entity.RoleAdmin
		},
		"join": strings.Join,
		"decimal": func(v decimal.Decimal) string {
			return v.StringFixed(2)
		},
	}
}

// Renderer plantillas ya parseadas desde el FS embebido.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// NewRenderer parsea layout + partials + cada página.
func NewRenderer(tfs fs.FS) (*Renderer, error) {
	layout, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("leyendo layout: %w", err)
	}
	partials, err := fs.ReadFile(tfs, "partials.html")
	if err != nil {
		return nil, fmt.Errorf("leyendo partials: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	r.partials, err = template.New("partials").Funcs(FuncMap()).Parse(string(partials))
	if err != nil {
		return nil, fmt.Errorf("parseando partials: %w", err)
	}

	for _, page := range pages {
		body, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("leyendo plantilla %s: %w", page, err)
		}
		tmpl := template.New(page).Funcs(FuncMap())
		for _, src := range []string{string(layout), string(partials), string(body)} {
			if tmpl, err = tmpl.Parse(src); err != nil {
				return nil, fmt.Errorf("parseando plantilla %s: %w", page, err)
			}
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render pinta la página dentro del layout. No cambia el status ya fijado en c.
func (r *Renderer) Render(c *fiber.Ctx, name string, data PageData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("plantilla %s no encontrada", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("renderizando %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Partial pinta un fragmento sin layout (lotes de tarjetas pedidos por el centinela).
func (r *Renderer) Partial(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := r.partials.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("renderizando fragmento %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
