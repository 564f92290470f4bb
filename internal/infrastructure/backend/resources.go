package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain"
)

// ── Hardware ──────────────────────────────────────────────────────────────────

// hardwarePayload cuerpo de alta/edición en la forma del backend: los datos técnicos
// van dentro de datos.datos.
type hardwarePayload struct {
	Nombre    string        `json:"nombre"`
	Tipo      string        `json:"tipo"`
	EmpresaID string        `json:"empresa_id"`
	Sede      string        `json:"sede"`
	Activa    *bool         `json:"activa,omitempty"`
	Datos     hardwareDatos `json:"datos"`
}

type hardwareDatos struct {
	Datos hardwareSpecs `json:"datos"`
}

type hardwareSpecs struct {
	Brand  string          `json:"brand"`
	Model  string          `json:"model"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Status string          `json:"status"`
}

func newHardwarePayload(in dto.HardwareRequest) hardwarePayload {
	return hardwarePayload{
		Nombre:    in.Name,
		Tipo:      in.Type,
		EmpresaID: in.EmpresaID,
		Sede:      in.Sede,
		Activa:    in.Active,
		Datos: hardwareDatos{Datos: hardwareSpecs{
			Brand:  in.Brand,
			Model:  in.Model,
			Price:  in.Price,
			Stock:  in.Stock,
			Status: in.Status,
		}},
	}
}

// activePayload cuerpo de toggle-status.
type activePayload struct {
	Activa bool `json:"activa"`
}

// ListHardware GET /api/hardware/all-including-inactive (vista de admin).
func (c *Client) ListHardware(ctx context.Context) ([]dto.HardwareDTO, error) {
	var out []dto.HardwareDTO
	if err := c.list(ctx, "/api/hardware/all-including-inactive", &out, "hardware"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListHardwareByEmpresa GET /api/hardware/empresa/{id}/including-inactive.
func (c *Client) ListHardwareByEmpresa(ctx context.Context, empresaID string) ([]dto.HardwareDTO, error) {
	var out []dto.HardwareDTO
	if err := c.list(ctx, "/api/hardware/empresa/"+seg(empresaID)+"/including-inactive", &out, "hardware"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHardware GET /api/hardware/{id}.
func (c *Client) GetHardware(ctx context.Context, id string) (*dto.HardwareDTO, error) {
	var out dto.HardwareDTO
	if err := c.do(ctx, http.MethodGet, "/api/hardware/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateHardware POST /api/hardware.
func (c *Client) CreateHardware(ctx context.Context, in dto.HardwareRequest) (*dto.HardwareDTO, error) {
	var out dto.HardwareDTO
	if err := c.do(ctx, http.MethodPost, "/api/hardware", newHardwarePayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHardware PUT /api/hardware/{id}.
func (c *Client) UpdateHardware(ctx context.Context, id string, in dto.HardwareRequest) (*dto.HardwareDTO, error) {
	var out dto.HardwareDTO
	if err := c.do(ctx, http.MethodPut, "/api/hardware/"+seg(id), newHardwarePayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetHardwareActive PATCH /api/hardware/{id}/toggle-status con {activa}.
func (c *Client) SetHardwareActive(ctx context.Context, id string, active bool) error {
	return c.do(ctx, http.MethodPatch, "/api/hardware/"+seg(id)+"/toggle-status", activePayload{Activa: active}, nil)
}

// DeleteHardware DELETE /api/hardware/{id}.
func (c *Client) DeleteHardware(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/hardware/"+seg(id), nil, nil)
}

// ListHardwareTypes GET /api/hardware-types.
func (c *Client) ListHardwareTypes(ctx context.Context) ([]dto.HardwareTypeDTO, error) {
	var out []dto.HardwareTypeDTO
	if err := c.list(ctx, "/api/hardware-types", &out, "types"); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckPhysicalStatus POST /api/hardware/physical-status/check. El cuerpo se devuelve sin
// desempaquetar porque las formas de respuesta varían; las normaliza notifications.Normalize.
func (c *Client) CheckPhysicalStatus(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/hardware/physical-status/check", struct{}{})
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		_, err := unwrap(resp)
		return nil, err
	}
	return json.RawMessage(resp.body), nil
}

// ── Empresas ──────────────────────────────────────────────────────────────────

// ListEmpresas GET /api/empresas.
func (c *Client) ListEmpresas(ctx context.Context) ([]dto.EmpresaDTO, error) {
	var out []dto.EmpresaDTO
	if err := c.list(ctx, "/api/empresas", &out, "empresas"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEmpresa GET /api/empresas/{id}.
func (c *Client) GetEmpresa(ctx context.Context, id string) (*dto.EmpresaDTO, error) {
	var out dto.EmpresaDTO
	if err := c.do(ctx, http.MethodGet, "/api/empresas/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type empresaPayload struct {
	Nombre    string   `json:"nombre"`
	Email     string   `json:"email"`
	Ubicacion string   `json:"ubicacion"`
	Sedes     []string `json:"sedes"`
	Roles     []string `json:"roles"`
	Activa    *bool    `json:"activa,omitempty"`
}

func newEmpresaPayload(in dto.EmpresaRequest) empresaPayload {
	return empresaPayload{
		Nombre:    in.Name,
		Email:     in.Email,
		Ubicacion: in.Location,
		Sedes:     in.Sedes,
		Roles:     in.Roles,
		Activa:    in.Active,
	}
}

// CreateEmpresa POST /api/empresas.
func (c *Client) CreateEmpresa(ctx context.Context, in dto.EmpresaRequest) (*dto.EmpresaDTO, error) {
	var out dto.EmpresaDTO
	if err := c.do(ctx, http.MethodPost, "/api/empresas", newEmpresaPayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEmpresa PUT /api/empresas/{id}.
func (c *Client) UpdateEmpresa(ctx context.Context, id string, in dto.EmpresaRequest) (*dto.EmpresaDTO, error) {
	var out dto.EmpresaDTO
	if err := c.do(ctx, http.MethodPut, "/api/empresas/"+seg(id), newEmpresaPayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetEmpresaActive PATCH /api/empresas/{id}/toggle-status con {activa}.
func (c *Client) SetEmpresaActive(ctx context.Context, id string, active bool) error {
	return c.do(ctx, http.MethodPatch, "/api/empresas/"+seg(id)+"/toggle-status", activePayload{Activa: active}, nil)
}

// DeleteEmpresa DELETE /api/empresas/{id}.
func (c *Client) DeleteEmpresa(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/empresas/"+seg(id), nil, nil)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type usuarioPayload struct {
	Nombre         string   `json:"nombre"`
	Cedula         string   `json:"cedula"`
	Rol            string   `json:"rol"`
	Especialidades []string `json:"especialidades"`
	TipoTurno      string   `json:"tipo_turno"`
	Sede           string   `json:"sede"`
	Activo         *bool    `json:"activo,omitempty"`
}

func newUsuarioPayload(in dto.UsuarioRequest) usuarioPayload {
	return usuarioPayload{
		Nombre:         in.Name,
		Cedula:         in.Cedula,
		Rol:            in.Role,
		Especialidades: in.Especialidades,
		TipoTurno:      in.ShiftType,
		Sede:           in.Sede,
		Activo:         in.Active,
	}
}

func usuariosPath(empresaID string) string {
	return "/empresas/" + seg(empresaID) + "/usuarios"
}

// ListUsuarios GET /empresas/{id}/usuarios.
func (c *Client) ListUsuarios(ctx context.Context, empresaID string) ([]dto.UsuarioDTO, error) {
	var out []dto.UsuarioDTO
	if err := c.list(ctx, usuariosPath(empresaID), &out, "usuarios"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUsuario GET /empresas/{empresaID}/usuarios/{id}.
func (c *Client) GetUsuario(ctx context.Context, empresaID, id string) (*dto.UsuarioDTO, error) {
	var out dto.UsuarioDTO
	if err := c.do(ctx, http.MethodGet, usuariosPath(empresaID)+"/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUsuario POST /empresas/{empresaID}/usuarios.
func (c *Client) CreateUsuario(ctx context.Context, empresaID string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error) {
	var out dto.UsuarioDTO
	if err := c.do(ctx, http.MethodPost, usuariosPath(empresaID), newUsuarioPayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUsuario PUT /empresas/{empresaID}/usuarios/{id}.
func (c *Client) UpdateUsuario(ctx context.Context, empresaID, id string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error) {
	var out dto.UsuarioDTO
	if err := c.do(ctx, http.MethodPut, usuariosPath(empresaID)+"/"+seg(id), newUsuarioPayload(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUsuario DELETE /empresas/{empresaID}/usuarios/{id}.
func (c *Client) DeleteUsuario(ctx context.Context, empresaID, id string) error {
	return c.do(ctx, http.MethodDelete, usuariosPath(empresaID)+"/"+seg(id), nil, nil)
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /api/auth/login. Devuelve el usuario y la cookie de sesión del backend.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.BackendLoginDTO, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/login", in)
	if err != nil {
		return nil, err
	}
	data, err := unwrap(resp)
	if err != nil {
		return nil, err
	}
	var out dto.BackendLoginDTO
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("backend: deserializar login: %w", err)
	}
	if out.User.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	for _, ck := range resp.cookies {
		if ck.Name == c.sessionCookie {
			out.Session = ck.Value
		}
	}
	return &out, nil
}
