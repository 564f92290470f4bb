package ports

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
)

// Los puertos hacia el backend REST están separados por recurso para que cada caso de uso
// dependa solo de lo que usa. El cliente HTTP de infrastructure/backend implementa todos.

// HardwareAPI CRUD de hardware. Los listados incluyen el hardware inactivo.
type HardwareAPI interface {
	ListHardware(ctx context.Context) ([]dto.HardwareDTO, error)
	ListHardwareByEmpresa(ctx context.Context, empresaID string) ([]dto.HardwareDTO, error)
	GetHardware(ctx context.Context, id string) (*dto.HardwareDTO, error)
	CreateHardware(ctx context.Context, in dto.HardwareRequest) (*dto.HardwareDTO, error)
	UpdateHardware(ctx context.Context, id string, in dto.HardwareRequest) (*dto.HardwareDTO, error)
	SetHardwareActive(ctx context.Context, id string, active bool) error
	DeleteHardware(ctx context.Context, id string) error
	ListHardwareTypes(ctx context.Context) ([]dto.HardwareTypeDTO, error)
}

// EmpresaAPI CRUD de empresas.
type EmpresaAPI interface {
	ListEmpresas(ctx context.Context) ([]dto.EmpresaDTO, error)
	GetEmpresa(ctx context.Context, id string) (*dto.EmpresaDTO, error)
	CreateEmpresa(ctx context.Context, in dto.EmpresaRequest) (*dto.EmpresaDTO, error)
	UpdateEmpresa(ctx context.Context, id string, in dto.EmpresaRequest) (*dto.EmpresaDTO, error)
	SetEmpresaActive(ctx context.Context, id string, active bool) error
	DeleteEmpresa(ctx context.Context, id string) error
}

// UsuarioAPI CRUD de usuarios, siempre dentro de una empresa.
type UsuarioAPI interface {
	ListUsuarios(ctx context.Context, empresaID string) ([]dto.UsuarioDTO, error)
	GetUsuario(ctx context.Context, empresaID, id string) (*dto.UsuarioDTO, error)
	CreateUsuario(ctx context.Context, empresaID string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error)
	UpdateUsuario(ctx context.Context, empresaID, id string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error)
	DeleteUsuario(ctx context.Context, empresaID, id string) error
}

// StatusAPI chequeo de estado físico del hardware. Devuelve el cuerpo crudo porque su forma varía.
type StatusAPI interface {
	CheckPhysicalStatus(ctx context.Context) (json.RawMessage, error)
}

// AuthAPI login contra el backend.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.BackendLoginDTO, error)
}

// Mailer envía el formulario de contacto.
type Mailer interface {
	SendContact(ctx context.Context, in dto.ContactRequest) error
}

type sessionKey struct{}

// WithSession guarda en el contexto la cookie de sesión del backend del usuario actual.
// Sin sesión el cliente usa la credencial de servicio.
func WithSession(ctx context.Context, backendSession string) context.Context {
	return context.WithValue(ctx, sessionKey{}, backendSession)
}

// SessionFrom devuelve la sesión del backend guardada con WithSession.
func SessionFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}
