package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/pkg/config"
	"github.com/jhoicas/consola-hardware/pkg/jwt"
)

// Modos de autenticación.
const (
	ModeBackend = "backend"
	ModeLocal   = "local"
)

// AuthUseCase valida credenciales y arma la sesión de la consola.
type AuthUseCase struct {
	api ports.AuthAPI
	cfg config.AuthConfig
}

// NewAuthUseCase construye el caso de uso. api puede ser nil en modo local.
func NewAuthUseCase(api ports.AuthAPI, cfg config.AuthConfig) *AuthUseCase {
	return &AuthUseCase{api: api, cfg: cfg}
}

// Login verifica email/password y devuelve la sesión a guardar en la cookie.
// Credenciales incorrectas: domain.ErrUnauthorized. Usuario empresa sin empresa: domain.ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*jwt.Session, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cfg.Mode == ModeLocal {
		return uc.loginLocal(in)
	}
	return uc.loginBackend(ctx, in)
}

func (uc *AuthUseCase) loginLocal(in dto.LoginRequest) (*jwt.Session, error) {
	if uc.cfg.AdminPasswordHash == "" || !strings.EqualFold(in.Email, uc.cfg.AdminEmail) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.AdminPasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &jwt.Session{
		UserID: "admin",
		Email:  in.Email,
		Name:   uc.cfg.AdminName,
		Role:   entity.RoleAdmin,
	}, nil
}

func (uc *AuthUseCase) loginBackend(ctx context.Context, in dto.LoginRequest) (*jwt.Session, error) {
	out, err := uc.api.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	u := out.User
	role := normalizeRole(u.Role, in.UserType)
	s := &jwt.Session{
		UserID:         u.ID.String(),
		Email:          firstNonEmpty(u.Email, in.Email),
		Name:           u.Name,
		Role:           role,
		BackendSession: out.Session,
	}
	if role == entity.RoleEmpresa {
		s.EmpresaID = u.EmpresaID.String()
		s.EmpresaName = u.EmpresaName
		if s.EmpresaID == "" {
			return nil, domain.ErrForbidden
		}
	}
	if s.Name == "" {
		s.Name = s.Email
	}
	return s, nil
}

// RedirectFor dashboard de inicio según el rol.
func RedirectFor(role string) string {
	if role == entity.RoleAdmin {
		return "/admin"
	}
	return "/empresa"
}

// normalizeRole mapea los roles del backend a los dos de la consola.
// Si el backend no envía rol se usa el tipo elegido en el formulario.
func normalizeRole(backendRole, userType string) string {
	r := strings.ToLower(strings.TrimSpace(backendRole))
	if r == "" {
		r = strings.ToLower(strings.TrimSpace(userType))
	}
	switch r {
	case "admin", "administrador", "superadmin":
		return entity.RoleAdmin
	default:
		return entity.RoleEmpresa
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
