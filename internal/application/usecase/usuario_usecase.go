package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
)

// UsuarioUseCase CRUD de usuarios de una empresa. La sede debe ser una de las de la empresa.
type UsuarioUseCase struct {
	api      ports.UsuarioAPI
	empresas ports.EmpresaAPI
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(api ports.UsuarioAPI, empresas ports.EmpresaAPI) *UsuarioUseCase {
	return &UsuarioUseCase{api: api, empresas: empresas}
}

// List lista los usuarios de la empresa.
func (uc *UsuarioUseCase) List(ctx context.Context, empresaID string) ([]dto.UsuarioResponse, error) {
	if strings.TrimSpace(empresaID) == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.api.ListUsuarios(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, d := range list {
		out = append(out, usuarioToResponse(d))
	}
	return out, nil
}

// Get obtiene un usuario.
func (uc *UsuarioUseCase) Get(ctx context.Context, empresaID, id string) (*dto.UsuarioResponse, error) {
	if strings.TrimSpace(empresaID) == "" || strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.GetUsuario(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(*d)
	return &resp, nil
}

// SedeOptions opciones del selector de sede para la empresa.
func (uc *UsuarioUseCase) SedeOptions(ctx context.Context, empresaID string) ([]string, error) {
	d, err := uc.empresas.GetEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	e := empresaToEntity(*d)
	return e.SedeOptions(), nil
}

// Create crea un usuario en la empresa.
func (uc *UsuarioUseCase) Create(ctx context.Context, empresaID string, in dto.UsuarioRequest) (*dto.UsuarioResponse, error) {
	in, err := uc.prepare(ctx, empresaID, in)
	if err != nil {
		return nil, err
	}
	d, err := uc.api.CreateUsuario(ctx, empresaID, in)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(*d)
	return &resp, nil
}

// Update reemplaza los datos del usuario.
func (uc *UsuarioUseCase) Update(ctx context.Context, empresaID, id string, in dto.UsuarioRequest) (*dto.UsuarioResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	in, err := uc.prepare(ctx, empresaID, in)
	if err != nil {
		return nil, err
	}
	d, err := uc.api.UpdateUsuario(ctx, empresaID, id, in)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(*d)
	return &resp, nil
}

// Delete elimina el usuario.
func (uc *UsuarioUseCase) Delete(ctx context.Context, empresaID, id string) error {
	if strings.TrimSpace(empresaID) == "" || strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.api.DeleteUsuario(ctx, empresaID, id)
}

// prepare limpia la entrada y resuelve la sede: vacía toma la primera opción de la empresa.
func (uc *UsuarioUseCase) prepare(ctx context.Context, empresaID string, in dto.UsuarioRequest) (dto.UsuarioRequest, error) {
	if strings.TrimSpace(empresaID) == "" {
		return in, domain.ErrInvalidInput
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Especialidades = trimAll(in.Especialidades)
	in.Sede = strings.TrimSpace(in.Sede)

	opts, err := uc.SedeOptions(ctx, empresaID)
	if err != nil {
		return in, err
	}
	if in.Sede == "" {
		in.Sede = opts[0]
		return in, nil
	}
	for _, o := range opts {
		if strings.EqualFold(o, in.Sede) {
			in.Sede = o
			return in, nil
		}
	}
	return in, fmt.Errorf("%w: la sede %q no pertenece a la empresa", domain.ErrInvalidInput, in.Sede)
}
