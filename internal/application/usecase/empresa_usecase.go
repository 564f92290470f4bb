package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// EmpresaUseCase CRUD de empresas contra el backend.
type EmpresaUseCase struct {
	api ports.EmpresaAPI
}

// NewEmpresaUseCase construye el caso de uso.
func NewEmpresaUseCase(api ports.EmpresaAPI) *EmpresaUseCase {
	return &EmpresaUseCase{api: api}
}

// Load trae las empresas como entidades (dashboard y selectores).
func (uc *EmpresaUseCase) Load(ctx context.Context) ([]entity.Empresa, error) {
	list, err := uc.api.ListEmpresas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Empresa, 0, len(list))
	for _, d := range list {
		out = append(out, empresaToEntity(d))
	}
	return out, nil
}

// List lista todas las empresas.
func (uc *EmpresaUseCase) List(ctx context.Context) ([]dto.EmpresaResponse, error) {
	list, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, empresaToResponse(e))
	}
	return items, nil
}

// Get obtiene una empresa con sus opciones de sede.
func (uc *EmpresaUseCase) Get(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.GetEmpresa(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := empresaToResponse(empresaToEntity(*d))
	return &resp, nil
}

// Create crea una empresa. Las sedes y roles vacíos se descartan.
func (uc *EmpresaUseCase) Create(ctx context.Context, in dto.EmpresaRequest) (*dto.EmpresaResponse, error) {
	d, err := uc.api.CreateEmpresa(ctx, normalizeEmpresaRequest(in))
	if err != nil {
		return nil, err
	}
	resp := empresaToResponse(empresaToEntity(*d))
	return &resp, nil
}

// Update reemplaza los datos de la empresa.
func (uc *EmpresaUseCase) Update(ctx context.Context, id string, in dto.EmpresaRequest) (*dto.EmpresaResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.UpdateEmpresa(ctx, id, normalizeEmpresaRequest(in))
	if err != nil {
		return nil, err
	}
	resp := empresaToResponse(empresaToEntity(*d))
	return &resp, nil
}

// Toggle activa o desactiva la empresa.
func (uc *EmpresaUseCase) Toggle(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.GetEmpresa(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Active = !d.Active
	if err := uc.api.SetEmpresaActive(ctx, id, d.Active); err != nil {
		return nil, err
	}
	resp := empresaToResponse(empresaToEntity(*d))
	return &resp, nil
}

// Delete elimina la empresa.
func (uc *EmpresaUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.api.DeleteEmpresa(ctx, id)
}

func normalizeEmpresaRequest(in dto.EmpresaRequest) dto.EmpresaRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Location = strings.TrimSpace(in.Location)
	in.Sedes = trimAll(in.Sedes)
	in.Roles = trimAll(in.Roles)
	return in
}
