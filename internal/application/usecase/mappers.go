package usecase

import (
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
)

func hardwareToEntity(d dto.HardwareDTO) entity.Hardware {
	return entity.Hardware{
		ID:             d.ID.String(),
		Name:           d.Name,
		Brand:          d.Brand,
		Model:          d.Model,
		Type:           d.Type,
		Price:          d.Price,
		Stock:          d.Stock,
		Status:         d.Status,
		Active:         d.Active,
		PhysicalStatus: d.PhysicalStatus,
		EmpresaID:      d.EmpresaID.String(),
		EmpresaName:    d.EmpresaName,
		Sede:           d.Sede,
	}
}

func hardwareToResponse(h entity.Hardware) dto.HardwareResponse {
	return dto.HardwareResponse{
		ID:             h.ID,
		Name:           h.Name,
		Brand:          h.Brand,
		Model:          h.Model,
		Type:           h.Type,
		Price:          h.Price,
		Stock:          h.Stock,
		Status:         h.Status,
		Class:          hardware.Classify(h),
		Active:         h.Active,
		PhysicalStatus: h.PhysicalStatus,
		EmpresaID:      h.EmpresaID,
		EmpresaName:    h.EmpresaName,
		Sede:           h.Sede,
	}
}

// HardwareResponses adapta una lista de entidades a la salida de la consola.
func HardwareResponses(items []entity.Hardware) []dto.HardwareResponse {
	out := make([]dto.HardwareResponse, 0, len(items))
	for _, h := range items {
		out = append(out, hardwareToResponse(h))
	}
	return out
}

func empresaToEntity(d dto.EmpresaDTO) entity.Empresa {
	return entity.Empresa{
		ID:       d.ID.String(),
		Name:     d.Name,
		Email:    d.Email,
		Location: d.Location,
		Sedes:    d.Sedes,
		Active:   d.Active,
		Roles:    d.Roles,
	}
}

func empresaToResponse(e entity.Empresa) dto.EmpresaResponse {
	return dto.EmpresaResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Location:    e.Location,
		Sedes:       nonNil(e.Sedes),
		SedeOptions: e.SedeOptions(),
		Active:      e.Active,
		Roles:       nonNil(e.Roles),
	}
}

func usuarioToResponse(d dto.UsuarioDTO) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:             d.ID.String(),
		EmpresaID:      d.EmpresaID.String(),
		Name:           d.Name,
		Cedula:         d.Cedula,
		Role:           d.Role,
		Especialidades: nonNil(d.Especialidades),
		ShiftType:      d.ShiftType,
		Sede:           d.Sede,
		Active:         d.Active,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// trimAll limpia espacios y descarta vacíos de listas que vienen de inputs de texto.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
