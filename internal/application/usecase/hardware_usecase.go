package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
)

// HardwareUseCase lista, filtra y modifica hardware a través del backend.
// La lista completa se pide de una vez; filtro y lotes se resuelven en memoria.
type HardwareUseCase struct {
	api ports.HardwareAPI
}

// NewHardwareUseCase construye el caso de uso.
func NewHardwareUseCase(api ports.HardwareAPI) *HardwareUseCase {
	return &HardwareUseCase{api: api}
}

// Load trae todo el hardware visible para el alcance, inactivos incluidos. empresaID
// vacío = todas las empresas.
func (uc *HardwareUseCase) Load(ctx context.Context, empresaID string) ([]entity.Hardware, error) {
	var (
		list []dto.HardwareDTO
		err  error
	)
	if empresaID == "" {
		list, err = uc.api.ListHardware(ctx)
	} else {
		list, err = uc.api.ListHardwareByEmpresa(ctx, empresaID)
	}
	if err != nil {
		return nil, fmt.Errorf("hardware.Load: %w", err)
	}
	out := make([]entity.Hardware, 0, len(list))
	for _, d := range list {
		h := hardwareToEntity(d)
		if empresaID != "" && h.EmpresaID != empresaID {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// List devuelve la lista filtrada. Counts y Types se calculan sobre la lista sin filtrar
// para que los selectores no cambien al filtrar.
func (uc *HardwareUseCase) List(ctx context.Context, empresaID string, c hardware.Criteria) (*dto.HardwareListResponse, error) {
	if err := validateCriteria(c); err != nil {
		return nil, err
	}
	all, err := uc.Load(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	filtered := hardware.Filter(all, c)
	return &dto.HardwareListResponse{
		Items:  HardwareResponses(filtered),
		Total:  len(filtered),
		Counts: hardware.Counts(all),
		Types:  uc.Types(ctx, all),
	}, nil
}

// Batch devuelve el lote de tarjetas que empieza en offset, sobre la lista filtrada.
func (uc *HardwareUseCase) Batch(ctx context.Context, empresaID string, c hardware.Criteria, offset int) (hardware.Batch, error) {
	if err := validateCriteria(c); err != nil {
		return hardware.Batch{}, err
	}
	all, err := uc.Load(ctx, empresaID)
	if err != nil {
		return hardware.Batch{}, err
	}
	return hardware.Page(hardware.Filter(all, c), offset, hardware.BatchSize), nil
}

// Grid primer tramo de la grilla para pintar la página completa. shown es cuántas tarjetas
// ya estaban reveladas (enlace "Cargar más" sin JavaScript); nunca menos de un lote.
type Grid struct {
	Batch  hardware.Batch
	Types  []string
	Counts map[string]int
}

// Grid arma la grilla inicial sobre la lista filtrada.
func (uc *HardwareUseCase) Grid(ctx context.Context, empresaID string, c hardware.Criteria, shown int) (*Grid, error) {
	if err := validateCriteria(c); err != nil {
		return nil, err
	}
	all, err := uc.Load(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if shown < hardware.BatchSize {
		shown = hardware.BatchSize
	}
	return &Grid{
		Batch:  hardware.Page(hardware.Filter(all, c), 0, shown),
		Types:  uc.Types(ctx, all),
		Counts: hardware.Counts(all),
	}, nil
}

// Types catálogo de tipos del backend seguido de los tipos presentes en items, sin repetir
// (sin distinguir mayúsculas). Si el catálogo falla quedan los de items.
func (uc *HardwareUseCase) Types(ctx context.Context, items []entity.Hardware) []string {
	catalog, err := uc.api.ListHardwareTypes(ctx)
	if err != nil {
		catalog = nil
	}
	merged := make([]entity.Hardware, 0, len(catalog)+len(items))
	for _, t := range catalog {
		merged = append(merged, entity.Hardware{Type: t.Name})
	}
	merged = append(merged, items...)
	types := hardware.Types(merged)
	if types == nil {
		types = []string{}
	}
	return types
}

// Filtered lista filtrada completa con los contadores por clase de esa misma lista (exportación).
func (uc *HardwareUseCase) Filtered(ctx context.Context, empresaID string, c hardware.Criteria) ([]entity.Hardware, map[string]int, error) {
	if err := validateCriteria(c); err != nil {
		return nil, nil, err
	}
	all, err := uc.Load(ctx, empresaID)
	if err != nil {
		return nil, nil, err
	}
	filtered := hardware.Filter(all, c)
	return filtered, hardware.Counts(filtered), nil
}

// Get obtiene un hardware para poblar el modal de edición.
func (uc *HardwareUseCase) Get(ctx context.Context, id string) (*dto.HardwareResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.GetHardware(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := hardwareToResponse(hardwareToEntity(*d))
	return &resp, nil
}

// Create crea un hardware. El precio no puede ser negativo.
func (uc *HardwareUseCase) Create(ctx context.Context, in dto.HardwareRequest) (*dto.HardwareResponse, error) {
	in, err := normalizeHardwareRequest(in)
	if err != nil {
		return nil, err
	}
	d, err := uc.api.CreateHardware(ctx, in)
	if err != nil {
		return nil, err
	}
	resp := hardwareToResponse(hardwareToEntity(*d))
	return &resp, nil
}

// Update reemplaza los datos editables. Última escritura gana.
func (uc *HardwareUseCase) Update(ctx context.Context, id string, in dto.HardwareRequest) (*dto.HardwareResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	in, err := normalizeHardwareRequest(in)
	if err != nil {
		return nil, err
	}
	d, err := uc.api.UpdateHardware(ctx, id, in)
	if err != nil {
		return nil, err
	}
	resp := hardwareToResponse(hardwareToEntity(*d))
	return &resp, nil
}

// Toggle invierte el flag active. El backend recibe el valor nuevo, no una orden de invertir.
func (uc *HardwareUseCase) Toggle(ctx context.Context, id string) (*dto.HardwareResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.api.GetHardware(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Active = !d.Active
	if err := uc.api.SetHardwareActive(ctx, id, d.Active); err != nil {
		return nil, err
	}
	resp := hardwareToResponse(hardwareToEntity(*d))
	return &resp, nil
}

// Delete elimina el hardware.
func (uc *HardwareUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.api.DeleteHardware(ctx, id)
}

func normalizeHardwareRequest(in dto.HardwareRequest) (dto.HardwareRequest, error) {
	if in.Price.IsNegative() {
		return in, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.Type = strings.TrimSpace(in.Type)
	in.Sede = strings.TrimSpace(in.Sede)
	if in.Sede == "" {
		in.Sede = entity.DefaultSede
	}
	if in.Active == nil {
		active := true
		in.Active = &active
	}
	return in, nil
}

func validateCriteria(c hardware.Criteria) error {
	if c.Status == "" {
		return nil
	}
	for _, class := range hardware.Classes {
		if c.Status == class {
			return nil
		}
	}
	return fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, c.Status)
}
