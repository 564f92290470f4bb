// Package analytics arma los resúmenes del dashboard y la página de estadísticas
// a partir de las listas del backend y del último chequeo de estado físico.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/notifications"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
)

// EmpresaLoader lista de empresas.
type EmpresaLoader interface {
	Load(ctx context.Context) ([]entity.Empresa, error)
}

// HardwareLoader lista de hardware, opcionalmente limitada a una empresa.
type HardwareLoader interface {
	Load(ctx context.Context, empresaID string) ([]entity.Hardware, error)
}

// AlertSource último estado conocido del poller.
type AlertSource interface {
	Snapshot() notifications.Snapshot
}

// DashboardUseCase genera los KPIs del dashboard.
type DashboardUseCase struct {
	empresas EmpresaLoader
	hardware HardwareLoader
	alerts   AlertSource
}

// NewDashboardUseCase construye el caso de uso. alerts puede ser nil si el poller está apagado.
func NewDashboardUseCase(empresas EmpresaLoader, hw HardwareLoader, alerts AlertSource) *DashboardUseCase {
	return &DashboardUseCase{empresas: empresas, hardware: hw, alerts: alerts}
}

// GetSummary construye el resumen. Con empresaID vacío cubre todas las empresas (admin);
// si no, solo el hardware de esa empresa y sin pedir la lista de empresas.
//
// Dos llamadas en paralelo:
//  1. Load(empresas) → totales de empresas
//  2. Load(hardware) → totales por clase y por empresa
func (uc *DashboardUseCase) GetSummary(ctx context.Context, empresaID string) (*dto.DashboardSummaryDTO, error) {
	type empresasResult struct {
		list []entity.Empresa
		err  error
	}
	type hardwareResult struct {
		list []entity.Hardware
		err  error
	}

	empCh := make(chan empresasResult, 1)
	hwCh := make(chan hardwareResult, 1)

	go func() {
		if empresaID != "" {
			empCh <- empresasResult{}
			return
		}
		list, err := uc.empresas.Load(ctx)
		empCh <- empresasResult{list, err}
	}()
	go func() {
		list, err := uc.hardware.Load(ctx, empresaID)
		hwCh <- hardwareResult{list, err}
	}()

	emp := <-empCh
	hw := <-hwCh

	if emp.err != nil {
		return nil, fmt.Errorf("dashboard: empresas: %w", emp.err)
	}
	if hw.err != nil {
		return nil, fmt.Errorf("dashboard: hardware: %w", hw.err)
	}

	activas := 0
	for _, e := range emp.list {
		if e.Active {
			activas++
		}
	}

	return &dto.DashboardSummaryDTO{
		EmpresasTotal:   len(emp.list),
		EmpresasActivas: activas,
		HardwareTotal:   len(hw.list),
		HardwareByClass: hardware.Counts(hw.list),
		Alerts:          uc.alertCount(empresaID, hw.list),
		PorEmpresa:      porEmpresa(emp.list, hw.list),
	}, nil
}

// alertCount badge global para admin; para una empresa el mismo alcance que el panel.
func (uc *DashboardUseCase) alertCount(empresaID string, items []entity.Hardware) int {
	if uc.alerts == nil {
		return 0
	}
	return len(notifications.NewScope(empresaID, items).Filter(uc.alerts.Snapshot().Alerts))
}

// porEmpresa cuenta hardware total e inactivo por empresa, de mayor a menor total.
// Las empresas sin hardware aparecen con cero.
func porEmpresa(empresas []entity.Empresa, items []entity.Hardware) []dto.EmpresaHardwareDTO {
	idx := make(map[string]*dto.EmpresaHardwareDTO)
	var order []string
	add := func(id, name string) *dto.EmpresaHardwareDTO {
		if row, ok := idx[id]; ok {
			if row.EmpresaName == "" {
				row.EmpresaName = name
			}
			return row
		}
		row := &dto.EmpresaHardwareDTO{EmpresaID: id, EmpresaName: name}
		idx[id] = row
		order = append(order, id)
		return row
	}
	for _, e := range empresas {
		add(e.ID, e.Name)
	}
	for _, h := range items {
		row := add(h.EmpresaID, h.EmpresaName)
		row.Total++
		if hardware.Classify(h) == hardware.ClassInactive {
			row.Inactivos++
		}
	}

	out := make([]dto.EmpresaHardwareDTO, 0, len(order))
	for _, id := range order {
		row := idx[id]
		if row.EmpresaName == "" {
			row.EmpresaName = "Sin empresa"
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
