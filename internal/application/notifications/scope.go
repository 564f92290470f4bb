package notifications

import (
	"context"
	"fmt"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// Scope alcance de las alertas que ve un usuario. El valor cero ve todas (admin).
//
// Una alerta es de la empresa si trae su empresa_id; si no trae ninguno, si el hardware
// alertado está en la lista de hardware de la empresa. Los nombres no se comparan.
type Scope struct {
	EmpresaID   string
	HardwareIDs map[string]bool
}

// NewScope alcance de una empresa a partir de su hardware. empresaID vacío = todas.
func NewScope(empresaID string, items []entity.Hardware) Scope {
	if empresaID == "" {
		return Scope{}
	}
	ids := make(map[string]bool, len(items))
	for _, h := range items {
		if h.ID != "" {
			ids[h.ID] = true
		}
	}
	return Scope{EmpresaID: empresaID, HardwareIDs: ids}
}

// All indica si el alcance cubre todas las empresas.
func (s Scope) All() bool { return s.EmpresaID == "" }

func (s Scope) includes(hardwareID, empresaID string) bool {
	if s.All() {
		return true
	}
	if empresaID != "" {
		return empresaID == s.EmpresaID
	}
	return hardwareID != "" && s.HardwareIDs[hardwareID]
}

// Filter deja solo las alertas del alcance.
func (s Scope) Filter(alerts []entity.HardwareAlert) []entity.HardwareAlert {
	if s.All() {
		return alerts
	}
	out := make([]entity.HardwareAlert, 0, len(alerts))
	for _, a := range alerts {
		if s.includes(a.HardwareID, a.EmpresaID) {
			out = append(out, a)
		}
	}
	return out
}

// HardwareLister hardware de una empresa. Lo implementa *usecase.HardwareUseCase.
type HardwareLister interface {
	Load(ctx context.Context, empresaID string) ([]entity.Hardware, error)
}

// ResolveScope arma el alcance de una empresa con su lista de hardware. Si la lista
// falla se devuelve el error junto con un alcance que solo reconoce el empresa_id.
func ResolveScope(ctx context.Context, hw HardwareLister, empresaID string) (Scope, error) {
	if empresaID == "" {
		return Scope{}, nil
	}
	items, err := hw.Load(ctx, empresaID)
	if err != nil {
		return NewScope(empresaID, nil), fmt.Errorf("alcance de alertas de %s: %w", empresaID, err)
	}
	return NewScope(empresaID, items), nil
}
