package entity

import "github.com/shopspring/decimal"

// Estados lógicos del hardware (los define el formulario de administración).
const (
	HardwareAvailable    = "available"
	HardwareOutOfStock   = "out_of_stock"
	HardwareDiscontinued = "discontinued"
)

// Estado físico reportado por el proceso externo del backend (solo lectura aquí).
const (
	PhysicalActive   = "active"
	PhysicalInactive = "inactive"
)

// Hardware representa un equipo del inventario de una empresa, ubicado en una sede.
type Hardware struct {
	ID             string
	Name           string
	Brand          string
	Model          string
	Type           string
	Price          decimal.Decimal
	Stock          int
	Status         string // available, out_of_stock, discontinued
	Active         bool
	PhysicalStatus string // active, inactive
	EmpresaID      string
	EmpresaName    string
	Sede           string
}
