package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// HardwareDTO hardware tal como lo envía el backend. Ver UnmarshalJSON.
type HardwareDTO struct {
	ID             FlexString      `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Type           string          `json:"type"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Status         string          `json:"status"`
	Active         bool            `json:"active"`
	PhysicalStatus string          `json:"physical_status"`
	EmpresaID      FlexString      `json:"empresa_id"`
	EmpresaName    string          `json:"empresa_name"`
	Sede           string          `json:"sede"`
}

// UnmarshalJSON lee la forma del backend: nombre, tipo, activa, sede, empresa_id y
// empresa_nombre arriba; marca, modelo, precio, stock y status dentro de datos, que puede
// venir anidado otra vez (datos.datos) o como string JSON. physical_status llega como
// string o como objeto {estado|status}.
func (d *HardwareDTO) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	datos := f.object("datos")
	if inner := datos.object("datos"); len(inner) > 0 {
		datos = inner
	}
	*d = HardwareDTO{
		ID:             f.id("_id", "id"),
		Name:           f.str("nombre", "name"),
		Brand:          either(datos, f, "brand", "marca"),
		Model:          either(datos, f, "model", "modelo"),
		Type:           f.str("tipo", "type"),
		Status:         either(datos, f, "status", "estado"),
		Active:         f.boolOr(true, "activa", "active"),
		PhysicalStatus: physicalStatus(f, datos),
		EmpresaID:      f.id("empresa_id", "empresaId"),
		EmpresaName:    f.str("empresa_nombre", "empresa_name"),
		Sede:           f.str("sede", "location"),
	}
	src := datos
	if src.raw("stock") == nil {
		src = f
	}
	d.Stock = src.int("stock")
	src = datos
	if src.raw("price", "precio") == nil {
		src = f
	}
	d.Price = src.decimal("price", "precio")
	if d.Status == "" {
		d.Status = "available"
	}
	return nil
}

var physicalKeys = []string{"physical_status", "physicalStatus", "estado_fisico"}

func physicalStatus(f, datos fields) string {
	obj := f
	if obj.raw(physicalKeys...) == nil {
		obj = datos
	}
	raw := obj.raw(physicalKeys...)
	if raw == nil {
		return ""
	}
	v := obj.str(physicalKeys...)
	if raw[0] == '{' || strings.HasPrefix(v, "{") {
		nested := obj.object(physicalKeys...)
		v = nested.str("estado", "status", "state")
	}
	switch strings.ToLower(v) {
	case "inactivo", "inactive":
		return "inactive"
	case "activo", "active":
		return "active"
	}
	return strings.ToLower(v)
}

// HardwareRequest entrada del modal de crear/editar hardware.
type HardwareRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Brand     string          `json:"brand" validate:"max=100"`
	Model     string          `json:"model" validate:"max=100"`
	Type      string          `json:"type" validate:"required,max=60"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock" validate:"min=0"`
	Status    string          `json:"status" validate:"required,oneof=available out_of_stock discontinued"`
	Active    *bool           `json:"active,omitempty"`
	EmpresaID string          `json:"empresa_id" validate:"required"`
	Sede      string          `json:"sede" validate:"max=100"`
}

// HardwareResponse salida de un hardware hacia la consola, con su clase de estado.
type HardwareResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Type           string          `json:"type"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Status         string          `json:"status"`
	Class          string          `json:"class"`
	Active         bool            `json:"active"`
	PhysicalStatus string          `json:"physical_status"`
	EmpresaID      string          `json:"empresa_id"`
	EmpresaName    string          `json:"empresa_name"`
	Sede           string          `json:"sede"`
}

// HardwareListResponse lista filtrada con contadores por clase y tipos disponibles.
type HardwareListResponse struct {
	Items  []HardwareResponse `json:"items"`
	Total  int                `json:"total"`
	Counts map[string]int     `json:"counts"`
	Types  []string           `json:"types"`
}

// HardwareTypeDTO entrada del catálogo de tipos de hardware.
type HardwareTypeDTO struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

// UnmarshalJSON acepta {_id|id, nombre|name}.
func (d *HardwareTypeDTO) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	*d = HardwareTypeDTO{ID: f.id("_id", "id"), Name: f.str("nombre", "name")}
	return nil
}
