// Package hardware contiene la lógica pura sobre listas de hardware ya cargadas en memoria:
// clasificación de estado, filtro de búsqueda y revelado por lotes de la grilla.
package hardware

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// Clases de estado que se muestran en la grilla. Son mutuamente excluyentes.
const (
	ClassAvailable    = "available"
	ClassOutOfStock   = "out_of_stock"
	ClassDiscontinued = "discontinued"
	ClassInactive     = "inactive"
)

// Classes en el orden en que se muestran en filtros y contadores.
var Classes = []string{ClassAvailable, ClassOutOfStock, ClassInactive, ClassDiscontinued}

// Criteria filtros de la pantalla de hardware. Los campos vacíos no filtran.
type Criteria struct {
	Search string
	Type   string
	Status string
}

// IsZero indica si no hay ningún filtro activo.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && c.Type == "" && c.Status == ""
}

// Classify deriva la clase de estado visible a partir de status, active y stock.
// Precedencia: descontinuado > inactivo > sin stock > disponible.
func Classify(h entity.Hardware) string {
	switch {
	case h.Status == entity.HardwareDiscontinued:
		return ClassDiscontinued
	case !h.Active:
		return ClassInactive
	case h.Stock <= 0 || h.Status == entity.HardwareOutOfStock:
		return ClassOutOfStock
	default:
		return ClassAvailable
	}
}

// Filter devuelve, en el orden original, los items que cumplen todos los criterios.
func Filter(items []entity.Hardware, c Criteria) []entity.Hardware {
	if c.IsZero() {
		out := make([]entity.Hardware, len(items))
		copy(out, items)
		return out
	}
	term := Fold(strings.TrimSpace(c.Search))
	out := make([]entity.Hardware, 0, len(items))
	for _, h := range items {
		if c.Type != "" && !strings.EqualFold(h.Type, c.Type) {
			continue
		}
		if c.Status != "" && Classify(h) != c.Status {
			continue
		}
		if term != "" && !matches(h, term) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func matches(h entity.Hardware, term string) bool {
	for _, field := range []string{h.Name, h.Brand, h.Model, h.Sede, h.EmpresaName} {
		if strings.Contains(Fold(field), term) {
			return true
		}
	}
	return false
}

// Counts cuenta los items por clase de estado.
func Counts(items []entity.Hardware) map[string]int {
	counts := make(map[string]int, len(Classes))
	for _, c := range Classes {
		counts[c] = 0
	}
	for _, h := range items {
		counts[Classify(h)]++
	}
	return counts
}

// Types devuelve los tipos distintos presentes, en orden de aparición (para el selector).
func Types(items []entity.Hardware) []string {
	seen := make(map[string]bool)
	var types []string
	for _, h := range items {
		key := strings.ToLower(strings.TrimSpace(h.Type))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		types = append(types, h.Type)
	}
	return types
}

// Fold pasa a minúsculas y quita tildes: "Cámara Sede Norte" -> "camara sede norte".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

var classLabels = map[string]string{
	ClassAvailable:    "Disponible",
	ClassOutOfStock:   "Sin stock",
	ClassInactive:     "Inactivo",
	ClassDiscontinued: "Descontinuado",
}

// ClassLabel etiqueta en español de la clase; una clase desconocida se devuelve tal cual.
func ClassLabel(class string) string {
	if l, ok := classLabels[class]; ok {
		return l
	}
	return class
}
