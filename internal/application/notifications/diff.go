package notifications

import "github.com/jhoicas/consola-hardware/internal/domain/entity"

// IDs devuelve los ids de las alertas en orden.
func IDs(alerts []entity.HardwareAlert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.ID)
	}
	return out
}

// Diff devuelve, en el orden de curr, los ids que no estaban en prev.
// En la primera carga todos los ids actuales cuentan como nuevos.
func Diff(prev, curr []string, firstLoad bool) []string {
	if firstLoad {
		out := make([]string, len(curr))
		copy(out, curr)
		return out
	}
	before := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		before[id] = struct{}{}
	}
	var out []string
	for _, id := range curr {
		if _, ok := before[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
