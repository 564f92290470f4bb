package hardware

import "github.com/jhoicas/consola-hardware/internal/domain/entity"

// BatchSize cantidad de tarjetas que se revelan por lote.
const BatchSize = 3

// Batch es un tramo de la lista filtrada listo para pintar.
// Next es el offset del siguiente lote; Done indica que ya no hay más (se quita el centinela).
type Batch struct {
	Items  []entity.Hardware
	Offset int
	Next   int
	Total  int
	Done   bool
}

// Page corta la lista en el lote que empieza en offset. size <= 0 usa BatchSize.
func Page(items []entity.Hardware, offset, size int) Batch {
	if size <= 0 {
		size = BatchSize
	}
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return Batch{Items: []entity.Hardware{}, Offset: offset, Next: total, Total: total, Done: true}
	}
	end := offset + size
	if end > total {
		end = total
	}
	return Batch{
		Items:  items[offset:end],
		Offset: offset,
		Next:   end,
		Total:  total,
		Done:   end == total,
	}
}
