package hardware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
)

func nItems(n int) []entity.Hardware {
	out := make([]entity.Hardware, n)
	for i := range out {
		out[i] = entity.Hardware{ID: string(rune('a' + i))}
	}
	return out
}

// Con N items se revelan min(3, N) al inicio y el resto en lotes de 3 hasta mostrarlos todos.
func TestPage_RevelaPorLotesHastaTerminar(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 7, 9} {
		items := nItems(n)

		first := hardware.Page(items, 0, 0)
		assert.Len(t, first.Items, min(3, n), "n=%d", n)

		shown := len(first.Items)
		batch := first
		rounds := 0
		for !batch.Done {
			batch = hardware.Page(items, batch.Next, hardware.BatchSize)
			assert.LessOrEqual(t, len(batch.Items), 3)
			shown += len(batch.Items)
			rounds++
			if rounds > n {
				t.Fatalf("n=%d: el pager no termina", n)
			}
		}
		assert.Equal(t, n, shown, "n=%d: todos los items deben mostrarse", n)
		assert.Equal(t, n, batch.Next)
	}
}

func TestPage_OffsetFueraDeRango(t *testing.T) {
	b := hardware.Page(nItems(4), 10, 3)
	assert.True(t, b.Done)
	assert.Empty(t, b.Items)
	assert.Equal(t, 4, b.Total)

	b = hardware.Page(nItems(4), -2, 3)
	assert.Equal(t, 0, b.Offset)
	assert.Len(t, b.Items, 3)
	assert.False(t, b.Done)
}
