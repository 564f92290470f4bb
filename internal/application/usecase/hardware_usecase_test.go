package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/usecase"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/domain/hardware"
)

func TestHardwareList_SinFiltros(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())

	out, err := uc.List(context.Background(), "", hardware.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Total)
	assert.Equal(t, []string{"camara", "red", "sensor"}, out.Types)
	assert.Equal(t, map[string]int{
		hardware.ClassAvailable:    2,
		hardware.ClassOutOfStock:   1,
		hardware.ClassInactive:     1,
		hardware.ClassDiscontinued: 1,
	}, out.Counts)
	assert.Equal(t, hardware.ClassInactive, out.Items[1].Class)
}

func TestHardwareList_FiltroYAlcance(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())
	ctx := context.Background()

	out, err := uc.List(ctx, "", hardware.Criteria{Search: "camara"})
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "1", out.Items[0].ID)
	assert.Equal(t, "5", out.Items[1].ID)
	assert.Equal(t, 5, out.Counts[hardware.ClassAvailable]+out.Counts[hardware.ClassOutOfStock]+
		out.Counts[hardware.ClassInactive]+out.Counts[hardware.ClassDiscontinued], "los contadores no dependen del filtro")

	be := sampleBackend()
	out, err = usecase.NewHardwareUseCase(be).List(ctx, "10", hardware.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total, "una empresa solo ve su hardware")
	assert.Equal(t, []string{"10"}, be.byEmpresa)

	out, err = uc.List(ctx, "", hardware.Criteria{Search: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.NotNil(t, out.Items)
}

func TestHardwareList_EstadoDesconocido(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())
	_, err := uc.List(context.Background(), "", hardware.Criteria{Status: "roto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHardwareList_ErrorBackend(t *testing.T) {
	be := sampleBackend()
	be.err = domain.ErrUpstream
	_, err := usecase.NewHardwareUseCase(be).List(context.Background(), "", hardware.Criteria{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestHardwareBatch(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())
	ctx := context.Background()

	b, err := uc.Batch(ctx, "", hardware.Criteria{}, 0)
	require.NoError(t, err)
	assert.Len(t, b.Items, 3)
	assert.Equal(t, 3, b.Next)
	assert.False(t, b.Done)

	b, err = uc.Batch(ctx, "", hardware.Criteria{}, b.Next)
	require.NoError(t, err)
	assert.Len(t, b.Items, 2)
	assert.True(t, b.Done)

	b, err = uc.Batch(ctx, "", hardware.Criteria{Type: "red"}, 0)
	require.NoError(t, err)
	assert.Len(t, b.Items, 2)
	assert.True(t, b.Done)
}

func TestHardwareCreate_Defaults(t *testing.T) {
	be := sampleBackend()
	uc := usecase.NewHardwareUseCase(be)

	out, err := uc.Create(context.Background(), dto.HardwareRequest{
		Name: "  Router 2 ", Type: "red", Status: "available", Stock: 3, EmpresaID: "10",
		Price: decimal.RequireFromString("1234.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Router 2", be.lastHardware.Name)
	assert.Equal(t, "Principal", be.lastHardware.Sede)
	require.NotNil(t, be.lastHardware.Active)
	assert.True(t, *be.lastHardware.Active)
	assert.Equal(t, hardware.ClassAvailable, out.Class)
}

func TestHardwareCreate_PrecioNegativo(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())
	_, err := uc.Create(context.Background(), dto.HardwareRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHardwareToggleYGet(t *testing.T) {
	be := sampleBackend()
	uc := usecase.NewHardwareUseCase(be)
	ctx := context.Background()

	out, err := uc.Toggle(ctx, "2")
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, map[string]bool{"2": true}, be.activeSet, "se envía el valor nuevo")

	_, err = uc.Toggle(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHardwareGrid_MinimoUnLote(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())
	ctx := context.Background()

	g, err := uc.Grid(ctx, "", hardware.Criteria{}, 0)
	require.NoError(t, err)
	assert.Len(t, g.Batch.Items, hardware.BatchSize)
	assert.False(t, g.Batch.Done)
	assert.Len(t, g.Types, 3)

	g, err = uc.Grid(ctx, "", hardware.Criteria{}, 6)
	require.NoError(t, err)
	assert.Len(t, g.Batch.Items, 5)
	assert.True(t, g.Batch.Done)
}

func TestHardwareFiltered_ContadoresDelFiltro(t *testing.T) {
	uc := usecase.NewHardwareUseCase(sampleBackend())

	items, counts, err := uc.Filtered(context.Background(), "20", hardware.Criteria{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 1, counts[hardware.ClassDiscontinued])
	assert.Equal(t, 1, counts[hardware.ClassOutOfStock])
	assert.Equal(t, 1, counts[hardware.ClassAvailable])

	_, _, err = uc.Filtered(context.Background(), "", hardware.Criteria{Status: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHardwareDelete(t *testing.T) {
	be := sampleBackend()
	uc := usecase.NewHardwareUseCase(be)

	require.NoError(t, uc.Delete(context.Background(), "3"))
	assert.Equal(t, []string{"3"}, be.deleted)
	assert.ErrorIs(t, uc.Delete(context.Background(), " "), domain.ErrInvalidInput)

	be.err = domain.ErrForbidden
	assert.ErrorIs(t, uc.Delete(context.Background(), "3"), domain.ErrForbidden)
}

func TestHardwareTypes_CatalogoMasPresentes(t *testing.T) {
	be := sampleBackend()
	be.types = []dto.HardwareTypeDTO{{ID: "t1", Name: "lector"}, {ID: "t2", Name: "RED"}}
	uc := usecase.NewHardwareUseCase(be)

	out, err := uc.List(context.Background(), "", hardware.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"lector", "RED", "camara", "sensor"}, out.Types, "primero el catálogo")

	be.typesErr = domain.ErrUpstream
	out, err = uc.List(context.Background(), "", hardware.Criteria{})
	require.NoError(t, err, "sin catálogo la lista sigue funcionando")
	assert.Equal(t, []string{"camara", "red", "sensor"}, out.Types)
}
