package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
	"github.com/fys/fabrica-pinceles-api/internal/testutil"
)

func newStockUC(store *testutil.MemStore, implicitCreate bool) *inventory.StockUseCase {
	repos := store.Repos()
	return inventory.NewStockUseCase(
		&testutil.TxRunner{Store: store},
		repos.Catalog, repos.Stock, repos.Movements,
		implicitCreate,
	)
}

// Una entrada válida suma stock, deja exactamente un movimiento ENTRADA,
// actualiza ultima_entrada y recalcula el proveedor más frecuente.
func TestRegisterEntry_SumaYRegistraMovimiento(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Cerda", "15", 50)
	store.SeedStock("Cerda", "15", 20, 50)
	uc := newStockUC(store, true)

	result, err := uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Cerda", Variante: "15", Cantidad: 100,
		Proveedor: "ACME", Documento: "remito 0001-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, 120, result.NuevoStock)
	assert.False(t, result.LineaCreada)

	rows := store.FindStock("Cerda", "15")
	require.Len(t, rows, 1)
	assert.Equal(t, 120, rows[0].StockActual)
	assert.NotNil(t, rows[0].UltimaEntrada, "debe registrarse la fecha de la entrada")
	assert.Equal(t, "ACME", rows[0].ProveedorMasFrecuente)

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementENTRADA, mov.TipoMovimiento)
	assert.Equal(t, 100, mov.Cantidad)
	assert.Equal(t, "ACME", mov.Proveedor)
	assert.Equal(t, "remito 0001-1234", mov.Documento)
	assert.Equal(t, "maria", mov.Usuario)
}

// El proveedor más frecuente es la moda de las ENTRADAS, no el último.
func TestRegisterEntry_ProveedorMasFrecuenteEsLaModa(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Cerda", "15", 50)
	store.SeedStock("Cerda", "15", 0, 50)
	uc := newStockUC(store, true)

	ctx := context.Background()
	for _, prov := range []string{"ACME", "ACME", "Cerdas del Sur"} {
		_, err := uc.RegisterEntry(ctx, "maria", dto.RegisterEntryRequest{
			Tipo: "Cerda", Variante: "15", Cantidad: 10, Proveedor: prov,
		})
		require.NoError(t, err)
	}

	rows := store.FindStock("Cerda", "15")
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0].ProveedorMasFrecuente,
		"dos entradas de ACME contra una de Cerdas del Sur")
}

// Combinación fuera del catálogo: la entrada se rechaza sin tocar nada.
func TestRegisterEntry_FueraDeCatalogo(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	_, err := uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Titanio", Variante: "99", Cantidad: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Movements)
	assert.Empty(t, store.Stock)
}

// Alta implícita activa: la fila inexistente se crea con mínimo 0 y el
// resultado lo marca como advertencia.
func TestRegisterEntry_AltaImplicita(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Chapita", "20", 50)
	uc := newStockUC(store, true)

	result, err := uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Chapita", Variante: "20", Cantidad: 30,
	})
	require.NoError(t, err)
	assert.True(t, result.LineaCreada)
	assert.Equal(t, 30, result.NuevoStock)

	rows := store.FindStock("Chapita", "20")
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].StockMinimo)
}

// Alta implícita apagada: la fila inexistente es un error.
func TestRegisterEntry_SinAltaImplicita(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Chapita", "20", 50)
	uc := newStockUC(store, false)

	_, err := uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Chapita", Variante: "20", Cantidad: 30,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterEntry_CantidadInvalida(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	_, err := uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Cerda", Variante: "15", Cantidad: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.RegisterEntry(context.Background(), "maria", dto.RegisterEntryRequest{
		Tipo: "Cerda", Variante: "15", Cantidad: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Un ajuste negativo deja un movimiento SALIDA con la magnitud del delta.
func TestAdjust_NegativoDejaSalida(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Mango", "15 - virola 1", 40, 50)
	uc := newStockUC(store, true)

	result, err := uc.Adjust(context.Background(), "jose", dto.AdjustStockRequest{
		Tipo: "Mango", Variante: "15 - virola 1", Delta: -5, Observaciones: "rotura en depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, 35, result.NuevoStock)

	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementSALIDA, store.Movements[0].TipoMovimiento)
	assert.Equal(t, 5, store.Movements[0].Cantidad, "la cantidad es magnitud, sin signo")
	assert.Equal(t, "rotura en depósito", store.Movements[0].Observaciones)
}

func TestAdjust_PositivoDejaAjuste(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Mango", "15 - virola 1", 40, 50)
	uc := newStockUC(store, true)

	result, err := uc.Adjust(context.Background(), "jose", dto.AdjustStockRequest{
		Tipo: "Mango", Variante: "15 - virola 1", Delta: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 48, result.NuevoStock)

	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementAJUSTE, store.Movements[0].TipoMovimiento)
	assert.Equal(t, 8, store.Movements[0].Cantidad)
}

// El stock nunca queda negativo: el ajuste que pasaría de cero se rechaza
// entero y no deja movimiento.
func TestAdjust_NuncaNegativo(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Mango", "15 - virola 1", 3, 50)
	uc := newStockUC(store, true)

	_, err := uc.Adjust(context.Background(), "jose", dto.AdjustStockRequest{
		Tipo: "Mango", Variante: "15 - virola 1", Delta: -10,
	})

	var negErr *domain.WouldGoNegativeError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, 3, negErr.Actual)
	assert.Equal(t, -10, negErr.Delta)

	rows := store.FindStock("Mango", "15 - virola 1")
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].StockActual, "sin efectos parciales")
	assert.Empty(t, store.Movements)
}

func TestAdjust_DeltaCeroEsInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	_, err := uc.Adjust(context.Background(), "jose", dto.AdjustStockRequest{
		Tipo: "Mango", Variante: "15 - virola 1", Delta: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Filas duplicadas bloquean toda mutación sobre la combinación hasta fusionar.
func TestAdjust_DuplicadosBloquean(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Cerda", "15", 10, 50)
	store.SeedStock("Cerda", "15", 7, 50)
	uc := newStockUC(store, true)

	_, err := uc.Adjust(context.Background(), "jose", dto.AdjustStockRequest{
		Tipo: "Cerda", Variante: "15", Delta: 5,
	})

	var dupErr *domain.DuplicateStockLinesError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, 2, dupErr.Count)
}

// La fusión de duplicados suma stock, toma el mínimo más alto y la última
// entrada más reciente; una segunda pasada no cambia nada.
func TestMergeDuplicates(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Cerda", "15", 10, 50)
	store.SeedStock("Cerda", "15", 7, 80)
	store.SeedStock("Mango", "15 - virola 1", 40, 50)
	uc := newStockUC(store, true)

	merged, err := uc.MergeDuplicates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	rows := store.FindStock("Cerda", "15")
	require.Len(t, rows, 1)
	assert.Equal(t, 17, rows[0].StockActual)
	assert.Equal(t, 80, rows[0].StockMinimo)

	// Idempotencia
	merged, err = uc.MergeDuplicates(context.Background())
	require.NoError(t, err)
	assert.Zero(t, merged)
	assert.Len(t, store.FindStock("Cerda", "15"), 1)
}

func TestGetLine_NoExiste(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	_, err := uc.GetLine(context.Background(), "Cerda", "15")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLines_FiltroBajoMinimo(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedStock("Cerda", "15", 10, 50)
	store.SeedStock("Mango", "15 - virola 1", 90, 50)
	uc := newStockUC(store, true)

	lines, err := uc.ListLines(context.Background(), repository.StockFilter{SoloBajoMinimo: true})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Cerda", lines[0].Tipo)
	assert.True(t, lines[0].BajoMinimo)
}

func TestQueryMovements_KindInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	_, err := uc.QueryMovements(context.Background(), repository.MovementFilter{Kinds: []string{"TRANSFERENCIA"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateMinimo_NegativoEsInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newStockUC(store, true)

	err := uc.UpdateMinimo(context.Background(), "Cerda", "15", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
