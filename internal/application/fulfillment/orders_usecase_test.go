package fulfillment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/fulfillment"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/testutil"
)

// fakeNoteGen genera un "PDF" fijo para no depender del motor real.
type fakeNoteGen struct {
	lastDispatch *entity.Dispatch
}

func (g *fakeNoteGen) Generate(d *entity.Dispatch, _ *entity.Order) ([]byte, error) {
	g.lastDispatch = d
	return []byte("%PDF-fake"), nil
}

func newOrderUC(store *testutil.MemStore) (*fulfillment.OrderUseCase, *fakeNoteGen) {
	repos := store.Repos()
	gen := &fakeNoteGen{}
	uc := fulfillment.NewOrderUseCase(
		&testutil.TxRunner{Store: store},
		repos.Orders, repos.Stock, repos.Dispatches, gen,
	)
	return uc, gen
}

func seedRecipeStock(store *testutil.MemStore, mangos, chapitas int) {
	store.SeedStock("Mango", "15 - virola 1", mangos, 50)
	store.SeedStock("Chapita", "15", chapitas, 50)
}

func pedidoPincel(cantidad int) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Cliente:          "Pinturerías Colibrí",
		TipoProducto:     "pincel normal",
		VarianteProducto: "15 - virola 1",
		Cantidad:         cantidad,
		FechaEntrega:     "2026-09-15",
	}
}

// El pedido nace pendiente. Con stock suficiente la disponibilidad es OK y
// no hay advertencia.
func TestCreateOrder_Pendiente(t *testing.T) {
	store := testutil.NewMemStore()
	seedRecipeStock(store, 100, 100)
	uc, _ := newOrderUC(store)

	resp, err := uc.Create(context.Background(), pedidoPincel(10))
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPendiente, resp.Order.Estado)
	assert.Equal(t, "OK", resp.Order.DisponibilidadMP)
	assert.Empty(t, resp.Advertencia)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), resp.Order.FechaEntrega)
}

// La falta de materia prima no bloquea el alta: vuelve como advertencia.
func TestCreateOrder_FaltanteNoBloquea(t *testing.T) {
	store := testutil.NewMemStore()
	seedRecipeStock(store, 3, 100)
	uc, _ := newOrderUC(store)

	resp, err := uc.Create(context.Background(), pedidoPincel(10))
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPendiente, resp.Order.Estado)
	assert.Contains(t, resp.Advertencia, "Mango")
	require.Len(t, store.Orders, 1, "el pedido se crea igual")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	store := testutil.NewMemStore()
	uc, _ := newOrderUC(store)
	ctx := context.Background()

	in := pedidoPincel(10)
	in.Cliente = "  "
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = pedidoPincel(0)
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = pedidoPincel(10)
	in.FechaEntrega = "15/09/2026"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Generar producción en modo completo produce la cantidad del pedido, debita
// la materia prima, acredita terminados y pasa el pedido a en_produccion,
// registrando la producción con el pedido de origen.
func TestGenerateProduction_Completo(t *testing.T) {
	store := testutil.NewMemStore()
	seedRecipeStock(store, 50, 50)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderPendiente,
	})
	uc, _ := newOrderUC(store)

	resp, err := uc.GenerateProduction(context.Background(), id, dto.GenerateProductionRequest{Modo: dto.ModoCompleto}, "maria")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderEnProduccion, resp.Estado)

	assert.Equal(t, 40, store.FindStock("Mango", "15 - virola 1")[0].StockActual)
	fg := store.FindFinished("pincel normal", "15 - virola 1")
	require.NotNil(t, fg)
	assert.Equal(t, 10, fg.StockActual)

	require.Len(t, store.Production, 1)
	require.NotNil(t, store.Production[0].PedidoID)
	assert.Equal(t, id, *store.Production[0].PedidoID)
	assert.Contains(t, store.Production[0].Nota, "pedido")
}

// Modo parcial produce la cantidad indicada, no la del pedido.
func TestGenerateProduction_Parcial(t *testing.T) {
	store := testutil.NewMemStore()
	seedRecipeStock(store, 50, 50)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderPendiente,
	})
	uc, _ := newOrderUC(store)

	_, err := uc.GenerateProduction(context.Background(), id, dto.GenerateProductionRequest{Modo: dto.ModoParcial, Cantidad: 4}, "maria")
	require.NoError(t, err)
	assert.Equal(t, 46, store.FindStock("Mango", "15 - virola 1")[0].StockActual)
	assert.Equal(t, 4, store.FindFinished("pincel normal", "15 - virola 1").StockActual)
}

// Sin stock suficiente, el faltante aborta la tx: el pedido no cambia de estado.
func TestGenerateProduction_InsuficienteNoCambiaEstado(t *testing.T) {
	store := testutil.NewMemStore()
	seedRecipeStock(store, 2, 50)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderPendiente,
	})
	uc, _ := newOrderUC(store)

	_, err := uc.GenerateProduction(context.Background(), id, dto.GenerateProductionRequest{Modo: dto.ModoCompleto}, "maria")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	o, _ := store.Repos().Orders.GetByID(context.Background(), id)
	assert.Equal(t, entity.OrderPendiente, o.Estado)
	assert.Empty(t, store.Production)
}

// Solo los pedidos abiertos admiten producción.
func TestGenerateProduction_EstadoTerminal(t *testing.T) {
	store := testutil.NewMemStore()
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderCompletado,
	})
	uc, _ := newOrderUC(store)

	_, err := uc.GenerateProduction(context.Background(), id, dto.GenerateProductionRequest{Modo: dto.ModoCompleto}, "maria")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderState)
}

func TestGenerateProduction_ModoInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	uc, _ := newOrderUC(store)

	_, err := uc.GenerateProduction(context.Background(), 1, dto.GenerateProductionRequest{Modo: "total"}, "maria")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GenerateProduction(context.Background(), 1, dto.GenerateProductionRequest{Modo: dto.ModoParcial, Cantidad: 0}, "maria")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Despachos parciales acumulan: 4 + 6 sobre un pedido de 10 deja el primero
// en confirmado y el segundo completa el pedido.
func TestDispatch_ParcialesAcumulan(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 25)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)
	ctx := context.Background()

	d1, err := uc.Dispatch(ctx, id, dto.DispatchRequest{Modo: dto.ModoParcial, Cantidad: 4}, "jose")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmado, d1.EstadoPedido)
	assert.Equal(t, int64(1), d1.IDDespacho)

	d2, err := uc.Dispatch(ctx, id, dto.DispatchRequest{Modo: dto.ModoParcial, Cantidad: 6}, "jose")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompletado, d2.EstadoPedido)
	assert.Equal(t, int64(2), d2.IDDespacho)

	assert.Equal(t, 15, store.FindFinished("pincel normal", "15 - virola 1").StockActual)
	o, _ := store.Repos().Orders.GetByID(ctx, id)
	assert.Equal(t, entity.OrderCompletado, o.Estado)
}

// Modo completo despacha la cantidad total del pedido de una vez.
func TestDispatch_Completo(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 10)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)

	d, err := uc.Dispatch(context.Background(), id, dto.DispatchRequest{Modo: dto.ModoCompleto}, "jose")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompletado, d.EstadoPedido)
	assert.Zero(t, store.FindFinished("pincel normal", "15 - virola 1").StockActual)
}

// Sin terminados suficientes el despacho se rechaza entero.
func TestDispatch_TerminadosInsuficientes(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 3)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)

	_, err := uc.Dispatch(context.Background(), id, dto.DispatchRequest{Modo: dto.ModoCompleto}, "jose")

	var insErr *domain.InsufficientFinishedStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 10, insErr.Requerido)
	assert.Equal(t, 3, insErr.Disponible)

	assert.Equal(t, 3, store.FindFinished("pincel normal", "15 - virola 1").StockActual)
	assert.Empty(t, store.Dispatches)
}

// Producto nunca producido: disponible 0, mismo rechazo.
func TestDispatch_SinFilaDeTerminados(t *testing.T) {
	store := testutil.NewMemStore()
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 5, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)

	_, err := uc.Dispatch(context.Background(), id, dto.DispatchRequest{Modo: dto.ModoCompleto}, "jose")
	assert.ErrorIs(t, err, domain.ErrInsufficientFinished)
}

// PATCH administrativo: cancelar no repone stock.
func TestUpdate_CancelarNoMueveStock(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 8)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)

	estado := entity.OrderCancelado
	resp, err := uc.Update(context.Background(), id, dto.UpdateOrderRequest{Estado: &estado})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelado, resp.Estado)
	assert.Equal(t, 8, store.FindFinished("pincel normal", "15 - virola 1").StockActual)
}

func TestUpdate_EstadoInvalido(t *testing.T) {
	store := testutil.NewMemStore()
	id := store.SeedOrder(entity.Order{Cliente: "Colibrí", TipoProducto: "pincel normal", Cantidad: 1, Estado: entity.OrderPendiente})
	uc, _ := newOrderUC(store)

	estado := "archivado"
	_, err := uc.Update(context.Background(), id, dto.UpdateOrderRequest{Estado: &estado})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderState)

	_, err = uc.Update(context.Background(), id, dto.UpdateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_PedidoInexistente(t *testing.T) {
	store := testutil.NewMemStore()
	uc, _ := newOrderUC(store)

	_, err := uc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El remito PDF se genera a partir del despacho registrado.
func TestDispatchNote(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 10)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, gen := newOrderUC(store)
	ctx := context.Background()

	d, err := uc.Dispatch(ctx, id, dto.DispatchRequest{Modo: dto.ModoParcial, Cantidad: 4}, "jose")
	require.NoError(t, err)

	pdfBytes, err := uc.DispatchNote(ctx, d.IDDespacho)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	require.NotNil(t, gen.lastDispatch)
	assert.Equal(t, 4, gen.lastDispatch.Cantidad)

	_, err = uc.DispatchNote(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ListDispatches devuelve los despachos del pedido en orden de ID.
func TestListDispatches(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedFinished("pincel normal", "15 - virola 1", 10)
	id := store.SeedOrder(entity.Order{
		Cliente: "Colibrí", TipoProducto: "pincel normal", VarianteProducto: "15 - virola 1",
		Cantidad: 10, Estado: entity.OrderEnProduccion,
	})
	uc, _ := newOrderUC(store)
	ctx := context.Background()

	_, err := uc.Dispatch(ctx, id, dto.DispatchRequest{Modo: dto.ModoParcial, Cantidad: 4}, "jose")
	require.NoError(t, err)
	_, err = uc.Dispatch(ctx, id, dto.DispatchRequest{Modo: dto.ModoParcial, Cantidad: 6}, "jose")
	require.NoError(t, err)

	disps, err := uc.ListDispatches(ctx, id)
	require.NoError(t, err)
	require.Len(t, disps, 2)
	assert.Equal(t, int64(1), disps[0].IDDespacho)
	assert.Equal(t, 4, disps[0].Cantidad)
	assert.Equal(t, int64(2), disps[1].IDDespacho)
}
