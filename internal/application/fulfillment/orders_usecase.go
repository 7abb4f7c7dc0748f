package fulfillment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/recipe"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// OrderUseCase maneja el ciclo de vida de los pedidos: alta, consulta,
// generación de producción y despacho. La producción desde pedido reutiliza la
// transacción de producción del inventario (inventory.ProduceInTx) dentro de
// la misma tx que bloquea y actualiza el pedido.
type OrderUseCase struct {
	txRunner  inventory.TxRunner
	orderRepo repository.OrderRepository
	stockRepo repository.StockRepository
	dispRepo  repository.DispatchRepository
	noteGen   DispatchNoteGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner inventory.TxRunner,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	dispRepo repository.DispatchRepository,
	noteGen DispatchNoteGenerator,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		stockRepo: stockRepo,
		dispRepo:  dispRepo,
		noteGen:   noteGen,
	}
}

// fechaEntregaLayout formato de fecha de entrega en los bodies HTTP.
const fechaEntregaLayout = "2006-01-02"

// Create da de alta un pedido en estado pendiente. La falta de materia prima
// NO bloquea el alta: se devuelve como advertencia para que el operario decida.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	in.Cliente = strings.TrimSpace(in.Cliente)
	in.TipoProducto = strings.TrimSpace(in.TipoProducto)
	in.VarianteProducto = strings.TrimSpace(in.VarianteProducto)
	if in.Cliente == "" || in.TipoProducto == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	entrega, err := time.Parse(fechaEntregaLayout, in.FechaEntrega)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_entrega debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}

	o := &entity.Order{
		Fecha:            time.Now(),
		Cliente:          in.Cliente,
		TipoProducto:     in.TipoProducto,
		VarianteProducto: in.VarianteProducto,
		Cantidad:         in.Cantidad,
		FechaEntrega:     entrega,
		Estado:           entity.OrderPendiente,
		Nota:             in.Nota,
	}
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	resp := &dto.CreateOrderResponse{Order: *toOrderResponse(o, "")}
	if adv, err := uc.availability(ctx, o); err == nil && adv != "OK" {
		resp.Advertencia = adv
		resp.Order.DisponibilidadMP = adv
	} else if err == nil {
		resp.Order.DisponibilidadMP = adv
	}
	return resp, nil
}

// Get devuelve un pedido con su disponibilidad de materia prima vigente.
func (uc *OrderUseCase) Get(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %d", domain.ErrNotFound, id)
	}
	adv, err := uc.availability(ctx, o)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, adv), nil
}

// List lista pedidos anotando la disponibilidad de materia prima de cada uno.
// La anotación es informativa y se calcula sin bloqueo.
func (uc *OrderUseCase) List(ctx context.Context, f repository.OrderFilter) ([]dto.OrderResponse, error) {
	if f.Estado != "" && !entity.ValidOrderState(f.Estado) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidOrderState, f.Estado)
	}
	orders, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		adv, err := uc.availability(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, *toOrderResponse(o, adv))
	}
	return out, nil
}

// Update aplica un PATCH parcial sobre el pedido: estado, fecha de entrega
// y/o nota. El cambio de estado es una corrección administrativa y no mueve
// stock; cancelar un pedido no repone materia prima ni terminados.
func (uc *OrderUseCase) Update(ctx context.Context, id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Estado == nil && in.FechaEntrega == nil && in.Nota == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Estado != nil && !entity.ValidOrderState(*in.Estado) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidOrderState, *in.Estado)
	}
	var entrega *time.Time
	if in.FechaEntrega != nil {
		t, err := time.Parse(fechaEntregaLayout, *in.FechaEntrega)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_entrega debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		entrega = &t
	}

	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %d", domain.ErrNotFound, id)
	}
	if err := uc.orderRepo.UpdateFields(ctx, id, in.Estado, entrega, in.Nota); err != nil {
		return nil, err
	}
	o, err = uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, ""), nil
}

// GenerateProduction produce contra un pedido. modo completo produce la
// cantidad total del pedido; modo parcial la cantidad indicada. Corre en una
// única transacción: bloqueo del pedido, producción (débitos de materia prima,
// movimientos, registro, crédito de terminados) y pase del pedido a
// en_produccion. No hay tope de producciones repetidas contra el mismo pedido.
func (uc *OrderUseCase) GenerateProduction(ctx context.Context, id int64, in dto.GenerateProductionRequest, usuario string) (*dto.OrderResponse, error) {
	cantidad, err := resolveModo(in.Modo, in.Cantidad)
	if err != nil {
		return nil, err
	}

	var updated *entity.Order
	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		o, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: pedido %d", domain.ErrNotFound, id)
		}
		if !o.Abierto() {
			return fmt.Errorf("%w: el pedido %d está %s", domain.ErrInvalidOrderState, id, o.Estado)
		}
		if in.Modo == dto.ModoCompleto {
			cantidad = o.Cantidad
		}

		now := time.Now()
		if err := inventory.ProduceInTx(ctx, tx, inventory.ProduceInput{
			TipoProducto:     o.TipoProducto,
			VarianteProducto: o.VarianteProducto,
			Cantidad:         cantidad,
			Usuario:          usuario,
			Nota:             fmt.Sprintf("Generado desde pedido %d", id),
			PedidoID:         &id,
		}, now); err != nil {
			return err
		}

		estado := entity.OrderEnProduccion
		if err := tx.Orders.UpdateFields(ctx, id, &estado, nil, nil); err != nil {
			return err
		}
		o.Estado = estado
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated, ""), nil
}

// Dispatch despacha producto terminado contra un pedido. modo completo despacha
// la cantidad total del pedido; modo parcial la indicada. El pedido queda
// completado cuando lo despachado acumulado (incluido este despacho) cubre la
// cantidad pedida; si no, confirmado. El débito de terminados, el alta del
// despacho y el cambio de estado son una única transacción.
func (uc *OrderUseCase) Dispatch(ctx context.Context, id int64, in dto.DispatchRequest, usuario string) (*dto.DispatchResponse, error) {
	cantidad, err := resolveModo(in.Modo, in.Cantidad)
	if err != nil {
		return nil, err
	}

	var resp *dto.DispatchResponse
	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		o, err := tx.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: pedido %d", domain.ErrNotFound, id)
		}
		if !o.Abierto() {
			return fmt.Errorf("%w: el pedido %d está %s", domain.ErrInvalidOrderState, id, o.Estado)
		}
		if in.Modo == dto.ModoCompleto {
			cantidad = o.Cantidad
		}

		fg, err := tx.Finished.GetForUpdate(ctx, o.TipoProducto, o.VarianteProducto)
		if err != nil {
			return err
		}
		disponible := 0
		if fg != nil {
			disponible = fg.StockActual
		}
		if disponible < cantidad {
			return &domain.InsufficientFinishedStockError{
				TipoProducto:     o.TipoProducto,
				VarianteProducto: o.VarianteProducto,
				Requerido:        cantidad,
				Disponible:       disponible,
			}
		}
		fg.StockActual -= cantidad
		if err := tx.Finished.Upsert(ctx, fg); err != nil {
			return err
		}

		nextID, err := tx.Dispatches.NextID(ctx)
		if err != nil {
			return err
		}
		d := &entity.Dispatch{
			IDDespacho:       nextID,
			Fecha:            time.Now(),
			PedidoID:         o.ID,
			Cliente:          o.Cliente,
			TipoProducto:     o.TipoProducto,
			VarianteProducto: o.VarianteProducto,
			Cantidad:         cantidad,
			Nota:             in.Nota,
			Usuario:          usuario,
		}
		if err := tx.Dispatches.Append(ctx, d); err != nil {
			return err
		}

		acumulado, err := tx.Dispatches.TotalDispatched(ctx, o.ID)
		if err != nil {
			return err
		}
		estado := entity.OrderConfirmado
		if acumulado >= o.Cantidad {
			estado = entity.OrderCompletado
		}
		if err := tx.Orders.UpdateFields(ctx, o.ID, &estado, nil, nil); err != nil {
			return err
		}

		resp = &dto.DispatchResponse{
			IDDespacho:       d.IDDespacho,
			Fecha:            d.Fecha,
			PedidoID:         d.PedidoID,
			Cliente:          d.Cliente,
			TipoProducto:     d.TipoProducto,
			VarianteProducto: d.VarianteProducto,
			Cantidad:         d.Cantidad,
			EstadoPedido:     estado,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DispatchNote genera el remito PDF de un despacho ya registrado.
func (uc *OrderUseCase) DispatchNote(ctx context.Context, idDespacho int64) ([]byte, error) {
	d, err := uc.dispRepo.GetByID(ctx, idDespacho)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: despacho %d", domain.ErrNotFound, idDespacho)
	}
	o, err := uc.orderRepo.GetByID(ctx, d.PedidoID)
	if err != nil {
		return nil, err
	}
	return uc.noteGen.Generate(d, o)
}

// ListDispatches lista los despachos registrados contra un pedido.
func (uc *OrderUseCase) ListDispatches(ctx context.Context, pedidoID int64) ([]dto.DispatchResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %d", domain.ErrNotFound, pedidoID)
	}
	rows, err := uc.dispRepo.ListByOrder(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DispatchResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.DispatchResponse{
			IDDespacho:       d.IDDespacho,
			Fecha:            d.Fecha,
			PedidoID:         d.PedidoID,
			Cliente:          d.Cliente,
			TipoProducto:     d.TipoProducto,
			VarianteProducto: d.VarianteProducto,
			Cantidad:         d.Cantidad,
			EstadoPedido:     o.Estado,
		})
	}
	return out, nil
}

// availability evalúa si el stock vigente de materia prima alcanza para
// producir el pedido completo. Devuelve "OK" o el detalle de faltantes.
// Lectura sin bloqueo: es una anotación, no una reserva.
func (uc *OrderUseCase) availability(ctx context.Context, o *entity.Order) (string, error) {
	lineas := recipe.Resolve(o.TipoProducto, o.VarianteProducto, o.Cantidad)
	if lineas == nil {
		return "sin receta para " + o.TipoProducto, nil
	}
	var faltantes []domain.Shortfall
	for _, l := range lineas {
		rows, err := uc.stockRepo.Get(ctx, l.Tipo, l.Variante)
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			faltantes = append(faltantes, domain.Shortfall{
				Tipo: l.Tipo, Variante: l.Variante, Requerido: l.Cantidad, SinFila: true,
			})
			continue
		}
		if rows[0].StockActual < l.Cantidad {
			faltantes = append(faltantes, domain.Shortfall{
				Tipo: l.Tipo, Variante: l.Variante,
				Requerido: l.Cantidad, Disponible: rows[0].StockActual,
			})
		}
	}
	if len(faltantes) == 0 {
		return "OK", nil
	}
	return (&domain.InsufficientStockError{Shortfalls: faltantes}).Error(), nil
}

func resolveModo(modo string, cantidad int) (int, error) {
	switch modo {
	case dto.ModoCompleto:
		// la cantidad real se toma del pedido dentro de la tx
		return 0, nil
	case dto.ModoParcial:
		if cantidad <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return cantidad, nil
	default:
		return 0, fmt.Errorf("%w: modo debe ser %q o %q", domain.ErrInvalidInput, dto.ModoCompleto, dto.ModoParcial)
	}
}

func toOrderResponse(o *entity.Order, disponibilidad string) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:               o.ID,
		Fecha:            o.Fecha,
		Cliente:          o.Cliente,
		TipoProducto:     o.TipoProducto,
		VarianteProducto: o.VarianteProducto,
		Cantidad:         o.Cantidad,
		FechaEntrega:     o.FechaEntrega,
		Estado:           o.Estado,
		Nota:             o.Nota,
		DisponibilidadMP: disponibilidad,
	}
}
