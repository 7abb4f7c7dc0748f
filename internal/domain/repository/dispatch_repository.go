package repository

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// DispatchRepository define el puerto del registro de despachos. Append-only.
type DispatchRepository interface {
	// NextID devuelve max(id_despacho) + 1, o 1 si no hay despachos. Debe
	// invocarse dentro de la transacción del despacho.
	NextID(ctx context.Context) (int64, error)
	Append(ctx context.Context, d *entity.Dispatch) error
	GetByID(ctx context.Context, idDespacho int64) (*entity.Dispatch, error)
	ListByOrder(ctx context.Context, pedidoID int64) ([]*entity.Dispatch, error)
	// TotalDispatched suma las cantidades ya despachadas contra un pedido.
	TotalDispatched(ctx context.Context, pedidoID int64) (int, error)
}
