package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

// DispatchRepo implementación de DispatchRepository sobre PostgreSQL
// (usable con pool o tx). Append-only.
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

const dispatchColumns = `id_despacho, fecha, pedido_id, cliente, tipo_producto, variante_producto, cantidad, nota, usuario`

// NextID devuelve max(id_despacho) + 1, o 1 si no hay despachos. Se apoya en el
// bloqueo de fila del pedido para serializar despachos concurrentes.
func (r *DispatchRepo) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(id_despacho), 0) + 1 FROM despachos`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next id despacho: %w", err)
	}
	return next, nil
}

// Append persiste un despacho.
func (r *DispatchRepo) Append(ctx context.Context, d *entity.Dispatch) error {
	query := `
		INSERT INTO despachos (` + dispatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.IDDespacho, d.Fecha, d.PedidoID, d.Cliente, d.TipoProducto,
		d.VarianteProducto, d.Cantidad, d.Nota, d.Usuario)
	if err != nil {
		return fmt.Errorf("append despacho: %w", err)
	}
	return nil
}

// GetByID devuelve nil (sin error) si el despacho no existe.
func (r *DispatchRepo) GetByID(ctx context.Context, idDespacho int64) (*entity.Dispatch, error) {
	var d entity.Dispatch
	err := r.q.QueryRow(ctx,
		`SELECT `+dispatchColumns+` FROM despachos WHERE id_despacho = $1`, idDespacho,
	).Scan(&d.IDDespacho, &d.Fecha, &d.PedidoID, &d.Cliente, &d.TipoProducto,
		&d.VarianteProducto, &d.Cantidad, &d.Nota, &d.Usuario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get despacho: %w", err)
	}
	return &d, nil
}

// ListByOrder lista los despachos de un pedido, más antiguos primero.
func (r *DispatchRepo) ListByOrder(ctx context.Context, pedidoID int64) ([]*entity.Dispatch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+dispatchColumns+` FROM despachos WHERE pedido_id = $1 ORDER BY id_despacho`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list despachos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dispatch
	for rows.Next() {
		var d entity.Dispatch
		if err := rows.Scan(&d.IDDespacho, &d.Fecha, &d.PedidoID, &d.Cliente, &d.TipoProducto,
			&d.VarianteProducto, &d.Cantidad, &d.Nota, &d.Usuario); err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// TotalDispatched suma las cantidades ya despachadas contra un pedido.
func (r *DispatchRepo) TotalDispatched(ctx context.Context, pedidoID int64) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM despachos WHERE pedido_id = $1`, pedidoID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total despachado: %w", err)
	}
	return total, nil
}
