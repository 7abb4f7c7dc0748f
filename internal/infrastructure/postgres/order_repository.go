package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, fecha, cliente, tipo_producto, variante_producto, cantidad, fecha_entrega, estado, nota`

// Create persiste el pedido y asigna su ID monotónico (bigserial).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO pedidos (fecha, cliente, tipo_producto, variante_producto, cantidad, fecha_entrega, estado, nota)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.Fecha, o.Cliente, o.TipoProducto, o.VarianteProducto, o.Cantidad,
		o.FechaEntrega, o.Estado, o.Nota,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create pedido: %w", err)
	}
	return nil
}

// GetByID devuelve nil (sin error) si el pedido no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id int64, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Fecha, &o.Cliente, &o.TipoProducto, &o.VarianteProducto,
		&o.Cantidad, &o.FechaEntrega, &o.Estado, &o.Nota)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &o, nil
}

// UpdateFields actualiza solo los campos no-nil.
func (r *OrderRepo) UpdateFields(ctx context.Context, id int64, estado *string, fechaEntrega *time.Time, nota *string) error {
	query := `UPDATE pedidos SET id = id`
	args := []any{id}
	pos := 2
	if estado != nil {
		query += fmt.Sprintf(", estado = $%d", pos)
		args = append(args, *estado)
		pos++
	}
	if fechaEntrega != nil {
		query += fmt.Sprintf(", fecha_entrega = $%d", pos)
		args = append(args, *fechaEntrega)
		pos++
	}
	if nota != nil {
		query += fmt.Sprintf(", nota = $%d", pos)
		args = append(args, *nota)
		pos++
	}
	query += " WHERE id = $1"
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update pedido: %d no existe", id)
	}
	return nil
}

// List lista pedidos según el filtro, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, f.Estado)
		pos++
	}
	if f.TipoProducto != "" {
		query += fmt.Sprintf(" AND tipo_producto = $%d", pos)
		args = append(args, f.TipoProducto)
		pos++
	}
	if f.Cliente != "" {
		query += fmt.Sprintf(" AND cliente ILIKE $%d", pos)
		args = append(args, "%"+f.Cliente+"%")
		pos++
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Fecha, &o.Cliente, &o.TipoProducto, &o.VarianteProducto,
			&o.Cantidad, &o.FechaEntrega, &o.Estado, &o.Nota); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
