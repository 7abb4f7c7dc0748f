package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL
// (usable con pool o tx). Append-only.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Append persiste un registro de producción.
func (r *ProductionRepo) Append(ctx context.Context, p *entity.ProductionRecord) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO produccion (id, fecha, tipo_producto, variante_producto, cantidad, usuario, nota, pedido_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Fecha, p.TipoProducto, p.VarianteProducto, p.Cantidad, p.Usuario, p.Nota, p.PedidoID)
	if err != nil {
		return fmt.Errorf("append produccion: %w", err)
	}
	return nil
}

// List devuelve registros de producción, fecha descendente.
func (r *ProductionRepo) List(ctx context.Context, f repository.ProductionFilter) ([]*entity.ProductionRecord, error) {
	query := `
		SELECT id, fecha, tipo_producto, variante_producto, cantidad, usuario, nota, pedido_id
		FROM produccion WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *f.Desde)
		pos++
	}
	if f.Hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *f.Hasta)
		pos++
	}
	if f.TipoProducto != "" {
		query += fmt.Sprintf(" AND tipo_producto = $%d", pos)
		args = append(args, f.TipoProducto)
		pos++
	}
	query += " ORDER BY fecha DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list produccion: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRecord
	for rows.Next() {
		var p entity.ProductionRecord
		if err := rows.Scan(&p.ID, &p.Fecha, &p.TipoProducto, &p.VarianteProducto,
			&p.Cantidad, &p.Usuario, &p.Nota, &p.PedidoID); err != nil {
			return nil, fmt.Errorf("scan produccion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
