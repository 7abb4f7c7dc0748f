package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.FinishedGoodRepository = (*FinishedGoodRepo)(nil)

// FinishedGoodRepo implementación de FinishedGoodRepository sobre PostgreSQL
// (usable con pool o tx). Una fila por (tipo_producto, variante_producto).
type FinishedGoodRepo struct {
	q Querier
}

// NewFinishedGoodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinishedGoodRepository(q Querier) *FinishedGoodRepo {
	return &FinishedGoodRepo{q: q}
}

// Get devuelve la fila o nil si la variante no existe todavía.
func (r *FinishedGoodRepo) Get(ctx context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error) {
	return r.get(ctx, tipoProducto, varianteProducto, false)
}

// GetForUpdate igual que Get pero bloquea la fila.
func (r *FinishedGoodRepo) GetForUpdate(ctx context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error) {
	return r.get(ctx, tipoProducto, varianteProducto, true)
}

func (r *FinishedGoodRepo) get(ctx context.Context, tipoProducto, varianteProducto string, forUpdate bool) (*entity.FinishedGood, error) {
	query := `
		SELECT id, tipo_producto, variante_producto, stock_actual
		FROM stock_terminados WHERE tipo_producto = $1 AND variante_producto = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var fg entity.FinishedGood
	err := r.q.QueryRow(ctx, query, tipoProducto, varianteProducto).Scan(
		&fg.ID, &fg.TipoProducto, &fg.VarianteProducto, &fg.StockActual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get terminados: %w", err)
	}
	return &fg, nil
}

// Upsert inserta o actualiza el stock de la variante.
func (r *FinishedGoodRepo) Upsert(ctx context.Context, fg *entity.FinishedGood) error {
	query := `
		INSERT INTO stock_terminados (tipo_producto, variante_producto, stock_actual)
		VALUES ($1, $2, $3)
		ON CONFLICT (tipo_producto, variante_producto)
		DO UPDATE SET stock_actual = EXCLUDED.stock_actual
		RETURNING id`
	err := r.q.QueryRow(ctx, query, fg.TipoProducto, fg.VarianteProducto, fg.StockActual).Scan(&fg.ID)
	if err != nil {
		return fmt.Errorf("upsert terminados: %w", err)
	}
	return nil
}

// List devuelve el stock de terminados ordenado por tipo y variante de producto.
func (r *FinishedGoodRepo) List(ctx context.Context) ([]*entity.FinishedGood, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tipo_producto, variante_producto, stock_actual
		FROM stock_terminados ORDER BY tipo_producto, variante_producto`)
	if err != nil {
		return nil, fmt.Errorf("list terminados: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinishedGood
	for rows.Next() {
		var fg entity.FinishedGood
		if err := rows.Scan(&fg.ID, &fg.TipoProducto, &fg.VarianteProducto, &fg.StockActual); err != nil {
			return nil, fmt.Errorf("scan terminados: %w", err)
		}
		list = append(list, &fg)
	}
	return list, rows.Err()
}
