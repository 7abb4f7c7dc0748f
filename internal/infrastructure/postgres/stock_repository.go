package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La tabla permite filas duplicadas por (tipo, variante) a propósito: el estado
// de duplicados debe ser representable para poder detectarlo y fusionarlo.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, tipo, variante, stock_minimo, stock_actual, ultima_entrada, proveedor_mas_frecuente`

func scanStockRows(rows pgx.Rows) ([]*entity.StockLine, error) {
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		var l entity.StockLine
		if err := rows.Scan(&l.ID, &l.Tipo, &l.Variante, &l.StockMinimo, &l.StockActual,
			&l.UltimaEntrada, &l.ProveedorMasFrecuente); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Get devuelve todas las filas para (tipo, variante), en orden de inserción.
func (r *StockRepo) Get(ctx context.Context, tipo, variante string) ([]*entity.StockLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stockColumns+` FROM stock_mp WHERE tipo = $1 AND variante = $2 ORDER BY id`,
		tipo, variante)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return scanStockRows(rows)
}

// GetForUpdate igual que Get pero bloquea las filas (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, tipo, variante string) ([]*entity.StockLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stockColumns+` FROM stock_mp WHERE tipo = $1 AND variante = $2 ORDER BY id FOR UPDATE`,
		tipo, variante)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return scanStockRows(rows)
}

// Create inserta una fila nueva y asigna su ID.
func (r *StockRepo) Create(ctx context.Context, line *entity.StockLine) error {
	query := `
		INSERT INTO stock_mp (tipo, variante, stock_minimo, stock_actual, ultima_entrada, proveedor_mas_frecuente)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		line.Tipo, line.Variante, line.StockMinimo, line.StockActual,
		line.UltimaEntrada, line.ProveedorMasFrecuente,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// Update persiste la fila completa por ID.
func (r *StockRepo) Update(ctx context.Context, line *entity.StockLine) error {
	query := `
		UPDATE stock_mp
		SET stock_minimo = $2, stock_actual = $3, ultima_entrada = $4, proveedor_mas_frecuente = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		line.ID, line.StockMinimo, line.StockActual, line.UltimaEntrada, line.ProveedorMasFrecuente)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: fila %d no existe", line.ID)
	}
	return nil
}

// Delete elimina una fila por ID. Solo lo usa la fusión de duplicados.
func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_mp WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// List lista filas de stock según el filtro, ordenadas por tipo y variante.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockLine, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_mp WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filter.Tipo)
		pos++
	}
	if filter.Variante != "" {
		query += fmt.Sprintf(" AND variante = $%d", pos)
		args = append(args, filter.Variante)
		pos++
	}
	if filter.SoloBajoMinimo {
		query += " AND stock_actual < stock_minimo"
	}
	query += " ORDER BY tipo, variante, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return scanStockRows(rows)
}

// UpdateMinimo actualiza el stock mínimo de todas las filas de (tipo, variante).
func (r *StockRepo) UpdateMinimo(ctx context.Context, tipo, variante string, minimo int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_mp SET stock_minimo = $3 WHERE tipo = $1 AND variante = $2`,
		tipo, variante, minimo)
	if err != nil {
		return fmt.Errorf("update minimo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update minimo: no hay filas para %s - %s", tipo, variante)
	}
	return nil
}
