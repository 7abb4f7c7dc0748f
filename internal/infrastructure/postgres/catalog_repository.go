package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Upsert inserta o actualiza la combinación (merge: conserva la fila y pisa el mínimo).
func (r *CatalogRepo) Upsert(ctx context.Context, entry *entity.CatalogEntry) error {
	query := `
		INSERT INTO catalogo (tipo, variante, stock_minimo)
		VALUES ($1, $2, $3)
		ON CONFLICT (tipo, variante)
		DO UPDATE SET stock_minimo = EXCLUDED.stock_minimo`
	_, err := r.q.Exec(ctx, query, entry.Tipo, entry.Variante, entry.StockMinimo)
	if err != nil {
		return fmt.Errorf("upsert catalogo: %w", err)
	}
	return nil
}

// Get obtiene una entrada por (tipo, variante). Devuelve nil si no existe.
func (r *CatalogRepo) Get(ctx context.Context, tipo, variante string) (*entity.CatalogEntry, error) {
	query := `SELECT tipo, variante, stock_minimo FROM catalogo WHERE tipo = $1 AND variante = $2`
	var e entity.CatalogEntry
	err := r.q.QueryRow(ctx, query, tipo, variante).Scan(&e.Tipo, &e.Variante, &e.StockMinimo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalogo: %w", err)
	}
	return &e, nil
}

// CountByKey cuenta las filas para (tipo, variante).
func (r *CatalogRepo) CountByKey(ctx context.Context, tipo, variante string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM catalogo WHERE tipo = $1 AND variante = $2`,
		tipo, variante,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count catalogo: %w", err)
	}
	return count, nil
}

// ListTypes devuelve los tipos distintos, ordenados.
func (r *CatalogRepo) ListTypes(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT tipo FROM catalogo ORDER BY tipo`)
	if err != nil {
		return nil, fmt.Errorf("list tipos catalogo: %w", err)
	}
	defer rows.Close()
	var tipos []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan tipo: %w", err)
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

// ListVariants devuelve las variantes de un tipo, ordenadas.
func (r *CatalogRepo) ListVariants(ctx context.Context, tipo string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT variante FROM catalogo WHERE tipo = $1 ORDER BY variante`, tipo)
	if err != nil {
		return nil, fmt.Errorf("list variantes catalogo: %w", err)
	}
	defer rows.Close()
	var variantes []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan variante: %w", err)
		}
		variantes = append(variantes, v)
	}
	return variantes, rows.Err()
}

// List devuelve el catálogo completo ordenado por tipo y variante.
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.CatalogEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT tipo, variante, stock_minimo FROM catalogo ORDER BY tipo, variante`)
	if err != nil {
		return nil, fmt.Errorf("list catalogo: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogEntry
	for rows.Next() {
		var e entity.CatalogEntry
		if err := rows.Scan(&e.Tipo, &e.Variante, &e.StockMinimo); err != nil {
			return nil, fmt.Errorf("scan catalogo: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
