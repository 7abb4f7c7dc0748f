package repository

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// StockFilter filtra listados de stock de materia prima.
type StockFilter struct {
	Tipo           string
	Variante       string
	SoloBajoMinimo bool
}

// StockRepository define el puerto para consultar/actualizar el libro de stock.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve las filas que coinciden con (tipo, variante). Una lista vacía
	// significa que la combinación no existe; más de una fila es un estado de
	// duplicados que el caller debe tratar como error.
	Get(ctx context.Context, tipo, variante string) ([]*entity.StockLine, error)
	// GetForUpdate igual que Get pero bloquea las filas (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, tipo, variante string) ([]*entity.StockLine, error)
	Create(ctx context.Context, line *entity.StockLine) error
	Update(ctx context.Context, line *entity.StockLine) error
	// Delete elimina una fila por ID. Solo se usa al fusionar duplicados.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter StockFilter) ([]*entity.StockLine, error)
	UpdateMinimo(ctx context.Context, tipo, variante string, minimo int) error
}
