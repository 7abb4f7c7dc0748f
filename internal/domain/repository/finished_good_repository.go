package repository

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// FinishedGoodRepository define el puerto de stock de producto terminado.
// Las filas se crean de forma perezosa con la primera producción.
type FinishedGoodRepository interface {
	// Get devuelve nil (sin error) si la variante no existe todavía.
	Get(ctx context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error)
	Upsert(ctx context.Context, fg *entity.FinishedGood) error
	List(ctx context.Context) ([]*entity.FinishedGood, error)
}
