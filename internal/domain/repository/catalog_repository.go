package repository

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia del catálogo de materias
// primas. El catálogo solo cambia vía seed/import (upsert-merge).
type CatalogRepository interface {
	Upsert(ctx context.Context, entry *entity.CatalogEntry) error
	Get(ctx context.Context, tipo, variante string) (*entity.CatalogEntry, error)
	// CountByKey cuenta las filas para (tipo, variante); se usa para validar
	// unicidad antes de registrar entradas.
	CountByKey(ctx context.Context, tipo, variante string) (int, error)
	ListTypes(ctx context.Context) ([]string, error)
	ListVariants(ctx context.Context, tipo string) ([]string, error)
	List(ctx context.Context) ([]*entity.CatalogEntry, error)
}
