package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// CatalogUseCase administra el catálogo de materias primas. El catálogo define
// qué combinaciones (tipo, variante) acepta el registro de entradas.
type CatalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalogRepo: catalogRepo}
}

// Seed asegura que el catálogo por defecto exista (upsert-merge: conserva lo
// ya cargado y agrega lo que falte). Devuelve cuántas filas aplicó.
func (uc *CatalogUseCase) Seed(ctx context.Context) (int, error) {
	applied := 0
	for _, e := range entity.DefaultCatalog() {
		entry := e
		if err := uc.catalogRepo.Upsert(ctx, &entry); err != nil {
			return applied, fmt.Errorf("seed catálogo %s - %s: %w", e.Tipo, e.Variante, err)
		}
		applied++
	}
	return applied, nil
}

// Upsert agrega o actualiza una combinación del catálogo.
func (uc *CatalogUseCase) Upsert(ctx context.Context, entry entity.CatalogEntry) error {
	entry.Tipo = strings.TrimSpace(entry.Tipo)
	entry.Variante = strings.TrimSpace(entry.Variante)
	if entry.Tipo == "" || entry.Variante == "" || entry.StockMinimo < 0 {
		return domain.ErrInvalidInput
	}
	return uc.catalogRepo.Upsert(ctx, &entry)
}

// ListTypes devuelve los tipos de materia prima conocidos.
func (uc *CatalogUseCase) ListTypes(ctx context.Context) ([]string, error) {
	return uc.catalogRepo.ListTypes(ctx)
}

// ListVariants devuelve las variantes de un tipo.
func (uc *CatalogUseCase) ListVariants(ctx context.Context, tipo string) ([]string, error) {
	tipo = strings.TrimSpace(tipo)
	if tipo == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.catalogRepo.ListVariants(ctx, tipo)
}

// List devuelve el catálogo completo.
func (uc *CatalogUseCase) List(ctx context.Context) ([]*entity.CatalogEntry, error) {
	return uc.catalogRepo.List(ctx)
}
