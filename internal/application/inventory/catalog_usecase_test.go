package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/testutil"
)

func newCatalogUC(store *testutil.MemStore) *inventory.CatalogUseCase {
	return inventory.NewCatalogUseCase(store.Repos().Catalog)
}

// El seed conserva lo ya cargado (upsert-merge) y es idempotente.
func TestCatalogSeed_Idempotente(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Cerda", "15", 80) // mínimo ajustado a mano
	uc := newCatalogUC(store)
	ctx := context.Background()

	applied, err := uc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(entity.DefaultCatalog()), applied)

	first := len(store.Catalog)
	_, err = uc.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, store.Catalog, first, "la segunda pasada no agrega filas")

	// El upsert del seed pisa el mínimo con el valor por defecto.
	entry, err := store.Repos().Catalog.Get(ctx, "Cerda", "15")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 50, entry.StockMinimo)
}

func TestCatalogUpsert_Validaciones(t *testing.T) {
	store := testutil.NewMemStore()
	uc := newCatalogUC(store)
	ctx := context.Background()

	err := uc.Upsert(ctx, entity.CatalogEntry{Tipo: " ", Variante: "15", StockMinimo: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Upsert(ctx, entity.CatalogEntry{Tipo: "Cerda", Variante: "15", StockMinimo: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Upsert(ctx, entity.CatalogEntry{Tipo: " Cerda ", Variante: " 15 ", StockMinimo: 40}))
	entry, err := store.Repos().Catalog.Get(ctx, "Cerda", "15")
	require.NoError(t, err)
	require.NotNil(t, entry, "tipo y variante deben guardarse sin espacios")
	assert.Equal(t, 40, entry.StockMinimo)
}

func TestCatalogListVariants(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCatalog("Chapita", "15", 50)
	store.SeedCatalog("Chapita", "10", 50)
	store.SeedCatalog("Cerda", "15", 50)
	uc := newCatalogUC(store)

	variants, err := uc.ListVariants(context.Background(), "Chapita")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "15"}, variants)

	_, err = uc.ListVariants(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
