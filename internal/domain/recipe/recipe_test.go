package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/domain/recipe"
)

// El pincel normal "15 - virola 1" consume 1 Mango(variante completa) y
// 1 Chapita(medida) por unidad.
func TestResolve_PincelNormal(t *testing.T) {
	lineas := recipe.Resolve("pincel normal", "15 - virola 1", 5)
	require.Len(t, lineas, 2)

	assert.Equal(t, recipe.ConsumptionLine{Tipo: "Mango", Variante: "15 - virola 1", Cantidad: 5}, lineas[0])
	assert.Equal(t, recipe.ConsumptionLine{Tipo: "Chapita", Variante: "15", Cantidad: 5}, lineas[1])
}

// La pinceleta "blanco - 40" consume manguito por color, chapita por medida
// y cerda estándar.
func TestResolve_Pinceleta(t *testing.T) {
	lineas := recipe.Resolve("pinceleta", "blanco - 40", 3)
	require.Len(t, lineas, 3)

	assert.Equal(t, recipe.ConsumptionLine{Tipo: "Manguito pinceleta", Variante: "blanco", Cantidad: 3}, lineas[0])
	assert.Equal(t, recipe.ConsumptionLine{Tipo: "Chapita pinceleta", Variante: "40", Cantidad: 3}, lineas[1])
	assert.Equal(t, recipe.ConsumptionLine{Tipo: "Cerda pinceleta", Variante: "estándar", Cantidad: 3}, lineas[2])
}

// Tipos desconocidos resuelven a lista vacía: solo consumo manual.
func TestResolve_TipoDesconocido(t *testing.T) {
	assert.Empty(t, recipe.Resolve("brocha industrial", "15 - virola 1", 10))
}

// Variantes mal formadas no deben producir consumos a medias.
func TestResolve_VarianteMalFormada(t *testing.T) {
	assert.Empty(t, recipe.Resolve("pincel normal", "15", 10))
	assert.Empty(t, recipe.Resolve("pinceleta", "blanco - 40 - extra", 10))
	assert.Empty(t, recipe.Resolve("pinceleta", " - 40", 10))
}

func TestResolve_CantidadInvalida(t *testing.T) {
	assert.Empty(t, recipe.Resolve("pincel normal", "15 - virola 1", 0))
	assert.Empty(t, recipe.Resolve("pincel normal", "15 - virola 1", -2))
}

func TestKnown(t *testing.T) {
	assert.True(t, recipe.Known("pincel normal"))
	assert.True(t, recipe.Known("pinceleta"))
	assert.False(t, recipe.Known("rodillo"))
}
