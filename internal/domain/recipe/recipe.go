// Package recipe resuelve la lista de materiales (BOM) de un producto terminado.
// La receta es una tabla de datos explícita por tipo de producto: cada componente
// declara su tipo de materia prima, el multiplicador por unidad producida y cómo
// se deriva su variante a partir de la variante del producto. Agregar una receta
// es agregar una entrada a la tabla, no lógica nueva.
package recipe

import (
	"strings"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// ConsumptionLine es una línea de consumo de materia prima.
type ConsumptionLine struct {
	Tipo     string
	Variante string
	Cantidad int
}

// Component es un componente de la receta. PorUnidad es la cantidad consumida
// por unidad de producto terminado.
type Component struct {
	Tipo      string
	PorUnidad int
	variante  func(partes []string) string
}

// bom es la receta de un tipo de producto. PartesVariante es la cantidad de
// segmentos que la variante del producto codifica ("<a> - <b>" = 2).
type bom struct {
	partesVariante int
	componentes    []Component
}

// separador de segmentos en las variantes de producto, ej. "15 - virola 1".
const sepVariante = " - "

// recetas es la tabla fija de recetas de la fábrica.
//   - pincel normal, variante "<medida> - <virola>": 1 Mango(variante completa)
//     y 1 Chapita(medida) por unidad.
//   - pinceleta, variante "<color> - <chapita>": 1 Manguito pinceleta(color),
//     1 Chapita pinceleta(chapita) y 1 Cerda pinceleta(estándar) por unidad.
var recetas = map[string]bom{
	entity.ProductPincelNormal: {
		partesVariante: 2,
		componentes: []Component{
			{Tipo: "Mango", PorUnidad: 1, variante: func(p []string) string { return p[0] + sepVariante + p[1] }},
			{Tipo: "Chapita", PorUnidad: 1, variante: func(p []string) string { return p[0] }},
		},
	},
	entity.ProductPinceleta: {
		partesVariante: 2,
		componentes: []Component{
			{Tipo: "Manguito pinceleta", PorUnidad: 1, variante: func(p []string) string { return p[0] }},
			{Tipo: "Chapita pinceleta", PorUnidad: 1, variante: func(p []string) string { return p[1] }},
			{Tipo: "Cerda pinceleta", PorUnidad: 1, variante: func(p []string) string { return "estándar" }},
		},
	},
}

// Resolve devuelve las líneas de consumo para producir `cantidad` unidades de
// (tipoProducto, varianteProducto), en el orden declarado por la receta.
// Tipos de producto desconocidos o variantes mal formadas resuelven a lista
// vacía: el consumo queda a cargo de las líneas manuales del operario.
func Resolve(tipoProducto, varianteProducto string, cantidad int) []ConsumptionLine {
	if cantidad <= 0 {
		return nil
	}
	receta, ok := recetas[strings.TrimSpace(tipoProducto)]
	if !ok {
		return nil
	}
	partes := strings.Split(strings.TrimSpace(varianteProducto), sepVariante)
	if len(partes) != receta.partesVariante {
		return nil
	}
	for i := range partes {
		partes[i] = strings.TrimSpace(partes[i])
		if partes[i] == "" {
			return nil
		}
	}
	lineas := make([]ConsumptionLine, 0, len(receta.componentes))
	for _, c := range receta.componentes {
		lineas = append(lineas, ConsumptionLine{
			Tipo:     c.Tipo,
			Variante: c.variante(partes),
			Cantidad: c.PorUnidad * cantidad,
		})
	}
	return lineas
}

// Known indica si existe receta para el tipo de producto.
func Known(tipoProducto string) bool {
	_, ok := recetas[strings.TrimSpace(tipoProducto)]
	return ok
}
