package entity

// CatalogEntry representa una combinación válida de materia prima (tipo, variante)
// con su stock mínimo recomendado. Única por (tipo, variante).
type CatalogEntry struct {
	Tipo        string
	Variante    string
	StockMinimo int
}

// medidas estándar de pincel.
var medidasEstandar = []string{"7", "10", "15", "20", "25", "30"}

// DefaultCatalog devuelve el catálogo inicial de la fábrica: componentes de
// pincel normal por medida y virola, y componentes de pinceleta por color y
// chapita. Se usa para el seed y para reponer combinaciones faltantes.
func DefaultCatalog() []CatalogEntry {
	var entries []CatalogEntry
	for _, m := range medidasEstandar {
		for _, v := range []string{"virola 1", "virola 2"} {
			entries = append(entries, CatalogEntry{Tipo: "Mango", Variante: m + " - " + v, StockMinimo: 50})
		}
	}
	for _, m := range medidasEstandar {
		entries = append(entries, CatalogEntry{Tipo: "Cerda", Variante: m, StockMinimo: 50})
	}
	for _, m := range medidasEstandar {
		entries = append(entries, CatalogEntry{Tipo: "Chapita", Variante: m, StockMinimo: 50})
	}
	for _, c := range []string{"blanco", "gris"} {
		entries = append(entries, CatalogEntry{Tipo: "Manguito pinceleta", Variante: c, StockMinimo: 30})
	}
	for _, ch := range []string{"40", "50"} {
		entries = append(entries, CatalogEntry{Tipo: "Chapita pinceleta", Variante: ch, StockMinimo: 30})
	}
	entries = append(entries, CatalogEntry{Tipo: "Cerda pinceleta", Variante: "estándar", StockMinimo: 30})
	return entries
}
