package entity

// Tipos de producto terminado conocidos por la fábrica.
const (
	ProductPincelNormal = "pincel normal"
	ProductPinceleta    = "pinceleta"
)

// FinishedGood representa el stock de un producto terminado por variante.
// Se crea de forma perezosa con la primera producción. StockActual >= 0.
type FinishedGood struct {
	ID               int64
	TipoProducto     string
	VarianteProducto string
	StockActual      int
}
