package entity

import "time"

// StockLine representa el stock vigente de una materia prima (tipo, variante).
// Invariante: StockActual >= 0 en todo momento; exactamente una fila por
// (tipo, variante) — duplicados son un estado de error que requiere fusión.
type StockLine struct {
	ID                     int64
	Tipo                   string
	Variante               string
	StockMinimo            int
	StockActual            int
	UltimaEntrada          *time.Time // última ENTRADA registrada; nil si nunca hubo
	ProveedorMasFrecuente  string     // moda de proveedores en movimientos ENTRADA
}

// BajoMinimo indica si la fila está por debajo de su stock mínimo.
func (s *StockLine) BajoMinimo() bool {
	return s.StockActual < s.StockMinimo
}
