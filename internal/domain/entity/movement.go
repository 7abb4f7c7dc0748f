package entity

import "time"

// Tipos de movimiento de stock de materia prima.
const (
	MovementENTRADA = "ENTRADA"
	MovementSALIDA  = "SALIDA"
	MovementAJUSTE  = "AJUSTE"
)

// ValidMovementKind verifica que el tipo de movimiento sea uno de los conocidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementENTRADA, MovementSALIDA, MovementAJUSTE:
		return true
	}
	return false
}

// Movement representa una fila del historial de movimientos. Append-only:
// una vez escrita no se modifica. La cantidad es una magnitud sin signo
// (> 0); el signo lo da TipoMovimiento.
type Movement struct {
	ID             string
	Seq            int64 // orden de inserción, asignado por la base
	Fecha          time.Time
	TipoMovimiento string // ENTRADA | SALIDA | AJUSTE
	Tipo           string
	Variante       string
	Cantidad       int
	Proveedor      string
	Documento      string // remito / factura asociada
	Observaciones  string
	Usuario        string
}
