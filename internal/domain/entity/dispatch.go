package entity

import "time"

// Dispatch registra un despacho de producto terminado contra un pedido.
// IDDespacho es un entero monotónico (max existente + 1, o 1 si no hay).
// Append-only.
type Dispatch struct {
	IDDespacho       int64
	Fecha            time.Time
	PedidoID         int64
	Cliente          string
	TipoProducto     string
	VarianteProducto string
	Cantidad         int
	Nota             string
	Usuario          string
}
