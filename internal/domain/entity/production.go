package entity

import "time"

// ProductionRecord registra una producción de terminados. Append-only.
type ProductionRecord struct {
	ID               string
	Fecha            time.Time
	TipoProducto     string
	VarianteProducto string
	Cantidad         int
	Usuario          string
	Nota             string
	PedidoID         *int64 // pedido de origen si la producción se generó desde uno
}
