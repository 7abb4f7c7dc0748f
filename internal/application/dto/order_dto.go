package dto

import "time"

// Modos de producción/despacho contra un pedido.
const (
	ModoCompleto = "completo"
	ModoParcial  = "parcial"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Cliente          string `json:"cliente"`
	TipoProducto     string `json:"tipo_producto"`
	VarianteProducto string `json:"variante_producto"`
	Cantidad         int    `json:"cantidad"`
	FechaEntrega     string `json:"fecha_entrega"` // YYYY-MM-DD
	Nota             string `json:"nota,omitempty"`
}

// UpdateOrderRequest body para PATCH /api/orders/:id. Solo los campos presentes
// se actualizan.
type UpdateOrderRequest struct {
	Estado       *string `json:"estado,omitempty"`
	FechaEntrega *string `json:"fecha_entrega,omitempty"` // YYYY-MM-DD
	Nota         *string `json:"nota,omitempty"`
}

// GenerateProductionRequest body para POST /api/orders/:id/production.
type GenerateProductionRequest struct {
	Modo     string `json:"modo"` // completo | parcial
	Cantidad int    `json:"cantidad,omitempty"`
}

// DispatchRequest body para POST /api/orders/:id/dispatch.
type DispatchRequest struct {
	Modo     string `json:"modo"` // completo | parcial
	Cantidad int    `json:"cantidad,omitempty"`
	Nota     string `json:"nota,omitempty"`
}

// OrderResponse pedido con su disponibilidad de materia prima.
type OrderResponse struct {
	ID               int64     `json:"id"`
	Fecha            time.Time `json:"fecha"`
	Cliente          string    `json:"cliente"`
	TipoProducto     string    `json:"tipo_producto"`
	VarianteProducto string    `json:"variante_producto"`
	Cantidad         int       `json:"cantidad"`
	FechaEntrega     time.Time `json:"fecha_entrega"`
	Estado           string    `json:"estado"`
	Nota             string    `json:"nota,omitempty"`
	// DisponibilidadMP "OK" o el detalle de faltantes para producir el pedido
	// completo con el stock vigente.
	DisponibilidadMP string `json:"disponibilidad_mp,omitempty"`
}

// CreateOrderResponse pedido creado más advertencias de disponibilidad.
// Las advertencias no bloquean el alta.
type CreateOrderResponse struct {
	Order       OrderResponse `json:"order"`
	Advertencia string        `json:"advertencia,omitempty"`
}

// DispatchResponse despacho registrado.
type DispatchResponse struct {
	IDDespacho       int64     `json:"id_despacho"`
	Fecha            time.Time `json:"fecha"`
	PedidoID         int64     `json:"pedido_id"`
	Cliente          string    `json:"cliente"`
	TipoProducto     string    `json:"tipo_producto"`
	VarianteProducto string    `json:"variante_producto"`
	Cantidad         int       `json:"cantidad"`
	EstadoPedido     string    `json:"estado_pedido"`
}
