package entity

import "time"

// Estados del ciclo de vida de un pedido.
const (
	OrderPendiente    = "pendiente"
	OrderConfirmado   = "confirmado"
	OrderEnProduccion = "en_produccion"
	OrderCompletado   = "completado"
	OrderCancelado    = "cancelado"
)

// ValidOrderState verifica que el estado pertenezca al conjunto conocido.
func ValidOrderState(state string) bool {
	switch state {
	case OrderPendiente, OrderConfirmado, OrderEnProduccion, OrderCompletado, OrderCancelado:
		return true
	}
	return false
}

// Order representa un pedido de cliente. El ID es un entero monotónico asignado
// por la base. Los pedidos nunca se borran; solo cambian de estado.
type Order struct {
	ID               int64
	Fecha            time.Time
	Cliente          string
	TipoProducto     string
	VarianteProducto string
	Cantidad         int
	FechaEntrega     time.Time
	Estado           string
	Nota             string
}

// Abierto indica si el pedido sigue activo (no terminal).
func (o *Order) Abierto() bool {
	switch o.Estado {
	case OrderPendiente, OrderConfirmado, OrderEnProduccion:
		return true
	}
	return false
}
