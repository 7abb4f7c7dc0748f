package repository

import (
	"context"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// OrderFilter filtra listados de pedidos.
type OrderFilter struct {
	Estado       string
	TipoProducto string
	Cliente      string
	Limit        int
	Offset       int
}

// OrderRepository define el puerto de persistencia de pedidos. Los pedidos
// nunca se borran.
type OrderRepository interface {
	// Create persiste el pedido y asigna su ID monotónico.
	Create(ctx context.Context, o *entity.Order) error
	// GetByID devuelve nil (sin error) si el pedido no existe.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	// UpdateFields actualiza solo los campos no-nil.
	UpdateFields(ctx context.Context, id int64, estado *string, fechaEntrega *time.Time, nota *string) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}
