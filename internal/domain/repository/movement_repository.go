package repository

import (
	"context"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// MovementFilter filtra el historial de movimientos.
type MovementFilter struct {
	Desde    *time.Time
	Hasta    *time.Time
	Kinds    []string // ENTRADA/SALIDA/AJUSTE; vacío = todos
	Tipo     string
	Variante string
	Limit    int
	Offset   int
}

// MovementRepository define el puerto de persistencia del historial de
// movimientos. Append-only: las filas nunca se modifican ni borran.
type MovementRepository interface {
	Append(ctx context.Context, m *entity.Movement) error
	// Query devuelve movimientos ordenados por fecha ascendente (y orden de
	// inserción como desempate) dentro del filtro.
	Query(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
	// MostFrequentSupplier devuelve la moda de proveedores de los movimientos
	// ENTRADA para (tipo, variante); empates se resuelven por primer aparecido
	// en el orden de inserción. Devuelve "" si no hay entradas con proveedor.
	MostFrequentSupplier(ctx context.Context, tipo, variante string) (string, error)
}
