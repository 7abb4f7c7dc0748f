package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only; seq (bigserial) da el orden de inserción.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento y asigna su seq.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (id, fecha, tipo_movimiento, tipo, variante, cantidad, proveedor, documento, observaciones, usuario)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.Fecha, m.TipoMovimiento, m.Tipo, m.Variante, m.Cantidad,
		m.Proveedor, m.Documento, m.Observaciones, m.Usuario,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("append movimiento: %w", err)
	}
	return nil
}

// Query devuelve movimientos en fecha ascendente (seq como desempate).
func (r *MovementRepo) Query(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, seq, fecha, tipo_movimiento, tipo, variante, cantidad, proveedor, documento, observaciones, usuario
		FROM movimientos WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *f.Desde)
		pos++
	}
	if f.Hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *f.Hasta)
		pos++
	}
	if len(f.Kinds) > 0 {
		query += fmt.Sprintf(" AND tipo_movimiento = ANY($%d)", pos)
		args = append(args, f.Kinds)
		pos++
	}
	if f.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, f.Tipo)
		pos++
	}
	if f.Variante != "" {
		query += fmt.Sprintf(" AND variante = $%d", pos)
		args = append(args, f.Variante)
		pos++
	}
	query += " ORDER BY fecha, seq"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Seq, &m.Fecha, &m.TipoMovimiento, &m.Tipo, &m.Variante,
			&m.Cantidad, &m.Proveedor, &m.Documento, &m.Observaciones, &m.Usuario); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MostFrequentSupplier devuelve la moda de proveedores de las ENTRADA para
// (tipo, variante). Empates se resuelven por primera aparición (menor seq).
// Devuelve "" si no hay entradas con proveedor.
func (r *MovementRepo) MostFrequentSupplier(ctx context.Context, tipo, variante string) (string, error) {
	query := `
		SELECT proveedor
		FROM movimientos
		WHERE tipo_movimiento = 'ENTRADA' AND tipo = $1 AND variante = $2 AND proveedor <> ''
		GROUP BY proveedor
		ORDER BY COUNT(*) DESC, MIN(seq)
		LIMIT 1`
	var proveedor string
	err := r.q.QueryRow(ctx, query, tipo, variante).Scan(&proveedor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("moda proveedor: %w", err)
	}
	return proveedor, nil
}
