package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
	"github.com/fys/fabrica-pinceles-api/internal/infrastructure/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func stockRows(lines ...*entity.StockLine) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "tipo", "variante", "stock_minimo", "stock_actual", "ultima_entrada", "proveedor_mas_frecuente",
	})
	for _, l := range lines {
		rows.AddRow(l.ID, l.Tipo, l.Variante, l.StockMinimo, l.StockActual, l.UltimaEntrada, l.ProveedorMasFrecuente)
	}
	return rows
}

func TestStockRepo_Get(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	entrada := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM stock_mp WHERE tipo = \$1 AND variante = \$2 ORDER BY id`).
		WithArgs("Cerda", "15").
		WillReturnRows(stockRows(&entity.StockLine{
			ID: 7, Tipo: "Cerda", Variante: "15", StockMinimo: 50, StockActual: 120,
			UltimaEntrada: &entrada, ProveedorMasFrecuente: "ACME",
		}))

	lines, err := repo.Get(context.Background(), "Cerda", "15")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].ID)
	assert.Equal(t, 120, lines[0].StockActual)
	assert.Equal(t, "ACME", lines[0].ProveedorMasFrecuente)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Las filas duplicadas salen tal cual de la base; el dominio decide qué hacer.
func TestStockRepo_Get_Duplicados(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM stock_mp WHERE tipo = \$1 AND variante = \$2 ORDER BY id`).
		WithArgs("Cerda", "15").
		WillReturnRows(stockRows(
			&entity.StockLine{ID: 1, Tipo: "Cerda", Variante: "15", StockActual: 10},
			&entity.StockLine{ID: 2, Tipo: "Cerda", Variante: "15", StockActual: 7},
		))

	lines, err := repo.Get(context.Background(), "Cerda", "15")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_Create_AsignaID(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	mock.ExpectQuery(`INSERT INTO stock_mp .+ RETURNING id`).
		WithArgs("Chapita", "20", 0, 30, (*time.Time)(nil), "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	line := &entity.StockLine{Tipo: "Chapita", Variante: "20", StockActual: 30}
	require.NoError(t, repo.Create(context.Background(), line))
	assert.Equal(t, int64(11), line.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_Update_FilaInexistente(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	mock.ExpectExec(`UPDATE stock_mp`).
		WithArgs(int64(99), 50, 10, (*time.Time)(nil), "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.StockLine{ID: 99, StockMinimo: 50, StockActual: 10})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_List_FiltroBajoMinimo(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM stock_mp WHERE 1=1 AND tipo = \$1 AND stock_actual < stock_minimo ORDER BY tipo, variante, id`).
		WithArgs("Cerda").
		WillReturnRows(stockRows(&entity.StockLine{ID: 3, Tipo: "Cerda", Variante: "15", StockMinimo: 50, StockActual: 4}))

	lines, err := repo.List(context.Background(), repository.StockFilter{Tipo: "Cerda", SoloBajoMinimo: true})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].BajoMinimo())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepo_UpdateMinimo_SinFilas(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStockRepository(mock)

	mock.ExpectExec(`UPDATE stock_mp SET stock_minimo`).
		WithArgs("Cerda", "99", 10).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateMinimo(context.Background(), "Cerda", "99", 10)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
