package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// StockUseCase opera el libro de stock de materias primas: entradas, ajustes,
// fusión de duplicados y consultas. Toda mutación corre en una transacción
// (TxRunner) con bloqueo de fila (SELECT FOR UPDATE) y deja exactamente un
// movimiento en el historial.
type StockUseCase struct {
	txRunner    TxRunner
	catalogRepo repository.CatalogRepository
	stockRepo   repository.StockRepository
	movRepo     repository.MovementRepository
	// implicitCreate habilita el alta implícita de filas de stock inexistentes
	// (stock_minimo 0). Con la política apagada, la combinación desconocida
	// devuelve ErrNotFound.
	implicitCreate bool
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	catalogRepo repository.CatalogRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	implicitCreate bool,
) *StockUseCase {
	return &StockUseCase{
		txRunner:       txRunner,
		catalogRepo:    catalogRepo,
		stockRepo:      stockRepo,
		movRepo:        movRepo,
		implicitCreate: implicitCreate,
	}
}

// deltaOp parámetros de una aplicación de delta sobre una fila de stock.
type deltaOp struct {
	Tipo           string
	Variante       string
	Delta          int
	EsEntrada      bool
	Proveedor      string
	Fecha          time.Time
	ImplicitCreate bool
}

// applyDelta aplica el delta sobre la fila (tipo, variante) usando repos atados
// a la transacción del caller. Reglas:
//   - sin fila y alta implícita activa: crea la fila con stock_minimo 0 y
//     devuelve creada=true para que el caller lo muestre como advertencia;
//   - sin fila y alta implícita apagada: ErrNotFound;
//   - más de una fila: DuplicateStockLinesError, sin mutación;
//   - stock_actual + delta < 0: WouldGoNegativeError, sin mutación.
//
// En entradas actualiza ultima_entrada y, si hubo proveedor, recalcula
// proveedor_mas_frecuente como la moda de los movimientos ENTRADA (el caller
// debe haber registrado ya el movimiento de esta entrada en la misma tx).
func applyDelta(ctx context.Context, stockRepo repository.StockRepository, movRepo repository.MovementRepository, op deltaOp) (*entity.StockLine, bool, error) {
	rows, err := stockRepo.GetForUpdate(ctx, op.Tipo, op.Variante)
	if err != nil {
		return nil, false, err
	}
	if len(rows) > 1 {
		return nil, false, &domain.DuplicateStockLinesError{Tipo: op.Tipo, Variante: op.Variante, Count: len(rows)}
	}

	var line *entity.StockLine
	creada := false
	if len(rows) == 0 {
		if !op.ImplicitCreate {
			return nil, false, fmt.Errorf("%w: stock de %s - %s", domain.ErrNotFound, op.Tipo, op.Variante)
		}
		line = &entity.StockLine{Tipo: op.Tipo, Variante: op.Variante, StockMinimo: 0, StockActual: 0}
		creada = true
	} else {
		line = rows[0]
	}

	nuevo := line.StockActual + op.Delta
	if nuevo < 0 {
		return nil, false, &domain.WouldGoNegativeError{
			Tipo: op.Tipo, Variante: op.Variante, Actual: line.StockActual, Delta: op.Delta,
		}
	}
	line.StockActual = nuevo

	if op.EsEntrada {
		fecha := op.Fecha
		line.UltimaEntrada = &fecha
		if op.Proveedor != "" {
			prov, err := movRepo.MostFrequentSupplier(ctx, op.Tipo, op.Variante)
			if err != nil {
				return nil, false, err
			}
			if prov == "" {
				prov = op.Proveedor
			}
			line.ProveedorMasFrecuente = prov
		}
	}

	if creada {
		if err := stockRepo.Create(ctx, line); err != nil {
			return nil, false, err
		}
	} else {
		if err := stockRepo.Update(ctx, line); err != nil {
			return nil, false, err
		}
	}
	return line, creada, nil
}

// RegisterEntry registra una entrada de materia prima: valida la combinación
// contra el catálogo (debe existir exactamente una fila), suma stock y deja
// un movimiento ENTRADA. Devuelve el nuevo stock.
func (uc *StockUseCase) RegisterEntry(ctx context.Context, usuario string, in dto.RegisterEntryRequest) (*dto.ApplyDeltaResult, error) {
	tipo := strings.TrimSpace(in.Tipo)
	variante := strings.TrimSpace(in.Variante)
	if tipo == "" || variante == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	count, err := uc.catalogRepo.CountByKey(ctx, tipo, variante)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: catálogo %s - %s", domain.ErrNotFound, tipo, variante)
	}
	if count > 1 {
		return nil, fmt.Errorf("%w: catálogo %s - %s", domain.ErrDuplicate, tipo, variante)
	}

	now := time.Now()
	var result dto.ApplyDeltaResult
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		// El movimiento se registra primero para que la moda de proveedores
		// incluya esta entrada; si el delta falla, la tx revierte todo.
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			Fecha:          now,
			TipoMovimiento: entity.MovementENTRADA,
			Tipo:           tipo,
			Variante:       variante,
			Cantidad:       in.Cantidad,
			Proveedor:      in.Proveedor,
			Documento:      in.Documento,
			Observaciones:  in.Observaciones,
			Usuario:        usuario,
		}
		if err := tx.Movements.Append(ctx, mov); err != nil {
			return err
		}
		line, creada, err := applyDelta(ctx, tx.Stock, tx.Movements, deltaOp{
			Tipo: tipo, Variante: variante,
			Delta: in.Cantidad, EsEntrada: true, Proveedor: in.Proveedor,
			Fecha: now, ImplicitCreate: uc.implicitCreate,
		})
		if err != nil {
			return err
		}
		result = dto.ApplyDeltaResult{NuevoStock: line.StockActual, LineaCreada: creada}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Adjust aplica un ajuste manual (rotura, error de conteo). Delta positivo deja
// un movimiento AJUSTE; negativo deja un SALIDA con la magnitud del delta.
func (uc *StockUseCase) Adjust(ctx context.Context, usuario string, in dto.AdjustStockRequest) (*dto.ApplyDeltaResult, error) {
	tipo := strings.TrimSpace(in.Tipo)
	variante := strings.TrimSpace(in.Variante)
	if tipo == "" || variante == "" || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result dto.ApplyDeltaResult
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		line, creada, err := applyDelta(ctx, tx.Stock, tx.Movements, deltaOp{
			Tipo: tipo, Variante: variante,
			Delta: in.Delta, Fecha: now, ImplicitCreate: uc.implicitCreate,
		})
		if err != nil {
			return err
		}
		kind := entity.MovementAJUSTE
		cantidad := in.Delta
		if in.Delta < 0 {
			kind = entity.MovementSALIDA
			cantidad = -in.Delta
		}
		obs := in.Observaciones
		if obs == "" {
			obs = "Ajuste manual"
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			Fecha:          now,
			TipoMovimiento: kind,
			Tipo:           tipo,
			Variante:       variante,
			Cantidad:       cantidad,
			Observaciones:  obs,
			Usuario:        usuario,
		}
		if err := tx.Movements.Append(ctx, mov); err != nil {
			return err
		}
		result = dto.ApplyDeltaResult{NuevoStock: line.StockActual, LineaCreada: creada}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MergeDuplicates fusiona filas de stock duplicadas por (tipo, variante):
// stock_minimo = max, stock_actual = suma, ultima_entrada = max (nulos al
// final), proveedor_mas_frecuente = el del primer representante. Devuelve la
// cantidad de filas eliminadas. Idempotente: una segunda llamada no cambia nada.
func (uc *StockUseCase) MergeDuplicates(ctx context.Context) (int, error) {
	merged := 0
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		lines, err := tx.Stock.List(ctx, repository.StockFilter{})
		if err != nil {
			return err
		}
		type key struct{ tipo, variante string }
		groups := make(map[key][]*entity.StockLine)
		var order []key
		for _, l := range lines {
			k := key{l.Tipo, l.Variante}
			if _, seen := groups[k]; !seen {
				order = append(order, k)
			}
			groups[k] = append(groups[k], l)
		}
		for _, k := range order {
			rows := groups[k]
			if len(rows) < 2 {
				continue
			}
			survivor := rows[0]
			for _, r := range rows[1:] {
				survivor.StockActual += r.StockActual
				if r.StockMinimo > survivor.StockMinimo {
					survivor.StockMinimo = r.StockMinimo
				}
				if r.UltimaEntrada != nil &&
					(survivor.UltimaEntrada == nil || r.UltimaEntrada.After(*survivor.UltimaEntrada)) {
					survivor.UltimaEntrada = r.UltimaEntrada
				}
			}
			if err := tx.Stock.Update(ctx, survivor); err != nil {
				return err
			}
			for _, r := range rows[1:] {
				if err := tx.Stock.Delete(ctx, r.ID); err != nil {
					return err
				}
				merged++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return merged, nil
}

// GetLine devuelve la fila de stock para (tipo, variante).
func (uc *StockUseCase) GetLine(ctx context.Context, tipo, variante string) (*dto.StockLineResponse, error) {
	rows, err := uc.stockRepo.Get(ctx, strings.TrimSpace(tipo), strings.TrimSpace(variante))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: stock de %s - %s", domain.ErrNotFound, tipo, variante)
	}
	if len(rows) > 1 {
		return nil, &domain.DuplicateStockLinesError{Tipo: tipo, Variante: variante, Count: len(rows)}
	}
	return toStockLineResponse(rows[0]), nil
}

// ListLines lista el stock vigente, ordenado por tipo y variante.
func (uc *StockUseCase) ListLines(ctx context.Context, filter repository.StockFilter) ([]dto.StockLineResponse, error) {
	rows, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tipo != rows[j].Tipo {
			return rows[i].Tipo < rows[j].Tipo
		}
		return rows[i].Variante < rows[j].Variante
	})
	out := make([]dto.StockLineResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toStockLineResponse(r))
	}
	return out, nil
}

// UpdateMinimo actualiza el stock mínimo recomendado de una fila.
func (uc *StockUseCase) UpdateMinimo(ctx context.Context, tipo, variante string, minimo int) error {
	if minimo < 0 {
		return domain.ErrInvalidInput
	}
	return uc.stockRepo.UpdateMinimo(ctx, strings.TrimSpace(tipo), strings.TrimSpace(variante), minimo)
}

// QueryMovements consulta el historial de movimientos, fecha ascendente.
func (uc *StockUseCase) QueryMovements(ctx context.Context, f repository.MovementFilter) ([]dto.MovementResponse, error) {
	for _, k := range f.Kinds {
		if !entity.ValidMovementKind(k) {
			return nil, fmt.Errorf("%w: tipo_movimiento %q", domain.ErrInvalidInput, k)
		}
	}
	movs, err := uc.movRepo.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			Fecha:          m.Fecha,
			TipoMovimiento: m.TipoMovimiento,
			Tipo:           m.Tipo,
			Variante:       m.Variante,
			Cantidad:       m.Cantidad,
			Proveedor:      m.Proveedor,
			Documento:      m.Documento,
			Observaciones:  m.Observaciones,
			Usuario:        m.Usuario,
		})
	}
	return out, nil
}

func toStockLineResponse(l *entity.StockLine) *dto.StockLineResponse {
	return &dto.StockLineResponse{
		Tipo:                  l.Tipo,
		Variante:              l.Variante,
		StockActual:           l.StockActual,
		StockMinimo:           l.StockMinimo,
		UltimaEntrada:         l.UltimaEntrada,
		ProveedorMasFrecuente: l.ProveedorMasFrecuente,
		BajoMinimo:            l.BajoMinimo(),
	}
}
