package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/recipe"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// ProduceUseCase ejecuta la transacción de producción: resuelve la receta,
// valida stock suficiente en TODAS las líneas, descuenta materia prima,
// registra los movimientos SALIDA, deja el registro de producción y acredita
// el producto terminado. Todo o nada: corre dentro de una única transacción
// de BD con bloqueo de fila, así un fallo a mitad de los débitos revierte
// los débitos anteriores.
type ProduceUseCase struct {
	txRunner       TxRunner
	productionRepo repository.ProductionRepository
}

// NewProduceUseCase construye el caso de uso.
func NewProduceUseCase(txRunner TxRunner, productionRepo repository.ProductionRepository) *ProduceUseCase {
	return &ProduceUseCase{txRunner: txRunner, productionRepo: productionRepo}
}

// History devuelve el historial de producciones, más recientes primero.
func (uc *ProduceUseCase) History(ctx context.Context, f repository.ProductionFilter) ([]*entity.ProductionRecord, error) {
	return uc.productionRepo.List(ctx, f)
}

// ProduceInput entrada de una producción. Las líneas manuales se consumen
// después de las de la receta, en el orden declarado por el operario.
type ProduceInput struct {
	TipoProducto     string
	VarianteProducto string
	Cantidad         int
	Usuario          string
	Nota             string
	LineasManuales   []recipe.ConsumptionLine
	PedidoID         *int64
}

// Produce ejecuta la producción en una transacción propia.
func (uc *ProduceUseCase) Produce(ctx context.Context, in ProduceInput) error {
	if err := validateProduceInput(&in); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		return ProduceInTx(ctx, tx, in, now)
	})
}

func validateProduceInput(in *ProduceInput) error {
	in.TipoProducto = strings.TrimSpace(in.TipoProducto)
	in.VarianteProducto = strings.TrimSpace(in.VarianteProducto)
	if in.TipoProducto == "" {
		return domain.ErrInvalidInput
	}
	if in.Cantidad <= 0 {
		return domain.ErrInvalidQuantity
	}
	for i := range in.LineasManuales {
		l := &in.LineasManuales[i]
		l.Tipo = strings.TrimSpace(l.Tipo)
		l.Variante = strings.TrimSpace(l.Variante)
		if l.Tipo == "" || l.Variante == "" {
			return domain.ErrInvalidInput
		}
		if l.Cantidad <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

// ProduceInTx ejecuta la producción usando los repositorios de la transacción
// del caller, para componerla con otras mutaciones (ej. el cambio de estado de
// un pedido) en una única tx.
//
// Algoritmo:
//  1. líneas = receta(tipo, variante, cantidad) ++ líneas manuales.
//  2. Validar todas las líneas con bloqueo de fila, juntando TODOS los
//     faltantes en un único InsufficientStockError; sin efectos si hay alguno.
//  3. Debitar cada línea en orden y registrar un movimiento SALIDA por línea.
//  4. Registrar la producción.
//  5. Acreditar el producto terminado (creando la fila si no existe).
func ProduceInTx(ctx context.Context, tx TxRepos, in ProduceInput, now time.Time) error {
	lineas := recipe.Resolve(in.TipoProducto, in.VarianteProducto, in.Cantidad)
	lineas = append(lineas, in.LineasManuales...)

	var faltantes []domain.Shortfall
	for _, l := range lineas {
		rows, err := tx.Stock.GetForUpdate(ctx, l.Tipo, l.Variante)
		if err != nil {
			return err
		}
		if len(rows) > 1 {
			return &domain.DuplicateStockLinesError{Tipo: l.Tipo, Variante: l.Variante, Count: len(rows)}
		}
		if len(rows) == 0 {
			faltantes = append(faltantes, domain.Shortfall{
				Tipo: l.Tipo, Variante: l.Variante, Requerido: l.Cantidad, SinFila: true,
			})
			continue
		}
		if rows[0].StockActual < l.Cantidad {
			faltantes = append(faltantes, domain.Shortfall{
				Tipo: l.Tipo, Variante: l.Variante,
				Requerido: l.Cantidad, Disponible: rows[0].StockActual,
			})
		}
	}
	if len(faltantes) > 0 {
		return &domain.InsufficientStockError{Shortfalls: faltantes}
	}

	obs := "Producción " + in.TipoProducto
	if in.PedidoID != nil {
		obs = fmt.Sprintf("Producción desde pedido %d", *in.PedidoID)
	}
	for _, l := range lineas {
		if _, _, err := applyDelta(ctx, tx.Stock, tx.Movements, deltaOp{
			Tipo: l.Tipo, Variante: l.Variante, Delta: -l.Cantidad, Fecha: now,
		}); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			Fecha:          now,
			TipoMovimiento: entity.MovementSALIDA,
			Tipo:           l.Tipo,
			Variante:       l.Variante,
			Cantidad:       l.Cantidad,
			Observaciones:  obs,
			Usuario:        in.Usuario,
		}
		if err := tx.Movements.Append(ctx, mov); err != nil {
			return err
		}
	}

	record := &entity.ProductionRecord{
		ID:               uuid.New().String(),
		Fecha:            now,
		TipoProducto:     in.TipoProducto,
		VarianteProducto: in.VarianteProducto,
		Cantidad:         in.Cantidad,
		Usuario:          in.Usuario,
		Nota:             in.Nota,
		PedidoID:         in.PedidoID,
	}
	if err := tx.Production.Append(ctx, record); err != nil {
		return err
	}

	fg, err := tx.Finished.GetForUpdate(ctx, in.TipoProducto, in.VarianteProducto)
	if err != nil {
		return err
	}
	if fg == nil {
		fg = &entity.FinishedGood{
			TipoProducto:     in.TipoProducto,
			VarianteProducto: in.VarianteProducto,
		}
	}
	fg.StockActual += in.Cantidad
	return tx.Finished.Upsert(ctx, fg)
}
