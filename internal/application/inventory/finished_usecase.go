package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// FinishedUseCase consulta y ajusta el stock de producto terminado. El crédito
// por producción y el débito por despacho pasan por sus propias transacciones
// (ProduceInTx / despacho del pedido); acá solo viven los ajustes manuales y
// las lecturas.
type FinishedUseCase struct {
	txRunner     TxRunner
	finishedRepo repository.FinishedGoodRepository
}

// NewFinishedUseCase construye el caso de uso.
func NewFinishedUseCase(txRunner TxRunner, finishedRepo repository.FinishedGoodRepository) *FinishedUseCase {
	return &FinishedUseCase{txRunner: txRunner, finishedRepo: finishedRepo}
}

// Adjust aplica un ajuste manual al stock de terminados. La variante debe
// existir; no se permite dejar el stock en negativo.
func (uc *FinishedUseCase) Adjust(ctx context.Context, in dto.AdjustFinishedRequest) (int, error) {
	tipo := strings.TrimSpace(in.TipoProducto)
	variante := strings.TrimSpace(in.VarianteProducto)
	if tipo == "" || in.Delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	nuevo := 0
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		fg, err := tx.Finished.GetForUpdate(ctx, tipo, variante)
		if err != nil {
			return err
		}
		if fg == nil {
			return fmt.Errorf("%w: terminados %s - %s", domain.ErrNotFound, tipo, variante)
		}
		if fg.StockActual+in.Delta < 0 {
			return &domain.WouldGoNegativeError{
				Tipo: tipo, Variante: variante, Actual: fg.StockActual, Delta: in.Delta,
			}
		}
		fg.StockActual += in.Delta
		nuevo = fg.StockActual
		return tx.Finished.Upsert(ctx, fg)
	})
	if err != nil {
		return 0, err
	}
	return nuevo, nil
}

// GetLine devuelve la fila de terminados para (tipo_producto, variante_producto).
func (uc *FinishedUseCase) GetLine(ctx context.Context, tipoProducto, varianteProducto string) (*dto.FinishedGoodResponse, error) {
	fg, err := uc.finishedRepo.Get(ctx, strings.TrimSpace(tipoProducto), strings.TrimSpace(varianteProducto))
	if err != nil {
		return nil, err
	}
	if fg == nil {
		return nil, fmt.Errorf("%w: terminados %s - %s", domain.ErrNotFound, tipoProducto, varianteProducto)
	}
	return toFinishedResponse(fg), nil
}

// List lista el stock de terminados ordenado por tipo y variante.
func (uc *FinishedUseCase) List(ctx context.Context) ([]dto.FinishedGoodResponse, error) {
	rows, err := uc.finishedRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TipoProducto != rows[j].TipoProducto {
			return rows[i].TipoProducto < rows[j].TipoProducto
		}
		return rows[i].VarianteProducto < rows[j].VarianteProducto
	})
	out := make([]dto.FinishedGoodResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toFinishedResponse(r))
	}
	return out, nil
}

func toFinishedResponse(fg *entity.FinishedGood) *dto.FinishedGoodResponse {
	return &dto.FinishedGoodResponse{
		TipoProducto:     fg.TipoProducto,
		VarianteProducto: fg.VarianteProducto,
		StockActual:      fg.StockActual,
	}
}
