package fulfillment

import "github.com/fys/fabrica-pinceles-api/internal/domain/entity"

// DispatchNoteGenerator genera el remito (PDF) de un despacho.
type DispatchNoteGenerator interface {
	Generate(d *entity.Dispatch, o *entity.Order) ([]byte, error)
}
