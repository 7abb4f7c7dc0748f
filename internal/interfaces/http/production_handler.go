package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain/recipe"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// ProductionHandler maneja la producción manual y su historial.
type ProductionHandler struct {
	uc *inventory.ProduceUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *inventory.ProduceUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Registrar una producción
// @Description  Resuelve la receta del producto, descuenta materia prima y
// @Description  acredita el terminado en una única transacción. Si falta stock
// @Description  en cualquier línea no se descuenta nada.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "producción"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	manuales := make([]recipe.ConsumptionLine, 0, len(in.LineasManuales))
	for _, l := range in.LineasManuales {
		manuales = append(manuales, recipe.ConsumptionLine{
			Tipo: l.Tipo, Variante: l.Variante, Cantidad: l.Cantidad,
		})
	}
	err := h.uc.Produce(c.Context(), inventory.ProduceInput{
		TipoProducto:     in.TipoProducto,
		VarianteProducto: in.VarianteProducto,
		Cantidad:         in.Cantidad,
		Usuario:          GetUsername(c),
		Nota:             in.Nota,
		LineasManuales:   manuales,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "producción registrada"})
}

// History godoc
// @Summary      Historial de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        desde          query  string  false  "RFC3339"
// @Param        hasta          query  string  false  "RFC3339"
// @Param        tipo_producto  query  string  false  "filtrar por producto"
// @Success      200  {array}  entity.ProductionRecord
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production [get]
func (h *ProductionHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	f := repository.ProductionFilter{
		TipoProducto: c.Query("tipo_producto"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse(time.RFC3339, desde)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
		}
		f.Desde = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse(time.RFC3339, hasta)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
		}
		f.Hasta = &t
	}
	records, err := h.uc.History(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(records)
}
