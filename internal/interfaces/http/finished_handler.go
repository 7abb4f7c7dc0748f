package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
)

// FinishedHandler maneja el stock de producto terminado.
type FinishedHandler struct {
	uc *inventory.FinishedUseCase
}

// NewFinishedHandler construye el handler.
func NewFinishedHandler(uc *inventory.FinishedUseCase) *FinishedHandler {
	return &FinishedHandler{uc: uc}
}

// List godoc
// @Summary      Stock de productos terminados
// @Tags         finished-goods
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FinishedGoodResponse
// @Router       /api/finished-goods [get]
func (h *FinishedHandler) List(c *fiber.Ctx) error {
	lines, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lines)
}

// Get godoc
// @Summary      Stock de un producto terminado
// @Tags         finished-goods
// @Security     Bearer
// @Produce      json
// @Param        tipo_producto      query  string  true  "tipo de producto"
// @Param        variante_producto  query  string  true  "variante"
// @Success      200  {object}  dto.FinishedGoodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finished-goods/line [get]
func (h *FinishedHandler) Get(c *fiber.Ctx) error {
	line, err := h.uc.GetLine(c.Context(), c.Query("tipo_producto"), c.Query("variante_producto"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(line)
}

// Adjust godoc
// @Summary      Ajuste manual de producto terminado
// @Tags         finished-goods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustFinishedRequest  true  "ajuste"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/finished-goods/adjustments [post]
func (h *FinishedHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustFinishedRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	nuevo, err := h.uc.Adjust(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"nuevo_stock": nuevo})
}
