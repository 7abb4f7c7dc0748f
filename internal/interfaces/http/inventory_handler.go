package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// InventoryHandler maneja el libro de stock de materias primas (protegido).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de materia prima
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "tipo, variante, cantidad, proveedor, documento"
// @Success      201   {object}  dto.ApplyDeltaResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.uc.RegisterEntry(c.Context(), GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "tipo, variante, delta, observaciones"
// @Success      200   {object}  dto.ApplyDeltaResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.uc.Adjust(c.Context(), GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListStock godoc
// @Summary      Stock vigente de materia prima
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "filtrar por tipo"
// @Param        variante     query  string  false  "filtrar por variante"
// @Param        bajo_minimo  query  bool    false  "solo filas bajo mínimo"
// @Success      200  {array}  dto.StockLineResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	filter := repository.StockFilter{
		Tipo:           c.Query("tipo"),
		Variante:       c.Query("variante"),
		SoloBajoMinimo: c.QueryBool("bajo_minimo"),
	}
	lines, err := h.uc.ListLines(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lines)
}

// GetStock godoc
// @Summary      Fila de stock por tipo y variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tipo      query  string  true  "tipo"
// @Param        variante  query  string  true  "variante"
// @Success      200  {object}  dto.StockLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/line [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	line, err := h.uc.GetLine(c.Context(), c.Query("tipo"), c.Query("variante"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(line)
}

// UpdateMinimo godoc
// @Summary      Actualizar stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/minimo [put]
func (h *InventoryHandler) UpdateMinimo(c *fiber.Ctx) error {
	var in struct {
		Tipo        string `json:"tipo"`
		Variante    string `json:"variante"`
		StockMinimo int    `json:"stock_minimo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateMinimo(c.Context(), in.Tipo, in.Variante, in.StockMinimo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock mínimo actualizado"})
}

// MergeDuplicates godoc
// @Summary      Fusionar filas de stock duplicadas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/stock/merge-duplicates [post]
func (h *InventoryHandler) MergeDuplicates(c *fiber.Ctx) error {
	merged, err := h.uc.MergeDuplicates(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"filas_fusionadas": merged})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        desde     query  string  false  "RFC3339"
// @Param        hasta     query  string  false  "RFC3339"
// @Param        kind      query  string  false  "ENTRADA | SALIDA | AJUSTE"
// @Param        tipo      query  string  false  "filtrar por tipo"
// @Param        variante  query  string  false  "filtrar por variante"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	f := repository.MovementFilter{
		Tipo:     c.Query("tipo"),
		Variante: c.Query("variante"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if kind := c.Query("kind"); kind != "" {
		f.Kinds = []string{kind}
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
	movs, err := h.uc.QueryMovements(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movs)
}
