package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// CatalogHandler maneja el catálogo de materias primas (protegido).
type CatalogHandler struct {
	uc *inventory.CatalogUseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *inventory.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo completo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.CatalogEntry
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// ListTypes godoc
// @Summary      Tipos de materia prima
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/catalog/types [get]
func (h *CatalogHandler) ListTypes(c *fiber.Ctx) error {
	tipos, err := h.uc.ListTypes(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tipos)
}

// ListVariants godoc
// @Summary      Variantes de un tipo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        tipo  path  string  true  "tipo de materia prima"
// @Success      200  {array}  string
// @Router       /api/catalog/types/:tipo/variants [get]
func (h *CatalogHandler) ListVariants(c *fiber.Ctx) error {
	variantes, err := h.uc.ListVariants(c.Context(), c.Params("tipo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(variantes)
}

// Upsert godoc
// @Summary      Agregar o actualizar combinación del catálogo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.CatalogEntry  true  "tipo, variante, stock_minimo"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog [put]
func (h *CatalogHandler) Upsert(c *fiber.Ctx) error {
	var in struct {
		Tipo        string `json:"tipo"`
		Variante    string `json:"variante"`
		StockMinimo int    `json:"stock_minimo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry := entity.CatalogEntry{Tipo: in.Tipo, Variante: in.Variante, StockMinimo: in.StockMinimo}
	if err := h.uc.Upsert(c.Context(), entry); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "catálogo actualizado"})
}

// Seed godoc
// @Summary      Asegurar catálogo por defecto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/catalog/seed [post]
func (h *CatalogHandler) Seed(c *fiber.Ctx) error {
	applied, err := h.uc.Seed(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"filas_aplicadas": applied})
}
