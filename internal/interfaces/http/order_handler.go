package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/application/fulfillment"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// OrderHandler maneja el ciclo de vida de pedidos y despachos.
type OrderHandler struct {
	uc *fulfillment.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *fulfillment.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// Create godoc
// @Summary      Crear pedido
// @Description  El pedido nace en estado pendiente. La falta de materia prima
// @Description  no bloquea el alta: se devuelve como advertencia.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "pedido"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        estado         query  string  false  "pendiente | confirmado | en_produccion | completado | cancelado"
// @Param        tipo_producto  query  string  false  "filtrar por producto"
// @Param        cliente        query  string  false  "búsqueda parcial por cliente"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), repository.OrderFilter{
		Estado:       c.Query("estado"),
		TipoProducto: c.Query("tipo_producto"),
		Cliente:      c.Query("cliente"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// Get godoc
// @Summary      Consultar un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Update godoc
// @Summary      Actualizar un pedido
// @Description  Actualización parcial: solo los campos presentes cambian. El
// @Description  cambio de estado es administrativo y no mueve stock.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// GenerateProduction godoc
// @Summary      Generar producción desde un pedido
// @Description  Produce lo pedido (modo completo) o una cantidad parcial dentro
// @Description  de la misma transacción que pasa el pedido a en_produccion.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                            true  "ID del pedido"
// @Param        body  body  dto.GenerateProductionRequest  true  "modo y cantidad"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/production [post]
func (h *OrderHandler) GenerateProduction(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.GenerateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.GenerateProduction(c.Context(), id, in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Dispatch godoc
// @Summary      Despachar un pedido
// @Description  Descuenta producto terminado y registra el despacho. El pedido
// @Description  pasa a completado cuando lo despachado acumulado cubre la
// @Description  cantidad pedida; antes de eso queda confirmado.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del pedido"
// @Param        body  body  dto.DispatchRequest  true  "modo, cantidad y nota"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatch [post]
func (h *OrderHandler) Dispatch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	disp, err := h.uc.Dispatch(c.Context(), id, in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(disp)
}

// ListDispatches godoc
// @Summary      Despachos de un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {array}  dto.DispatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/dispatches [get]
func (h *OrderHandler) ListDispatches(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	disps, err := h.uc.ListDispatches(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(disps)
}

// DispatchNote godoc
// @Summary      Remito de despacho en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del despacho"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dispatches/{id}/note [get]
func (h *OrderHandler) DispatchNote(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.uc.DispatchNote(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="remito_%d.pdf"`, id))
	return c.Send(pdfBytes)
}
