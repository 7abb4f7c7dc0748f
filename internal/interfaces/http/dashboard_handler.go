package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
)

// DashboardHandler expone los KPIs agregados del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  KPIs agregados: stock total de MP y terminados, pedidos
// @Description  abiertos, producido en 7 días, stock por tipo y alertas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertDTO
// @Router       /api/dashboard/alerts [get]
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}
