package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-movements-api/internal/application/analytics"
)

// SummaryHandler expone el resumen de inventario.
type SummaryHandler struct {
	uc *analytics.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *analytics.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de inventario
// @Description  Productos, unidades en stock, valor a precio de venta y ventas por estado de pago.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/inventory/summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
