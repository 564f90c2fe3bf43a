package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/stock"
)

// StockHandler expone el resumen de inventario (solo lectura).
type StockHandler struct {
	uc *stock.SummaryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.SummaryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/stock/summary [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetStockSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
