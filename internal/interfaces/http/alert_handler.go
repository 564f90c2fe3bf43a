package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
)

// AlertHandler expone las alertas derivadas del estado del negocio.
type AlertHandler struct {
	uc *alerts.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Description  Ordenadas por severidad (critical primero) y luego por fecha (más recientes primero).
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de alertas (0 = todas)"
// @Success      200    {array}  dto.AlertDTO
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAllAlerts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de alertas por categoría
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertsSummaryDTO
// @Router       /api/alerts/summary [get]
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetAlertsSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
