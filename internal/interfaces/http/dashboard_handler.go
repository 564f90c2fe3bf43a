package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/gestion-comercial-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetPage devuelve todo lo que la vista principal necesita.
// GET /api/dashboard
//
// Respuesta: DashboardPageDTO (dashboard_data, alerts[5], alerts_summary, stock_summary, notice).
// Siempre responde 200: si algún proveedor falla llegan valores vacíos y notice explica el motivo.
func (h *DashboardHandler) GetPage(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetDashboardPage(c.Context()))
}

// GetSummary devuelve las métricas de ventas del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardDataDTO (daily_sales, today_*, month_*, average_ticket,
// top_products, top_clients, recent_sales, date_label).
// No requiere parámetros; las fechas se calculan automáticamente en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetDashboardData(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
