package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/gestion-comercial-api/internal/application/analytics"
	"github.com/jhoicas/gestion-comercial-api/internal/application/catalog"
	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *sales.Ledger
	Documents   *sales.DocumentsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	StockUC     *stock.SummaryUseCase
	AlertUC     *alerts.AlertUseCase
	ProductUC   *catalog.ProductUseCase
	ClientUC    *catalog.ClientUseCase
	JWTSecret   string
	DailyDays   int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleVendedor)
	adminOnly := RequireRole(RoleAdmin)

	// Sales: las rutas fijas van antes de /:id
	saleGroup := api.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.Ledger, deps.Documents, deps.DailyDays)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/daily", saleHandler.Daily)
	saleGroup.Get("/export", saleHandler.Export)
	saleGroup.Get("/:id", saleHandler.GetByID)
	saleGroup.Get("/:id/receipt", saleHandler.Receipt)
	saleGroup.Patch("/:id/status", adminOnly, saleHandler.UpdateStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", anyRole, dashboardHandler.GetPage)
	api.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)

	// Stock
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock/summary", anyRole, stockHandler.GetSummary)

	// Alerts
	alertHandler := NewAlertHandler(deps.AlertUC)
	api.Get("/alerts", anyRole, alertHandler.List)
	api.Get("/alerts/summary", anyRole, alertHandler.Summary)

	// Products (escritura solo admin)
	products := api.Group("/products", anyRole)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Clients
	clients := api.Group("/clients", anyRole)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
}
