package dto

import "github.com/shopspring/decimal"

// DashboardDataDTO respuesta de GET /api/dashboard/summary.
// Contiene la serie de ventas diarias, los KPIs del día y del mes y los rankings del mes.
type DashboardDataDTO struct {
	// Ventana de ventas diarias (orden cronológico ascendente)
	DailySales    []DailySalesDTO `json:"daily_sales"`
	PeriodRevenue decimal.Decimal `json:"period_revenue"` // suma de la ventana
	PeriodCount   int             `json:"period_count"`

	// Métricas del día actual (00:00 – ahora)
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodayCount   int             `json:"today_count"`

	// Métricas del mes en curso (día 1 – ahora)
	MonthRevenue  decimal.Decimal `json:"month_revenue"`
	MonthCount    int             `json:"month_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"` // ingreso medio por venta del mes

	// Rankings del mes por ingreso (de mayor a menor)
	TopProducts []TopProductDTO `json:"top_products"`
	TopClients  []TopClientDTO  `json:"top_clients"`

	// Últimas ventas registradas (cualquier estado)
	RecentSales []SaleResponse `json:"recent_sales"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	SalesCount   int             `json:"sales_count"`
}

// TopClientDTO resumen de un cliente para el widget del dashboard.
type TopClientDTO struct {
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int             `json:"sales_count"`
}

// DashboardPageDTO respuesta de GET /api/dashboard: todo lo que la vista principal necesita.
// Nunca falla: si algún proveedor falla, todos los valores vienen vacíos y Notice explica el motivo.
type DashboardPageDTO struct {
	DashboardData DashboardDataDTO `json:"dashboard_data"`
	Alerts        []AlertDTO       `json:"alerts"`
	AlertsSummary AlertsSummaryDTO `json:"alerts_summary"`
	StockSummary  StockSummaryDTO  `json:"stock_summary"`
	Notice        string           `json:"notice,omitempty"`
}

// EmptyDashboardData datos vacíos (ceros y listas no nulas).
func EmptyDashboardData() DashboardDataDTO {
	return DashboardDataDTO{
		DailySales:    []DailySalesDTO{},
		PeriodRevenue: decimal.Zero,
		TodayRevenue:  decimal.Zero,
		MonthRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		TopProducts:   []TopProductDTO{},
		TopClients:    []TopClientDTO{},
		RecentSales:   []SaleResponse{},
	}
}
