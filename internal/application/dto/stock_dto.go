package dto

import "github.com/shopspring/decimal"

// StockItemDTO producto en una lista de stock bajo o agotado.
type StockItemDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
}

// StockSummaryDTO respuesta de GET /api/stock/summary.
type StockSummaryDTO struct {
	TotalProducts   int             `json:"total_products"`
	InStockCount    int             `json:"in_stock_count"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalUnits      int             `json:"total_units"`
	StockValue      decimal.Decimal `json:"stock_value"` // unidades * precio de venta
	LowStock        []StockItemDTO  `json:"low_stock"`
	OutOfStock      []StockItemDTO  `json:"out_of_stock"`
}

// EmptyStockSummary resumen vacío (listas no nulas) para respuestas degradadas.
func EmptyStockSummary() StockSummaryDTO {
	return StockSummaryDTO{
		StockValue: decimal.Zero,
		LowStock:   []StockItemDTO{},
		OutOfStock: []StockItemDTO{},
	}
}
