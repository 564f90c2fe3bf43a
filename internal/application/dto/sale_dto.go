package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
// UnitPrice nil toma el precio de venta actual del producto.
type CreateSaleRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	ClientID  string           `json:"client_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal  `json:"discount"`
	Status    string           `json:"status" validate:"omitempty,oneof=completed pending"`
	Notes     string           `json:"notes" validate:"max=500"`
}

// UpdateSaleStatusRequest cambio de estado de una venta.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed pending cancelled"`
}

// SalesQuery filtros de GET /api/sales. Fechas en formato YYYY-MM-DD (inclusive).
type SalesQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	ClientID  string `query:"client_id"`
	ProductID string `query:"product_id"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ClientID    string          `json:"client_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SaleListResponse listado de ventas (fecha descendente) con totales de la selección.
type SaleListResponse struct {
	Items        []SaleResponse  `json:"items"`
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"` // solo ventas completadas
}

// DailySalesDTO ingreso y número de ventas completadas de un día.
type DailySalesDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// DailySalesResponse serie diaria en orden cronológico ascendente.
type DailySalesResponse struct {
	Days         int             `json:"days"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Items        []DailySalesDTO `json:"items"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCount   int             `json:"total_count"`
}
