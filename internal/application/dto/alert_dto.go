package dto

import "time"

// AlertDTO aviso derivado del estado del negocio.
type AlertDTO struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ProductID string    `json:"product_id,omitempty"`
	SaleID    string    `json:"sale_id,omitempty"`
	At        time.Time `json:"at"`
}

// AlertsSummaryDTO conteo de alertas por categoría (incluye "total").
type AlertsSummaryDTO map[string]int
