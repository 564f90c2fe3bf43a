package entity

import "time"

// Categorías de alerta.
const (
	AlertCategoryOutOfStock       = "out_of_stock"
	AlertCategoryLowStock         = "low_stock"
	AlertCategoryStalePendingSale = "stale_pending_sale"
)

// Severidades, de mayor a menor.
const (
	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
	AlertSeverityInfo     = "info"
)

// AlertCategories lista todas las categorías conocidas (orden estable para resúmenes).
var AlertCategories = []string{
	AlertCategoryOutOfStock,
	AlertCategoryLowStock,
	AlertCategoryStalePendingSale,
}

// Alert es un aviso derivado del estado actual del negocio. No se persiste:
// se recalcula en cada consulta.
type Alert struct {
	ID        string
	Category  string
	Severity  string
	Title     string
	Message   string
	ProductID string
	SaleID    string
	At        time.Time // momento del hecho que origina la alerta
}

// SeverityRank devuelve el orden de la severidad (0 = más grave).
func SeverityRank(severity string) int {
	switch severity {
	case AlertSeverityCritical:
		return 0
	case AlertSeverityWarning:
		return 1
	case AlertSeverityInfo:
		return 2
	default:
		return 3
	}
}
