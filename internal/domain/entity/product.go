package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de la cantidad disponible y el punto de reorden.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Product representa un producto del catálogo con su stock disponible.
// Stock nunca es negativo: el libro de ventas lo verifica antes de descontar.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Stock        int             // unidades disponibles
	ReorderPoint int             // umbral de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockStatus clasifica el producto: agotado (0), bajo (<= punto de reorden) o disponible.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock <= 0:
		return StockStatusOutOfStock
	case p.Stock <= p.ReorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockValue valoriza el stock disponible al precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
