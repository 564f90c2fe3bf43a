package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// Sale representa una venta de un producto a un cliente.
// Una vez creada solo cambia su Status; TotalAmount se recalcula con CalculateTotal.
type Sale struct {
	ID          string
	ProductID   string
	ClientID    string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalAmount decimal.Decimal // UnitPrice * Quantity - Discount
	Status      string
	Date        time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CalculateTotal recalcula TotalAmount a partir de precio, cantidad y descuento.
func (s *Sale) CalculateTotal() decimal.Decimal {
	s.TotalAmount = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity))).Sub(s.Discount)
	return s.TotalAmount
}

// IsCompleted indica si la venta cuenta para los reportes de ingresos.
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// saleTransitions cambios de estado permitidos.
var saleTransitions = map[string][]string{
	SaleStatusPending:   {SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusCompleted: {SaleStatusCancelled},
}

// ValidSaleStatus indica si status es uno de los estados conocidos.
func ValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransition indica si una venta puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range saleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
