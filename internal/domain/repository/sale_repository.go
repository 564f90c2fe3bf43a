package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
)

// SaleFilter criterios de búsqueda de ventas. Los campos vacíos/nil no filtran.
// From y To son inclusivos.
type SaleFilter struct {
	From      *time.Time
	To        *time.Time
	ClientID  string
	ProductID string
	Status    string
	Limit     int // 0 = sin límite
}

// ProductSalesResult acumulado de ventas completadas de un producto.
type ProductSalesResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
	SalesCount   int
}

// ClientSalesResult acumulado de ventas completadas de un cliente.
type ClientSalesResult struct {
	ClientID   string
	ClientName string
	Revenue    decimal.Decimal
	SalesCount int
}

// SaleRepository define el puerto de persistencia y consultas de ventas.
// List siempre ordena por fecha descendente (más reciente primero).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (cambios de estado).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)

	// Agregados de solo lectura sobre ventas completadas en [start, end].
	Totals(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, count int, err error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesResult, error)
	TopClients(ctx context.Context, start, end time.Time, limit int) ([]ClientSalesResult, error)
}
