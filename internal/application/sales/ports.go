package sales

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Un fallo de Commit se devuelve como error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, receipt SaleReceipt) ([]byte, error)
}

// SalesExporter genera una hoja de cálculo con un listado de ventas.
type SalesExporter interface {
	ExportSales(ctx context.Context, report SalesReport) ([]byte, error)
}

// SaleReceipt datos necesarios para el comprobante de una venta.
type SaleReceipt struct {
	Sale     *entity.Sale
	Product  *entity.Product
	Client   *entity.Client
	IssuedAt time.Time
}

// SaleExportRow una venta con los nombres de producto y cliente resueltos.
type SaleExportRow struct {
	Sale        *entity.Sale
	SKU         string
	ProductName string
	ClientName  string
}

// SalesReport listado exportable (fecha descendente) y su período.
type SalesReport struct {
	From *time.Time
	To   *time.Time
	Rows []SaleExportRow
}
