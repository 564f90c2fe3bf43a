package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

// DocumentsUseCase genera los documentos derivados de las ventas: comprobante PDF y exportación XLSX.
type DocumentsUseCase struct {
	ledger      *Ledger
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	pdf         ReceiptPDFGenerator
	exporter    SalesExporter
}

// NewDocumentsUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentsUseCase(
	ledger *Ledger,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	pdf ReceiptPDFGenerator,
	exporter SalesExporter,
) *DocumentsUseCase {
	return &DocumentsUseCase{
		ledger:      ledger,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		pdf:         pdf,
		exporter:    exporter,
	}
}

// DownloadReceiptPDF genera el comprobante de una venta.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - *domain.SaleError NOT_FOUND si la venta no existe.
//   - domain.ErrNotFound si el producto o el cliente ya no existen.
//   - error envuelto (500) si falla la consulta al repositorio.
func (uc *DocumentsUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) ([]byte, string, error) {
	// ── 1. Cargar venta ───────────────────────────────────────────────────────
	sale, err := uc.ledger.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cargar producto y cliente ──────────────────────────────────────────
	product, err := uc.productRepo.GetByID(ctx, sale.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener producto %s: %w", sale.ProductID, err)
	}
	if product == nil {
		return nil, "", fmt.Errorf("%w: comprobante: producto %s", domain.ErrNotFound, sale.ProductID)
	}
	client, err := uc.clientRepo.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cliente %s: %w", sale.ClientID, err)
	}
	if client == nil {
		return nil, "", fmt.Errorf("%w: comprobante: cliente %s", domain.ErrNotFound, sale.ClientID)
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err := uc.pdf.GenerateSaleReceipt(ctx, SaleReceipt{
		Sale:     sale,
		Product:  product,
		Client:   client,
		IssuedAt: uc.ledger.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, "venta_" + shortID(sale.ID) + ".pdf", nil
}

// ExportSales genera un XLSX con las ventas de [start, end] (nil = sin límite).
func (uc *DocumentsUseCase) ExportSales(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	list, err := uc.ledger.GetSalesByPeriod(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	// Cache de nombres: una venta por fila, muchos productos y clientes repetidos
	products := map[string][2]string{}
	clients := map[string]string{}
	rows := make([]SaleExportRow, 0, len(list))
	for _, s := range list {
		p, ok := products[s.ProductID]
		if !ok {
			p = [2]string{"", "Producto " + s.ProductID}
			if product, pErr := uc.productRepo.GetByID(ctx, s.ProductID); pErr == nil && product != nil {
				p = [2]string{product.SKU, product.Name}
			}
			products[s.ProductID] = p
		}
		c, ok := clients[s.ClientID]
		if !ok {
			c = "Cliente " + s.ClientID
			if client, cErr := uc.clientRepo.GetByID(ctx, s.ClientID); cErr == nil && client != nil {
				c = client.Name
			}
			clients[s.ClientID] = c
		}
		rows = append(rows, SaleExportRow{Sale: s, SKU: p[0], ProductName: p[1], ClientName: c})
	}

	data, err := uc.exporter.ExportSales(ctx, SalesReport{From: start, To: end, Rows: rows})
	if err != nil {
		return nil, "", fmt.Errorf("exportación: generación fallida: %w", err)
	}
	filename := "ventas_" + uc.ledger.Now().Format("20060102") + ".xlsx"
	return data, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
