// Package xlsx genera las exportaciones de ventas en formato Excel.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
)

const (
	salesSheet   = "Ventas"
	summarySheet = "Resumen"
	dateLayout   = "2006-01-02 15:04"
)

var salesHeadings = []any{
	"Fecha", "Venta", "SKU", "Producto", "Cliente", "Cantidad",
	"Precio unitario", "Descuento", "Total", "Estado",
}

var _ sales.SalesExporter = (*ExcelExporter)(nil)

// ExcelExporter implementa sales.SalesExporter con excelize.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportSales escribe una hoja "Ventas" con una fila por venta y una hoja "Resumen"
// con el ingreso de las completadas y el conteo por estado.
func (e *ExcelExporter) ExportSales(_ context.Context, report sales.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// ── Hoja de ventas ────────────────────────────────────────────────────────
	if err := f.SetSheetRow(salesSheet, "A1", &salesHeadings); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	_ = f.SetCellStyle(salesSheet, "A1", "J1", bold)

	revenue := decimal.Zero
	byStatus := map[string]int{}
	for i, r := range report.Rows {
		s := r.Sale
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			s.Date.Format(dateLayout),
			s.ID,
			r.SKU,
			r.ProductName,
			r.ClientName,
			s.Quantity,
			s.UnitPrice.InexactFloat64(),
			s.Discount.InexactFloat64(),
			s.TotalAmount.InexactFloat64(),
			s.Status,
		}
		if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		byStatus[s.Status]++
		if s.IsCompleted() {
			revenue = revenue.Add(s.TotalAmount)
		}
	}
	_ = f.SetColWidth(salesSheet, "A", "A", 17)
	_ = f.SetColWidth(salesSheet, "B", "B", 38)
	_ = f.SetColWidth(salesSheet, "D", "E", 28)

	// ── Hoja de resumen ───────────────────────────────────────────────────────
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	summary := [][]any{
		{"Desde", formatBound(report.From)},
		{"Hasta", formatBound(report.To)},
		{"Ventas", len(report.Rows)},
		{"Completadas", byStatus[entity.SaleStatusCompleted]},
		{"Pendientes", byStatus[entity.SaleStatusPending]},
		{"Canceladas", byStatus[entity.SaleStatusCancelled]},
		{"Ingreso (completadas)", revenue.InexactFloat64()},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "(sin límite)"
	}
	return t.Format(dateLayout)
}
