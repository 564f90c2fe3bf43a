package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/reporting"
)

// FromRequest convierte el DTO HTTP en la entrada del libro de ventas.
func FromRequest(req dto.CreateSaleRequest) CreateSaleInput {
	return CreateSaleInput{
		ProductID: req.ProductID,
		ClientID:  req.ClientID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Discount:  req.Discount,
		Status:    req.Status,
		Notes:     req.Notes,
	}
}

// ToSaleResponse convierte una venta en su DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ClientID:    s.ClientID,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Discount:    s.Discount,
		TotalAmount: s.TotalAmount,
		Status:      s.Status,
		Date:        s.Date,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSaleList arma el listado con el ingreso de las ventas completadas de la selección.
func ToSaleList(list []*entity.Sale) dto.SaleListResponse {
	items := make([]dto.SaleResponse, 0, len(list))
	revenue := decimal.Zero
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
		if s.IsCompleted() {
			revenue = revenue.Add(s.TotalAmount)
		}
	}
	return dto.SaleListResponse{Items: items, Count: len(items), TotalRevenue: revenue}
}

// ToDailySales convierte la serie diaria a DTOs con fechas YYYY-MM-DD.
func ToDailySales(days []reporting.DayTotal) []dto.DailySalesDTO {
	out := make([]dto.DailySalesDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailySalesDTO{
			Date:    d.Date.Format("2006-01-02"),
			Revenue: d.Revenue,
			Count:   d.Count,
		})
	}
	return out
}

// ToDailySalesResponse arma la respuesta de GET /api/sales/daily.
func ToDailySalesResponse(days []reporting.DayTotal) dto.DailySalesResponse {
	items := ToDailySales(days)
	revenue, count := reporting.SumTotals(days)
	resp := dto.DailySalesResponse{
		Days:         len(items),
		Items:        items,
		TotalRevenue: revenue,
		TotalCount:   count,
	}
	if len(items) > 0 {
		resp.From = items[0].Date
		resp.To = items[len(items)-1].Date
	}
	return resp
}
