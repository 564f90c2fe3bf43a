// Package alerts deriva avisos operativos del estado actual de productos y ventas.
package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

// DefaultStalePendingDays antigüedad a partir de la cual una venta pendiente genera alerta.
const DefaultStalePendingDays = 7

// SummaryTotalKey clave del total en el resumen por categoría.
const SummaryTotalKey = "total"

// AlertUseCase calcula las alertas en cada consulta; no hay estado persistido.
type AlertUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	staleAfter  time.Duration
	now         func() time.Time
}

// NewAlertUseCase construye el caso de uso. stalePendingDays <= 0 usa DefaultStalePendingDays;
// now nil usa time.Now.
func NewAlertUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	stalePendingDays int,
	now func() time.Time,
) *AlertUseCase {
	if stalePendingDays <= 0 {
		stalePendingDays = DefaultStalePendingDays
	}
	if now == nil {
		now = time.Now
	}
	return &AlertUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		staleAfter:  time.Duration(stalePendingDays) * 24 * time.Hour,
		now:         now,
	}
}

// GetAllAlerts devuelve las alertas vigentes: críticas primero y, dentro de la misma
// severidad, las más recientes primero.
func (uc *AlertUseCase) GetAllAlerts(ctx context.Context) ([]dto.AlertDTO, error) {
	list, err := uc.collect(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := entity.SeverityRank(list[i].Severity), entity.SeverityRank(list[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return list[i].At.After(list[j].At)
	})

	out := make([]dto.AlertDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertDTO(a))
	}
	return out, nil
}

// GetAlertsSummary cuenta las alertas por categoría. Todas las categorías aparecen
// (cero si no hay) y "total" suma todas.
func (uc *AlertUseCase) GetAlertsSummary(ctx context.Context) (dto.AlertsSummaryDTO, error) {
	list, err := uc.collect(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(list), nil
}

// Summarize cuenta alertas por categoría incluyendo todas las conocidas y el total.
func Summarize(list []entity.Alert) dto.AlertsSummaryDTO {
	out := EmptySummary()
	for _, a := range list {
		out[a.Category]++
		out[SummaryTotalKey]++
	}
	return out
}

// EmptySummary resumen con todas las categorías en cero.
func EmptySummary() dto.AlertsSummaryDTO {
	out := make(dto.AlertsSummaryDTO, len(entity.AlertCategories)+1)
	for _, c := range entity.AlertCategories {
		out[c] = 0
	}
	out[SummaryTotalKey] = 0
	return out
}

func (uc *AlertUseCase) collect(ctx context.Context) ([]entity.Alert, error) {
	// 1. Productos agotados o bajo el punto de reorden
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alertas: listar productos: %w", err)
	}

	list := make([]entity.Alert, 0)
	for _, p := range products {
		switch p.StockStatus() {
		case entity.StockStatusOutOfStock:
			list = append(list, entity.Alert{
				ID:        entity.AlertCategoryOutOfStock + ":" + p.ID,
				Category:  entity.AlertCategoryOutOfStock,
				Severity:  entity.AlertSeverityCritical,
				Title:     "Producto agotado",
				Message:   fmt.Sprintf("%s (%s) no tiene unidades disponibles", p.Name, p.SKU),
				ProductID: p.ID,
				At:        p.UpdatedAt,
			})
		case entity.StockStatusLowStock:
			list = append(list, entity.Alert{
				ID:        entity.AlertCategoryLowStock + ":" + p.ID,
				Category:  entity.AlertCategoryLowStock,
				Severity:  entity.AlertSeverityWarning,
				Title:     "Stock bajo",
				Message:   fmt.Sprintf("%s (%s): %d unidades, punto de reorden %d", p.Name, p.SKU, p.Stock, p.ReorderPoint),
				ProductID: p.ID,
				At:        p.UpdatedAt,
			})
		}
	}

	// 2. Ventas pendientes más antiguas que el umbral
	cutoff := uc.now().Add(-uc.staleAfter)
	pending, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		To:     &cutoff,
		Status: entity.SaleStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("alertas: listar ventas pendientes: %w", err)
	}
	for _, s := range pending {
		days := int(uc.now().Sub(s.Date).Hours() / 24)
		list = append(list, entity.Alert{
			ID:        entity.AlertCategoryStalePendingSale + ":" + s.ID,
			Category:  entity.AlertCategoryStalePendingSale,
			Severity:  entity.AlertSeverityInfo,
			Title:     "Venta pendiente",
			Message:   fmt.Sprintf("La venta %s lleva %d días pendiente", s.ID, days),
			ProductID: s.ProductID,
			SaleID:    s.ID,
			At:        s.Date,
		})
	}
	return list, nil
}

func toAlertDTO(a entity.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:        a.ID,
		Category:  a.Category,
		Severity:  a.Severity,
		Title:     a.Title,
		Message:   a.Message,
		ProductID: a.ProductID,
		SaleID:    a.SaleID,
		At:        a.At,
	}
}
