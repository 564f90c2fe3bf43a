// Package stock resume el estado del inventario para el dashboard.
package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

// SummaryUseCase agrega el stock de todos los productos (solo lectura).
type SummaryUseCase struct {
	productRepo repository.ProductRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(productRepo repository.ProductRepository) *SummaryUseCase {
	return &SummaryUseCase{productRepo: productRepo}
}

// GetStockSummary cuenta productos por estado de stock, suma unidades y valoriza el inventario
// al precio de venta. Las listas de stock bajo y agotado van ordenadas por stock ascendente.
func (uc *SummaryUseCase) GetStockSummary(ctx context.Context) (dto.StockSummaryDTO, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return dto.EmptyStockSummary(), fmt.Errorf("stock: listar productos: %w", err)
	}

	out := dto.EmptyStockSummary()
	value := decimal.Zero
	for _, p := range products {
		out.TotalProducts++
		out.TotalUnits += p.Stock
		value = value.Add(p.StockValue())

		switch p.StockStatus() {
		case entity.StockStatusOutOfStock:
			out.OutOfStockCount++
			out.OutOfStock = append(out.OutOfStock, toStockItem(p))
		case entity.StockStatusLowStock:
			out.LowStockCount++
			out.LowStock = append(out.LowStock, toStockItem(p))
		default:
			out.InStockCount++
		}
	}
	out.StockValue = value.Round(2)

	sortItems(out.LowStock)
	sortItems(out.OutOfStock)
	return out, nil
}

func toStockItem(p *entity.Product) dto.StockItemDTO {
	return dto.StockItemDTO{
		ProductID:    p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Stock:        p.Stock,
		ReorderPoint: p.ReorderPoint,
	}
}

func sortItems(items []dto.StockItemDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Stock != items[j].Stock {
			return items[i].Stock < items[j].Stock
		}
		return items[i].Name < items[j].Name
	})
}
