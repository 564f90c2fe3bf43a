package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *alerts.AlertUseCase {
	t.Helper()
	store := memory.New()
	store.Seed([]*entity.Product{
		{ID: "ok", SKU: "OK", Name: "Arroz", Price: decimal.NewFromInt(1), Stock: 50, ReorderPoint: 5, UpdatedAt: now},
		{ID: "low-old", SKU: "L1", Name: "Bocadillo", Stock: 2, ReorderPoint: 5, UpdatedAt: now.Add(-48 * time.Hour)},
		{ID: "low-new", SKU: "L2", Name: "Café", Stock: 3, ReorderPoint: 5, UpdatedAt: now.Add(-time.Hour)},
		{ID: "out", SKU: "O1", Name: "Dulce", Stock: 0, ReorderPoint: 5, UpdatedAt: now.Add(-72 * time.Hour)},
	}, []*entity.Client{{ID: "c1", Name: "Tienda"}})

	ctx := context.Background()
	for _, s := range []*entity.Sale{
		{ID: "stale", ProductID: "ok", ClientID: "c1", Quantity: 1, Status: entity.SaleStatusPending, Date: now.AddDate(0, 0, -10)},
		{ID: "fresh", ProductID: "ok", ClientID: "c1", Quantity: 1, Status: entity.SaleStatusPending, Date: now.AddDate(0, 0, -2)},
		{ID: "old-done", ProductID: "ok", ClientID: "c1", Quantity: 1, Status: entity.SaleStatusCompleted, Date: now.AddDate(0, 0, -30)},
	} {
		require.NoError(t, store.Sales().Create(ctx, s))
	}
	return alerts.NewAlertUseCase(store.Products(), store.Sales(), 7, func() time.Time { return now })
}

func TestGetAllAlerts_OrdenPorSeveridadYRecencia(t *testing.T) {
	uc := newUseCase(t)

	list, err := uc.GetAllAlerts(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, entity.AlertCategoryOutOfStock, list[0].Category)
	assert.Equal(t, entity.AlertSeverityCritical, list[0].Severity)
	assert.Equal(t, "low-new", list[1].ProductID, "más reciente primero")
	assert.Equal(t, "low-old", list[2].ProductID)
	assert.Equal(t, entity.AlertCategoryStalePendingSale, list[3].Category)
	assert.Equal(t, "stale", list[3].SaleID)
}

func TestGetAlertsSummary_IncluyeTodasLasCategorias(t *testing.T) {
	uc := newUseCase(t)

	summary, err := uc.GetAlertsSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary[entity.AlertCategoryOutOfStock])
	assert.Equal(t, 2, summary[entity.AlertCategoryLowStock])
	assert.Equal(t, 1, summary[entity.AlertCategoryStalePendingSale])
	assert.Equal(t, 4, summary[alerts.SummaryTotalKey])
}

func TestGetAlertsSummary_SinAlertas(t *testing.T) {
	store := memory.New()
	uc := alerts.NewAlertUseCase(store.Products(), store.Sales(), 0, nil)

	summary, err := uc.GetAlertsSummary(context.Background())

	require.NoError(t, err)
	assert.Len(t, summary, len(entity.AlertCategories)+1)
	for _, c := range entity.AlertCategories {
		v, ok := summary[c]
		assert.True(t, ok, c)
		assert.Zero(t, v)
	}
	assert.Zero(t, summary[alerts.SummaryTotalKey])
}
