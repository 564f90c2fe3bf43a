package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/memory"
)

func seededStore() *memory.Store {
	s := memory.New()
	s.Seed(
		[]*entity.Product{{ID: "p1", SKU: "A-1", Name: "Arroz", Price: decimal.NewFromInt(10), Stock: 5}},
		[]*entity.Client{{ID: "c1", Name: "Tienda"}},
	)
	return s
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := seededStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", ClientID: "c1", Quantity: 2}))
		require.NoError(t, products.UpdateStock(ctx, "p1", 3))
		return boom
	})

	require.ErrorIs(t, err, boom)
	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 5, p.Stock)
	sale, _ := s.Sales().GetByID(ctx, "s1")
	assert.Nil(t, sale)
}

func TestRun_PanicRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := seededStore()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
			require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", ClientID: "c1", Quantity: 2}))
			require.NoError(t, products.UpdateStock(ctx, "p1", 3))
			panic("boom")
		})
	})

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 5, p.Stock)
	sale, _ := s.Sales().GetByID(ctx, "s1")
	assert.Nil(t, sale)
	// El lock se liberó
	require.NoError(t, s.Run(ctx, func(repository.ProductRepository, repository.SaleRepository) error { return nil }))
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := seededStore()

	err := s.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		if err := sales.Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", ClientID: "c1", Quantity: 2}); err != nil {
			return err
		}
		return products.UpdateStock(ctx, "p1", 3)
	})

	require.NoError(t, err)
	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 3, p.Stock)
	sale, _ := s.Sales().GetByID(ctx, "s1")
	require.NotNil(t, sale)
}

func TestRun_ContextoCanceladoNoEjecuta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	err := seededStore().Run(ctx, func(repository.ProductRepository, repository.SaleRepository) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProducts_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := seededStore()

	p, _ := s.Products().GetByID(ctx, "p1")
	p.Stock = 999

	again, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, 5, again.Stock)
}

func TestProducts_SKUDuplicado(t *testing.T) {
	err := seededStore().Products().Create(context.Background(), &entity.Product{ID: "p2", SKU: "A-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProducts_UpdateNoCambiaStock(t *testing.T) {
	ctx := context.Background()
	s := seededStore()

	err := s.Products().Update(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "Arroz premium", Stock: 100})

	require.NoError(t, err)
	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, "Arroz premium", p.Name)
	assert.Equal(t, 5, p.Stock)
}

func TestSales_ListOrdenYFiltros(t *testing.T) {
	ctx := context.Background()
	s := seededStore()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, st := range []string{entity.SaleStatusCompleted, entity.SaleStatusPending, entity.SaleStatusCompleted} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
			ID: string(rune('a' + i)), ProductID: "p1", ClientID: "c1", Quantity: 1,
			TotalAmount: decimal.NewFromInt(10), Status: st, Date: base.AddDate(0, 0, i),
		}))
	}

	all, err := s.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	from := base.AddDate(0, 0, 1)
	ranged, _ := s.Sales().List(ctx, repository.SaleFilter{From: &from})
	assert.Len(t, ranged, 2)

	completed, _ := s.Sales().List(ctx, repository.SaleFilter{Status: entity.SaleStatusCompleted, Limit: 1})
	require.Len(t, completed, 1)
	assert.Equal(t, "c", completed[0].ID)

	revenue, count, err := s.Sales().Totals(ctx, base, base.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(revenue))
	assert.Equal(t, 2, count)

	top, err := s.Sales().TopProducts(ctx, base, base.AddDate(0, 0, 5), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Arroz", top[0].ProductName)
	assert.Equal(t, 2, top[0].QuantitySold)

	clients, err := s.Sales().TopClients(ctx, base, base.AddDate(0, 0, 5), 5)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Tienda", clients[0].ClientName)
}
