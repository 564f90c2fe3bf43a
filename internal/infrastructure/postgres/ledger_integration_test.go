package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-comercial-api/pkg/config"
)

// testPool conecta a TEST_DATABASE_URL y aplica las migraciones; sin la variable el test se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	return pool
}

func TestLedgerPostgres_VentasConcurrentesNoSobrevenden(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC()

	products := postgres.NewProductRepository(pool)
	clients := postgres.NewClientRepository(pool)
	salesRepo := postgres.NewSaleRepository(pool)

	product := &entity.Product{
		ID: uuid.New().String(), SKU: "IT-" + uuid.New().String()[:8], Name: "Integración",
		Price: decimal.NewFromInt(100), Stock: 5, CreatedAt: now, UpdatedAt: now,
	}
	client := &entity.Client{ID: uuid.New().String(), Name: "Cliente integración", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, product))
	require.NoError(t, clients.Create(ctx, client))

	ledger := sales.NewLedger(postgres.NewTxRunner(pool), products, clients, salesRepo, sales.LedgerConfig{}, nil)

	const buyers = 12
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.CreateSale(ctx, sales.CreateSaleInput{ProductID: product.ID, ClientID: client.ID, Quantity: 1})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	got, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	list, err := ledger.GetSalesByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestLedgerPostgres_StockInsuficienteNoEscribe(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC()

	products := postgres.NewProductRepository(pool)
	clients := postgres.NewClientRepository(pool)
	salesRepo := postgres.NewSaleRepository(pool)
	product := &entity.Product{
		ID: uuid.New().String(), SKU: "IT-" + uuid.New().String()[:8], Name: "Integración",
		Price: decimal.NewFromInt(100), Stock: 10, CreatedAt: now, UpdatedAt: now,
	}
	client := &entity.Client{ID: uuid.New().String(), Name: "Cliente integración", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, product))
	require.NoError(t, clients.Create(ctx, client))
	ledger := sales.NewLedger(postgres.NewTxRunner(pool), products, clients, salesRepo, sales.LedgerConfig{}, nil)

	sale, err := ledger.CreateSale(ctx, sales.CreateSaleInput{ProductID: product.ID, ClientID: client.ID, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(sale.TotalAmount))

	_, err = ledger.CreateSale(ctx, sales.CreateSaleInput{ProductID: product.ID, ClientID: client.ID, Quantity: 8})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible: 7")

	got, _ := products.GetByID(ctx, product.ID)
	assert.Equal(t, 7, got.Stock)
}

func TestLedgerPostgres_IDsSinFormatoUUIDSonNotFound(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(pool)
	clients := postgres.NewClientRepository(pool)
	ledger := sales.NewLedger(postgres.NewTxRunner(pool), products, clients,
		postgres.NewSaleRepository(pool), sales.LedgerConfig{}, nil)

	_, err := ledger.GetSale(ctx, "abc")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ledger.CreateSale(ctx, sales.CreateSaleInput{ProductID: "abc", ClientID: "abc", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := ledger.GetSalesByClient(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, list)
}
