package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/application/catalog"
	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/memory"
)

func TestProductUseCase_CrearActualizarListar(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewProductUseCase(memory.New().Products())

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: "CAF-500", Name: "Café", Price: decimal.NewFromInt(18500), Stock: 3, ReorderPoint: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLowStock, created.StockStatus)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "CAF-500", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	name := "Café molido"
	reorder := 1
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, ReorderPoint: &reorder})
	require.NoError(t, err)
	assert.Equal(t, "Café molido", updated.Name)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, entity.StockStatusInStock, updated.StockStatus)

	list, err := uc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_PrecioNegativo(t *testing.T) {
	uc := catalog.NewProductUseCase(memory.New().Products())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "X", Name: "X", Price: decimal.NewFromInt(-1)})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientUseCase_CrearYDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewClientUseCase(memory.New().Clients())

	created, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Tienda La Esquina", TaxID: "900123456-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Otra", TaxID: "900123456-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Sin documento no hay conflicto
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Consumidor Final"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Consumidor Final 2"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda La Esquina", got.Name)

	list, err := uc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}
