package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
)

// Seed carga productos y clientes (copias). Sobrescribe los IDs existentes.
func (s *Store) Seed(products []*entity.Product, clients []*entity.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = *p
	}
	for _, c := range clients {
		s.clients[c.ID] = *c
	}
}

// NewSeeded store con un catálogo de demostración para el modo de desarrollo.
func NewSeeded() *Store {
	now := time.Now().UTC()
	product := func(id, sku, name, price string, stock, reorder int) *entity.Product {
		return &entity.Product{
			ID: id, SKU: sku, Name: name,
			Price:        decimal.RequireFromString(price),
			Stock:        stock,
			ReorderPoint: reorder,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	client := func(id, name, taxID, email string) *entity.Client {
		return &entity.Client{ID: id, Name: name, TaxID: taxID, Email: email, CreatedAt: now, UpdatedAt: now}
	}

	s := New()
	s.Seed(
		[]*entity.Product{
			product("prod-cafe-500", "CAF-500", "Café molido 500g", "18500", 40, 10),
			product("prod-panela-1k", "PAN-1K", "Panela 1kg", "6200", 8, 10),
			product("prod-arroz-5k", "ARR-5K", "Arroz 5kg", "24900", 25, 5),
			product("prod-aceite-1l", "ACE-1L", "Aceite vegetal 1L", "13900", 0, 6),
			product("prod-azucar-1k", "AZU-1K", "Azúcar 1kg", "4800", 60, 12),
		},
		[]*entity.Client{
			client("cli-tienda-esquina", "Tienda La Esquina", "900123456-1", "compras@laesquina.co"),
			client("cli-minimercado-sol", "Minimercado El Sol", "901987654-3", "pedidos@elsol.co"),
			client("cli-consumidor-final", "Consumidor Final", "", ""),
		},
	)
	return s
}
