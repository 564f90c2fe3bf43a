// Package memory implementa los repositorios en memoria (driver "memory" y doble de pruebas).
// Las transacciones toman el lock del store completo y restauran una copia si fallan.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

// Store guarda copias de las entidades; nunca expone punteros internos.
type Store struct {
	mu       sync.RWMutex
	products map[string]entity.Product
	clients  map[string]entity.Client
	sales    map[string]entity.Sale
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products: map[string]entity.Product{},
		clients:  map[string]entity.Client{},
		sales:    map[string]entity.Sale{},
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Clients repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s: s} }

// Run ejecuta fn con el store bloqueado. Si fn falla, entra en pánico o el contexto se cancela
// antes del commit, se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
	}()
	if err := fn(&productRepo{s: s, inTx: true}, &saleRepo{s: s, inTx: true}); err != nil {
		s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	products map[string]entity.Product
	sales    map[string]entity.Sale
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		sales:    make(map[string]entity.Sale, len(s.sales)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.sales = snap.sales
}

// read/write toman el lock salvo dentro de Run, que ya lo tiene.
func (s *Store) read(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.write(r.inTx)()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.read(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.read(r.inTx)()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

// GetForUpdate dentro de Run el lock del store ya serializa a los escritores.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.write(r.inTx)()
	current, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Stock solo cambia por UpdateStock
	updated := *p
	updated.Stock = current.Stock
	r.s.products[p.ID] = updated
	return nil
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock int) error {
	defer r.s.write(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll(ctx)
	return page(all, limit, offset), nil
}

func (r *productRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	defer r.s.read(r.inTx)()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type clientRepo struct {
	s *Store
}

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.TaxID != "" {
		for _, existing := range r.s.clients {
			if existing.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r *clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if c.TaxID == taxID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *clientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type saleRepo struct {
	s    *Store
	inTx bool
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.write(r.inTx)()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.s.read(r.inTx)()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	defer r.s.write(r.inTx)()
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	sale.UpdatedAt = updatedAt
	r.s.sales[id] = sale
	return nil
}

func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	defer r.s.read(r.inTx)()
	out := make([]*entity.Sale, 0)
	for _, sale := range r.s.sales {
		if !matches(sale, f) {
			continue
		}
		out = append(out, &sale)
	}
	sortByDateDesc(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *saleRepo) Totals(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	defer r.s.read(r.inTx)()
	revenue := decimal.Zero
	count := 0
	for _, sale := range r.s.completedIn(start, end) {
		revenue = revenue.Add(sale.TotalAmount)
		count++
	}
	return revenue, count, nil
}

func (r *saleRepo) TopProducts(_ context.Context, start, end time.Time, limit int) ([]repository.ProductSalesResult, error) {
	defer r.s.read(r.inTx)()
	byID := map[string]*repository.ProductSalesResult{}
	for _, sale := range r.s.completedIn(start, end) {
		acc, ok := byID[sale.ProductID]
		if !ok {
			p := r.s.products[sale.ProductID]
			acc = &repository.ProductSalesResult{
				ProductID:   sale.ProductID,
				SKU:         p.SKU,
				ProductName: p.Name,
				Revenue:     decimal.Zero,
			}
			byID[sale.ProductID] = acc
		}
		acc.QuantitySold += sale.Quantity
		acc.Revenue = acc.Revenue.Add(sale.TotalAmount)
		acc.SalesCount++
	}
	out := make([]repository.ProductSalesResult, 0, len(byID))
	for _, acc := range byID {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *saleRepo) TopClients(_ context.Context, start, end time.Time, limit int) ([]repository.ClientSalesResult, error) {
	defer r.s.read(r.inTx)()
	byID := map[string]*repository.ClientSalesResult{}
	for _, sale := range r.s.completedIn(start, end) {
		acc, ok := byID[sale.ClientID]
		if !ok {
			acc = &repository.ClientSalesResult{
				ClientID:   sale.ClientID,
				ClientName: r.s.clients[sale.ClientID].Name,
				Revenue:    decimal.Zero,
			}
			byID[sale.ClientID] = acc
		}
		acc.Revenue = acc.Revenue.Add(sale.TotalAmount)
		acc.SalesCount++
	}
	out := make([]repository.ClientSalesResult, 0, len(byID))
	for _, acc := range byID {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ClientName < out[j].ClientName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// completedIn ventas completadas con fecha en [start, end]; el caller tiene el lock.
func (s *Store) completedIn(start, end time.Time) []entity.Sale {
	out := make([]entity.Sale, 0)
	for _, sale := range s.sales {
		if sale.IsCompleted() && !sale.Date.Before(start) && !sale.Date.After(end) {
			out = append(out, sale)
		}
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func matches(sale entity.Sale, f repository.SaleFilter) bool {
	if f.From != nil && sale.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && sale.Date.After(*f.To) {
		return false
	}
	if f.ClientID != "" && sale.ClientID != f.ClientID {
		return false
	}
	if f.ProductID != "" && sale.ProductID != f.ProductID {
		return false
	}
	if f.Status != "" && sale.Status != f.Status {
		return false
	}
	return true
}

// sortByDateDesc más reciente primero; a igual fecha desempata por creación y luego ID.
func sortByDateDesc(list []*entity.Sale) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
