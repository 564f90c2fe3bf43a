package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, client_id, quantity, unit_price, discount, total_amount, status, date, notes, created_at, updated_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.ClientID, s.Quantity, s.UnitPrice, s.Discount, s.TotalAmount,
		s.Status, s.Date, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE). Usar solo dentro de una tx.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		// Un id con formato inválido no puede existir
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// UpdateStatus cambia el estado de una venta.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra ventas por fecha (inclusiva), cliente, producto y estado; más reciente primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	// client_id y product_id son UUID: otro formato no tiene ventas
	if (f.ClientID != "" && !isUUID(f.ClientID)) || (f.ProductID != "" && !isUUID(f.ProductID)) {
		return []*entity.Sale{}, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, f.ClientID)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	query += " ORDER BY date DESC, created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Totals ingreso y número de ventas completadas del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *SaleRepo) Totals(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, count int, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_amount), 0) AS revenue,
	    COUNT(*)                       AS sales_count
	FROM sales
	WHERE status = 'completed'
	  AND date BETWEEN $1 AND $2`

	if err = r.q.QueryRow(ctx, query, start, end).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales.Totals: %w", err)
	}
	return revenue, count, nil
}

// TopProducts devuelve los `limit` productos con mayor ingreso en el período.
func (r *SaleRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    p.id                  AS product_id,
	    p.sku,
	    p.name                AS product_name,
	    SUM(s.quantity)       AS quantity_sold,
	    SUM(s.total_amount)   AS revenue,
	    COUNT(*)              AS sales_count
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.status = 'completed'
	  AND s.date BETWEEN $1 AND $2
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC, p.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("sales.TopProducts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ProductSalesResult, 0)
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.QuantitySold,
			&row.Revenue,
			&row.SalesCount,
		); err != nil {
			return nil, fmt.Errorf("sales.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopClients devuelve los `limit` clientes con mayor ingreso en el período.
func (r *SaleRepo) TopClients(ctx context.Context, start, end time.Time, limit int) ([]repository.ClientSalesResult, error) {
	const query = `
	SELECT
	    c.id                  AS client_id,
	    c.name                AS client_name,
	    SUM(s.total_amount)   AS revenue,
	    COUNT(*)              AS sales_count
	FROM sales s
	JOIN clients c ON c.id = s.client_id
	WHERE s.status = 'completed'
	  AND s.date BETWEEN $1 AND $2
	GROUP BY c.id, c.name
	ORDER BY revenue DESC, c.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("sales.TopClients: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ClientSalesResult, 0)
	for rows.Next() {
		var row repository.ClientSalesResult
		if err := rows.Scan(&row.ClientID, &row.ClientName, &row.Revenue, &row.SalesCount); err != nil {
			return nil, fmt.Errorf("sales.TopClients scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.ClientID, &s.Quantity, &s.UnitPrice, &s.Discount,
		&s.TotalAmount, &s.Status, &s.Date, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
