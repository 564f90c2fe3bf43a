// Package sales implementa el libro de ventas: registro transaccional de ventas con
// descuento de stock, consultas ordenadas y agregados para reportes.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/domain"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/reporting"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
	"github.com/jhoicas/gestion-comercial-api/pkg/logger"
)

// LedgerConfig parámetros del libro de ventas.
type LedgerConfig struct {
	Location *time.Location   // zona horaria de los cortes diarios (nil = UTC)
	Now      func() time.Time // reloj; nil = time.Now
}

// Ledger es el dueño exclusivo de la transacción de venta (insert + descuento de stock).
type Ledger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	saleRepo    repository.SaleRepository
	loc         *time.Location
	now         func() time.Time
	log         *logger.Logger
}

// NewLedger construye el libro de ventas.
func NewLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	cfg LedgerConfig,
	log *logger.Logger,
) *Ledger {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		txRunner:    txRunner,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		saleRepo:    saleRepo,
		loc:         cfg.Location,
		now:         cfg.Now,
		log:         log,
	}
}

// CreateSaleInput entrada para registrar una venta.
// UnitPrice nil toma el precio de venta actual del producto; Status vacío = completed.
type CreateSaleInput struct {
	ProductID string
	ClientID  string
	Quantity  int
	UnitPrice *decimal.Decimal
	Discount  decimal.Decimal
	Status    string
	Notes     string
}

// Now devuelve la hora actual en la zona del reporte.
func (l *Ledger) Now() time.Time { return l.now().In(l.loc) }

// Location zona horaria de los cortes diarios.
func (l *Ledger) Location() *time.Location { return l.loc }

// CreateSale valida la entrada, bloquea la fila del producto, verifica stock, inserta la venta
// y descuenta el stock en una sola transacción. Cualquier fallo deja el estado intacto.
//
// Errores (*domain.SaleError):
//   - SaleErrInvalidInput       cantidad <= 0, descuento o precio negativos, total negativo.
//   - SaleErrNotFound           producto o cliente inexistente.
//   - SaleErrInsufficientStock  stock < cantidad (Available = stock actual).
//   - SaleErrPersistence        fallo de escritura o de commit (rollback completo).
func (l *Ledger) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if err := validateCreateInput(&in); err != nil {
		return nil, err
	}

	client, err := l.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		l.log.Error().Err(err).Str("client_id", in.ClientID).Msg("venta: consultar cliente")
		return nil, domain.NewPersistenceError("consultar el cliente", err)
	}
	if client == nil {
		return nil, domain.NewNotFoundError("cliente", in.ClientID)
	}

	now := l.now()
	var created *entity.Sale

	err = l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloquea la fila del producto: dos ventas concurrentes no pueden pasar ambas la verificación
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("producto", in.ProductID)
		}
		if product.Stock < in.Quantity {
			return domain.NewInsufficientStockError(product.ID, product.Stock)
		}

		unitPrice := product.Price.Round(moneyScale)
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		sale := &entity.Sale{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			ClientID:  client.ID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Discount:  in.Discount,
			Status:    in.Status,
			Date:      now,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if sale.CalculateTotal().IsNegative() {
			return domain.NewInvalidInputError("el descuento supera el importe de la venta")
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.Stock-in.Quantity); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		if se, ok := domain.AsSaleError(err); ok {
			l.log.Warn().
				Str("kind", string(se.Kind)).
				Str("product_id", in.ProductID).
				Str("client_id", in.ClientID).
				Int("quantity", in.Quantity).
				Msg(se.Message)
			return nil, se
		}
		l.log.Error().Err(err).Str("product_id", in.ProductID).Msg("venta: transacción revertida")
		return nil, domain.NewPersistenceError("registrar la venta", err)
	}

	l.log.Info().
		Str("sale_id", created.ID).
		Str("product_id", created.ProductID).
		Int("quantity", created.Quantity).
		Str("total", created.TotalAmount.StringFixed(2)).
		Msg("venta registrada")
	return created, nil
}

// moneyScale decimales de los importes persistidos.
const moneyScale = 2

func validateCreateInput(in *CreateSaleInput) error {
	if in.ProductID == "" || in.ClientID == "" {
		return domain.NewInvalidInputError("product_id y client_id son requeridos")
	}
	if in.Quantity <= 0 {
		return domain.NewInvalidInputError("la cantidad debe ser mayor que cero")
	}
	if in.Discount.IsNegative() {
		return domain.NewInvalidInputError("el descuento no puede ser negativo")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.NewInvalidInputError("el precio unitario no puede ser negativo")
	}
	// Mismos centavos que NUMERIC(14,2): el total se calcula sobre lo que se persiste
	in.Discount = in.Discount.Round(moneyScale)
	if in.UnitPrice != nil {
		rounded := in.UnitPrice.Round(moneyScale)
		in.UnitPrice = &rounded
	}
	switch in.Status {
	case "":
		in.Status = entity.SaleStatusCompleted
	case entity.SaleStatusCompleted, entity.SaleStatusPending:
	default:
		return domain.NewInvalidInputError("estado inicial inválido: " + in.Status)
	}
	return nil
}

// GetSale obtiene una venta por ID.
func (l *Ledger) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := l.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("consultar la venta", err)
	}
	if sale == nil {
		return nil, domain.NewNotFoundError("venta", id)
	}
	return sale, nil
}

// UpdateStatus aplica una transición de estado. Cancelar una venta devuelve las unidades al stock
// del producto en la misma transacción.
func (l *Ledger) UpdateStatus(ctx context.Context, id, status string) (*entity.Sale, error) {
	if !entity.ValidSaleStatus(status) {
		return nil, domain.NewInvalidInputError("estado inválido: " + status)
	}
	now := l.now()
	var updated *entity.Sale

	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NewNotFoundError("venta", id)
		}
		if !entity.CanTransition(sale.Status, status) {
			return domain.NewInvalidTransitionError(sale.Status, status)
		}
		if status == entity.SaleStatusCancelled {
			product, err := productRepo.GetForUpdate(ctx, sale.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				if err := productRepo.UpdateStock(ctx, product.ID, product.Stock+sale.Quantity); err != nil {
					return err
				}
			}
		}
		if err := saleRepo.UpdateStatus(ctx, sale.ID, status, now); err != nil {
			return err
		}
		sale.Status = status
		sale.UpdatedAt = now
		updated = sale
		return nil
	})
	if err != nil {
		if se, ok := domain.AsSaleError(err); ok {
			return nil, se
		}
		l.log.Error().Err(err).Str("sale_id", id).Msg("venta: cambio de estado revertido")
		return nil, domain.NewPersistenceError("actualizar el estado de la venta", err)
	}

	l.log.Info().Str("sale_id", id).Str("status", status).Msg("estado de venta actualizado")
	return updated, nil
}

// GetSalesByPeriod devuelve las ventas con fecha en [start, end] (nil = sin límite en ese extremo),
// de la más reciente a la más antigua.
func (l *Ledger) GetSalesByPeriod(ctx context.Context, start, end *time.Time) ([]*entity.Sale, error) {
	return l.list(ctx, repository.SaleFilter{From: start, To: end})
}

// GetSalesByClient devuelve las ventas de un cliente, de la más reciente a la más antigua.
func (l *Ledger) GetSalesByClient(ctx context.Context, clientID string) ([]*entity.Sale, error) {
	return l.list(ctx, repository.SaleFilter{ClientID: clientID})
}

// GetSalesByProduct devuelve las ventas de un producto, de la más reciente a la más antigua.
func (l *Ledger) GetSalesByProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	return l.list(ctx, repository.SaleFilter{ProductID: productID})
}

// RecentSales últimas `limit` ventas en cualquier estado.
func (l *Ledger) RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	return l.list(ctx, repository.SaleFilter{Limit: limit})
}

func (l *Ledger) list(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	list, err := l.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewPersistenceError("consultar ventas", err)
	}
	if list == nil {
		list = []*entity.Sale{}
	}
	return list, nil
}

// CalculateDailySales devuelve una entrada por día de los últimos `days` días calendario
// (hoy incluido) con el ingreso y número de ventas completadas, en orden cronológico.
// days <= 0 usa reporting.DefaultDailyDays.
func (l *Ledger) CalculateDailySales(ctx context.Context, days int) ([]reporting.DayTotal, error) {
	if days <= 0 {
		days = reporting.DefaultDailyDays
	}
	now := l.Now()
	start := reporting.DailyWindow(now, days, l.loc)

	completed, err := l.list(ctx, repository.SaleFilter{
		From:   &start,
		To:     &now,
		Status: entity.SaleStatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	return reporting.BucketDaily(completed, now, days, l.loc), nil
}

// PeriodTotals ingreso y número de ventas completadas en [start, end].
func (l *Ledger) PeriodTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	revenue, count, err := l.saleRepo.Totals(ctx, start, end)
	if err != nil {
		return decimal.Zero, 0, domain.NewPersistenceError("calcular totales del período", err)
	}
	return revenue, count, nil
}

// TopProducts productos con mayor ingreso (ventas completadas) en [start, end].
func (l *Ledger) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesResult, error) {
	list, err := l.saleRepo.TopProducts(ctx, start, end, limit)
	if err != nil {
		return nil, domain.NewPersistenceError("consultar productos más vendidos", err)
	}
	if list == nil {
		list = []repository.ProductSalesResult{}
	}
	return list, nil
}

// TopClients clientes con mayor ingreso (ventas completadas) en [start, end].
func (l *Ledger) TopClients(ctx context.Context, start, end time.Time, limit int) ([]repository.ClientSalesResult, error) {
	list, err := l.saleRepo.TopClients(ctx, start, end, limit)
	if err != nil {
		return nil, domain.NewPersistenceError("consultar mejores clientes", err)
	}
	if list == nil {
		list = []repository.ClientSalesResult{}
	}
	return list, nil
}
