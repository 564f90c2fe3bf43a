// Package analytics contiene los casos de uso del dashboard: KPIs de ventas y la vista
// principal que combina ventas, alertas y stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/entity"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/reporting"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
	"github.com/jhoicas/gestion-comercial-api/pkg/logger"
)

const (
	defaultTopN         = 5 // productos y clientes en los rankings del dashboard
	dashboardAlerts     = 5 // alertas en la vista principal
	dashboardRecentSale = 5 // últimas ventas en el widget

	// DegradedNotice aviso mostrado cuando algún proveedor falla.
	DegradedNotice = "No se pudieron cargar los datos del dashboard. Intente nuevamente más tarde."
)

// SalesReader consultas del libro de ventas que usa el dashboard.
type SalesReader interface {
	Now() time.Time
	Location() *time.Location
	CalculateDailySales(ctx context.Context, days int) ([]reporting.DayTotal, error)
	PeriodTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesResult, error)
	TopClients(ctx context.Context, start, end time.Time, limit int) ([]repository.ClientSalesResult, error)
	RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
}

// StockProvider resumen de stock.
type StockProvider interface {
	GetStockSummary(ctx context.Context) (dto.StockSummaryDTO, error)
}

// AlertProvider alertas vigentes y su resumen por categoría.
type AlertProvider interface {
	GetAllAlerts(ctx context.Context) ([]dto.AlertDTO, error)
	GetAlertsSummary(ctx context.Context) (dto.AlertsSummaryDTO, error)
}

// DashboardConfig parámetros del dashboard.
type DashboardConfig struct {
	DailyDays int // ventana de ventas diarias (<= 0 = reporting.DefaultDailyDays)
	TopN      int // tamaño de los rankings (<= 0 = 5)
}

// DashboardUseCase genera el resumen de ventas y la vista principal del dashboard.
//
// Fuentes de datos: libro de ventas, proveedor de stock y proveedor de alertas (solo lectura).
type DashboardUseCase struct {
	sales  SalesReader
	stock  StockProvider
	alerts AlertProvider
	cfg    DashboardConfig
	log    *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	salesReader SalesReader,
	stockProvider StockProvider,
	alertProvider AlertProvider,
	cfg DashboardConfig,
	log *logger.Logger,
) *DashboardUseCase {
	if cfg.DailyDays <= 0 {
		cfg.DailyDays = reporting.DefaultDailyDays
	}
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		sales:  salesReader,
		stock:  stockProvider,
		alerts: alertProvider,
		cfg:    cfg,
		log:    log,
	}
}

// GetDashboardData construye el DashboardDataDTO.
//
// Cinco consultas en paralelo:
//  1. CalculateDailySales(ventana) → DailySales + PeriodRevenue/Count
//  2. PeriodTotals(hoy)            → TodayRevenue/Count
//  3. PeriodTotals(mes)            → MonthRevenue/Count + AverageTicket
//  4. TopProducts/TopClients(mes)  → rankings
//  5. RecentSales(5)               → RecentSales
func (uc *DashboardUseCase) GetDashboardData(ctx context.Context) (*dto.DashboardDataDTO, error) {
	now := uc.sales.Now()
	loc := uc.sales.Location()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: 00:00 – ahora
	todayStart := reporting.StartOfDay(now, loc)
	// Mes en curso: día 1 a las 00:00 – ahora
	monthStart := time.Date(todayStart.Year(), todayStart.Month(), 1, 0, 0, 0, 0, loc)

	// ── Goroutines para paralelizar las consultas ──────────────────────────────
	type dailyResult struct {
		days []reporting.DayTotal
		err  error
	}
	type totalsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type rankingResult struct {
		products []repository.ProductSalesResult
		clients  []repository.ClientSalesResult
		err      error
	}
	type recentResult struct {
		sales []*entity.Sale
		err   error
	}

	dailyCh := make(chan dailyResult, 1)
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	rankCh := make(chan rankingResult, 1)
	recentCh := make(chan recentResult, 1)

	goSafe(func(err error) { dailyCh <- dailyResult{err: err} }, func() {
		days, err := uc.sales.CalculateDailySales(ctx, uc.cfg.DailyDays)
		dailyCh <- dailyResult{days, err}
	})
	goSafe(func(err error) { todayCh <- totalsResult{err: err} }, func() {
		rev, n, err := uc.sales.PeriodTotals(ctx, todayStart, now)
		todayCh <- totalsResult{rev, n, err}
	})
	goSafe(func(err error) { monthCh <- totalsResult{err: err} }, func() {
		rev, n, err := uc.sales.PeriodTotals(ctx, monthStart, now)
		monthCh <- totalsResult{rev, n, err}
	})
	goSafe(func(err error) { rankCh <- rankingResult{err: err} }, func() {
		products, err := uc.sales.TopProducts(ctx, monthStart, now, uc.cfg.TopN)
		if err != nil {
			rankCh <- rankingResult{err: err}
			return
		}
		clients, err := uc.sales.TopClients(ctx, monthStart, now, uc.cfg.TopN)
		rankCh <- rankingResult{products, clients, err}
	})
	goSafe(func(err error) { recentCh <- recentResult{err: err} }, func() {
		list, err := uc.sales.RecentSales(ctx, dashboardRecentSale)
		recentCh <- recentResult{list, err}
	})

	daily := <-dailyCh
	today := <-todayCh
	month := <-monthCh
	rank := <-rankCh
	recent := <-recentCh

	if daily.err != nil {
		return nil, fmt.Errorf("dashboard: ventas diarias: %w", daily.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if rank.err != nil {
		return nil, fmt.Errorf("dashboard: rankings: %w", rank.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: últimas ventas: %w", recent.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := dto.EmptyDashboardData()
	out.DailySales = sales.ToDailySales(daily.days)
	periodRevenue, periodCount := reporting.SumTotals(daily.days)
	out.PeriodRevenue = periodRevenue.Round(2)
	out.PeriodCount = periodCount
	out.TodayRevenue = today.revenue.Round(2)
	out.TodayCount = today.count
	out.MonthRevenue = month.revenue.Round(2)
	out.MonthCount = month.count
	if month.count > 0 {
		out.AverageTicket = month.revenue.Div(decimal.NewFromInt(int64(month.count))).Round(2)
	}
	for _, p := range rank.products {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			SKU:          p.SKU,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue.Round(2),
			SalesCount:   p.SalesCount,
		})
	}
	for _, c := range rank.clients {
		out.TopClients = append(out.TopClients, dto.TopClientDTO{
			ClientID:   c.ClientID,
			ClientName: c.ClientName,
			Revenue:    c.Revenue.Round(2),
			SalesCount: c.SalesCount,
		})
	}
	for _, s := range recent.sales {
		out.RecentSales = append(out.RecentSales, sales.ToSaleResponse(s))
	}
	out.DateLabel = monthLabel(now)
	return &out, nil
}

// GetDashboardPage arma la vista principal: datos de ventas, primeras alertas, resumen de
// alertas y resumen de stock. Los cuatro proveedores corren en paralelo.
// Nunca devuelve error: si cualquiera falla (o entra en pánico) todos los valores vuelven
// vacíos y Notice explica el motivo.
func (uc *DashboardUseCase) GetDashboardPage(ctx context.Context) dto.DashboardPageDTO {
	type dataResult struct {
		data *dto.DashboardDataDTO
		err  error
	}
	type alertsResult struct {
		list []dto.AlertDTO
		err  error
	}
	type summaryResult struct {
		summary dto.AlertsSummaryDTO
		err     error
	}
	type stockResult struct {
		summary dto.StockSummaryDTO
		err     error
	}

	dataCh := make(chan dataResult, 1)
	alertsCh := make(chan alertsResult, 1)
	summaryCh := make(chan summaryResult, 1)
	stockCh := make(chan stockResult, 1)

	goSafe(func(err error) { dataCh <- dataResult{err: err} }, func() {
		data, err := uc.GetDashboardData(ctx)
		dataCh <- dataResult{data, err}
	})
	goSafe(func(err error) { alertsCh <- alertsResult{err: err} }, func() {
		list, err := uc.alerts.GetAllAlerts(ctx)
		alertsCh <- alertsResult{list, err}
	})
	goSafe(func(err error) { summaryCh <- summaryResult{err: err} }, func() {
		summary, err := uc.alerts.GetAlertsSummary(ctx)
		summaryCh <- summaryResult{summary, err}
	})
	goSafe(func(err error) { stockCh <- stockResult{err: err} }, func() {
		summary, err := uc.stock.GetStockSummary(ctx)
		stockCh <- stockResult{summary, err}
	})

	data := <-dataCh
	alertList := <-alertsCh
	summary := <-summaryCh
	stockSummary := <-stockCh

	failures := map[string]error{
		"ventas":          data.err,
		"alertas":         alertList.err,
		"resumen_alertas": summary.err,
		"stock":           stockSummary.err,
	}
	failed := false
	for source, err := range failures {
		if err != nil {
			failed = true
			uc.log.Error().Err(err).Str("source", source).Msg("dashboard: proveedor falló, se devuelve vista vacía")
		}
	}
	if failed {
		return EmptyPage(DegradedNotice)
	}

	first := alertList.list
	if len(first) > dashboardAlerts {
		first = first[:dashboardAlerts]
	}
	if first == nil {
		first = []dto.AlertDTO{}
	}
	return dto.DashboardPageDTO{
		DashboardData: *data.data,
		Alerts:        first,
		AlertsSummary: summary.summary,
		StockSummary:  stockSummary.summary,
	}
}

// EmptyPage vista principal con todos los valores vacíos.
func EmptyPage(notice string) dto.DashboardPageDTO {
	return dto.DashboardPageDTO{
		DashboardData: dto.EmptyDashboardData(),
		Alerts:        []dto.AlertDTO{},
		AlertsSummary: alerts.EmptySummary(),
		StockSummary:  dto.EmptyStockSummary(),
		Notice:        notice,
	}
}

// goSafe ejecuta fn en una goroutine; un pánico se entrega a onPanic como error.
func goSafe(onPanic func(error), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				onPanic(fmt.Errorf("panic: %v", r))
			}
		}()
		fn()
	}()
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
