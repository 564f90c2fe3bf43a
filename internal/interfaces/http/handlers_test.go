package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/gestion-comercial-api/internal/application/analytics"
	"github.com/jhoicas/gestion-comercial-api/internal/application/catalog"
	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/application/stock"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/gestion-comercial-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-comercial-api/pkg/logger"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre el store en memoria con el catálogo de demostración.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewSeeded()
	now := func() time.Time { return time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC) }

	ledger := sales.NewLedger(store, store.Products(), store.Clients(), store.Sales(),
		sales.LedgerConfig{Location: time.UTC, Now: now}, logger.Nop())
	documents := sales.NewDocumentsUseCase(ledger, store.Products(), store.Clients(),
		pdf.NewMarotoPDFGenerator("Comercial Andina"), xlsx.NewExcelExporter())
	stockUC := stock.NewSummaryUseCase(store.Products())
	alertUC := alerts.NewAlertUseCase(store.Products(), store.Sales(), 7, now)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      ledger,
		Documents:   documents,
		DashboardUC: appanalytics.NewDashboardUseCase(ledger, stockUC, alertUC, appanalytics.DashboardConfig{}, logger.Nop()),
		StockUC:     stockUC,
		AlertUC:     alertUC,
		ProductUC:   catalog.NewProductUseCase(store.Products()),
		ClientUC:    catalog.NewClientUseCase(store.Clients()),
		JWTSecret:   testJWTSecret,
		DailyDays:   7,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSale(t *testing.T, app *fiber.App, body string) dto.SaleResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/sales", apphttp.RoleVendedor, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.SaleResponse](t, resp)
}

// ── Health / auth ─────────────────────────────────────────────────────────────

func TestHealth_Publico(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/health", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/sales", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStock(t *testing.T) {
	app := newAPI(t)

	sale := createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":3}`)
	assert.Equal(t, "55500", sale.TotalAmount.String())
	assert.Equal(t, "completed", sale.Status)

	resp := call(t, app, http.MethodGet, "/api/products/prod-cafe-500", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 37, product.Stock)
}

func TestCreateSale_StockInsuficiente_Retorna409ConDisponible(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/sales", apphttp.RoleVendedor,
		`{"product_id":"prod-panela-1k","client_id":"cli-tienda-esquina","quantity":9}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available)
	assert.Equal(t, 8, *body.Available)
	assert.Contains(t, body.Message, "disponible: 8")
}

func TestCreateSale_Validacion_Retorna400ConCampos(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/sales", apphttp.RoleVendedor,
		`{"product_id":"prod-cafe-500","quantity":0}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "quantity")
	assert.Contains(t, body.Fields, "client_id")
}

func TestCreateSale_DescuentoMayorQueTotal_Retorna400(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/sales", apphttp.RoleVendedor,
		`{"product_id":"prod-azucar-1k","client_id":"cli-tienda-esquina","quantity":1,"discount":"9999"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSale_ProductoInexistente_Retorna404(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/sales", apphttp.RoleVendedor,
		`{"product_id":"no-existe","client_id":"cli-tienda-esquina","quantity":1}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestListSales_FiltraPorClienteYPeriodo(t *testing.T) {
	app := newAPI(t)
	createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":1}`)
	createSale(t, app, `{"product_id":"prod-arroz-5k","client_id":"cli-minimercado-sol","quantity":2}`)

	resp := call(t, app, http.MethodGet, "/api/sales?client_id=cli-minimercado-sol", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byClient := decode[dto.SaleListResponse](t, resp)
	require.Equal(t, 1, byClient.Count)
	assert.Equal(t, "cli-minimercado-sol", byClient.Items[0].ClientID)

	resp = call(t, app, http.MethodGet, "/api/sales?start_date=2026-10-19&end_date=2026-10-19", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byPeriod := decode[dto.SaleListResponse](t, resp)
	assert.Equal(t, 2, byPeriod.Count)
	assert.Equal(t, "68300", byPeriod.TotalRevenue.String())

	resp = call(t, app, http.MethodGet, "/api/sales?start_date=2026-10-20", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	future := decode[dto.SaleListResponse](t, resp)
	assert.Equal(t, 0, future.Count)
	assert.NotNil(t, future.Items)
}

func TestListSales_FechaInvalida_Retorna400(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/sales?start_date=19/10/2026", apphttp.RoleVendedor, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDailySales_VentanaSolicitada(t *testing.T) {
	app := newAPI(t)
	createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":2}`)

	resp := call(t, app, http.MethodGet, "/api/sales/daily?days=3", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DailySalesResponse](t, resp)

	require.Len(t, out.Items, 3)
	assert.Equal(t, "2026-10-17", out.From)
	assert.Equal(t, "2026-10-19", out.To)
	assert.Equal(t, 1, out.Items[2].Count)
	assert.Equal(t, "37000", out.TotalRevenue.String())
}

func TestUpdateStatus_SoloAdmin(t *testing.T) {
	app := newAPI(t)
	sale := createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":4}`)

	resp := call(t, app, http.MethodPatch, "/api/sales/"+sale.ID+"/status", apphttp.RoleVendedor, `{"status":"cancelled"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, "/api/sales/"+sale.ID+"/status", apphttp.RoleAdmin, `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "cancelled", updated.Status)

	resp = call(t, app, http.MethodGet, "/api/products/prod-cafe-500", apphttp.RoleAdmin, "")
	product := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 40, product.Stock, "anular repone el stock")

	resp = call(t, app, http.MethodPatch, "/api/sales/"+sale.ID+"/status", apphttp.RoleAdmin, `{"status":"completed"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_TRANSITION", body.Code)
}

func TestGetSale_NoExiste_Retorna404(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/sales/no-existe", apphttp.RoleVendedor, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReceipt_DevuelvePDF(t *testing.T) {
	app := newAPI(t)
	sale := createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":1}`)

	resp := call(t, app, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", apphttp.RoleVendedor, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "venta_"+sale.ID[:8]+".pdf")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExport_DevuelveXLSX(t *testing.T) {
	app := newAPI(t)
	createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":1}`)

	resp := call(t, app, http.MethodGet, "/api/sales/export?start_date=2026-10-01", apphttp.RoleVendedor, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ventas_20261019.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"), "un xlsx es un zip")
}

// ── Dashboard / stock / alerts ────────────────────────────────────────────────

func TestDashboardPage_CombinaProveedores(t *testing.T) {
	app := newAPI(t)
	createSale(t, app, `{"product_id":"prod-cafe-500","client_id":"cli-tienda-esquina","quantity":2}`)

	resp := call(t, app, http.MethodGet, "/api/dashboard", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.DashboardPageDTO](t, resp)

	assert.Empty(t, page.Notice)
	assert.Equal(t, 1, page.DashboardData.TodayCount)
	assert.Len(t, page.DashboardData.DailySales, 7)
	assert.Equal(t, 5, page.StockSummary.TotalProducts)
	assert.GreaterOrEqual(t, page.StockSummary.OutOfStockCount, 1)
	assert.LessOrEqual(t, len(page.Alerts), 5)
	assert.Equal(t, len(page.Alerts), page.AlertsSummary[alerts.SummaryTotalKey])
}

func TestDashboardSummary(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/dashboard/summary", apphttp.RoleAdmin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode[dto.DashboardDataDTO](t, resp)
	assert.Equal(t, "Octubre 2026", data.DateLabel)
	assert.NotNil(t, data.TopProducts)
}

func TestStockSummary_IncluyeAgotados(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/stock/summary", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockSummaryDTO](t, resp)

	assert.Equal(t, 1, out.OutOfStockCount)
	require.Len(t, out.OutOfStock, 1)
	assert.Equal(t, "prod-aceite-1l", out.OutOfStock[0].ProductID)
	assert.Equal(t, 1, out.LowStockCount)
}

func TestAlerts_LimitYOrden(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/alerts?limit=1", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.AlertDTO](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "critical", list[0].Severity)

	resp = call(t, app, http.MethodGet, "/api/alerts/summary", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[map[string]int](t, resp)
	assert.Equal(t, 1, summary["out_of_stock"])
	assert.Equal(t, 1, summary["low_stock"])
	assert.Equal(t, 0, summary["stale_pending_sale"])
	assert.Equal(t, 2, summary["total"])
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func TestProducts_CrearSoloAdminYDuplicado(t *testing.T) {
	app := newAPI(t)
	body := `{"sku":"SAL-500","name":"Sal 500g","price":"1900","stock":30,"reorder_point":5}`

	resp := call(t, app, http.MethodPost, "/api/products", apphttp.RoleVendedor, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/products", apphttp.RoleAdmin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "in_stock", created.StockStatus)

	resp = call(t, app, http.MethodPost, "/api/products", apphttp.RoleAdmin, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProducts_ListaPaginada(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/products?limit=2", apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)
}

func TestClients_CrearYConsultar(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/clients", apphttp.RoleVendedor,
		`{"name":"Droguería Central","tax_id":"800555111-2","email":"no-es-email"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	bad := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "email", bad.Fields["email"])

	resp = call(t, app, http.MethodPost, "/api/clients", apphttp.RoleVendedor,
		`{"name":"Droguería Central","tax_id":"800555111-2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ClientResponse](t, resp)

	resp = call(t, app, http.MethodGet, "/api/clients/"+created.ID, apphttp.RoleVendedor, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ClientResponse](t, resp)
	assert.Equal(t, "Droguería Central", got.Name)
}
