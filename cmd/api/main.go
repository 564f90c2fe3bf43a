package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestion-comercial-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/gestion-comercial-api/internal/application/analytics"
	"github.com/jhoicas/gestion-comercial-api/internal/application/catalog"
	"github.com/jhoicas/gestion-comercial-api/internal/application/sales"
	"github.com/jhoicas/gestion-comercial-api/internal/application/stock"
	"github.com/jhoicas/gestion-comercial-api/internal/domain/repository"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestion-comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-comercial-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/gestion-comercial-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/gestion-comercial-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-comercial-api/pkg/config"
	"github.com/jhoicas/gestion-comercial-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores repositorios y transacción del driver elegido.
type stores struct {
	products repository.ProductRepository
	clients  repository.ClientRepository
	sales    repository.SaleRepository
	tx       sales.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	loc := cfg.Reporting.Location()
	ledger := sales.NewLedger(st.tx, st.products, st.clients, st.sales, sales.LedgerConfig{Location: loc}, log)

	// Documentos: comprobante PDF (Maroto) y exportación XLSX (excelize)
	documents := sales.NewDocumentsUseCase(
		ledger, st.products, st.clients,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		infraxlsx.NewExcelExporter(),
	)

	stockUC := stock.NewSummaryUseCase(st.products)
	alertUC := alerts.NewAlertUseCase(st.products, st.sales, cfg.Reporting.StalePendingDays, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(ledger, stockUC, alertUC, appanalytics.DashboardConfig{
		DailyDays: cfg.Reporting.DailyDays,
		TopN:      cfg.Reporting.DashboardTopN,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gestión Comercial API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledger,
		Documents:   documents,
		DashboardUC: dashboardUC,
		StockUC:     stockUC,
		AlertUC:     alertUC,
		ProductUC:   catalog.NewProductUseCase(st.products),
		ClientUC:    catalog.NewClientUseCase(st.clients),
		JWTSecret:   cfg.JWT.Secret,
		DailyDays:   cfg.Reporting.DailyDays,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (con migraciones opcionales) o el store en memoria con datos de demostración.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		store := memory.NewSeeded()
		return stores{
			products: store.Products(),
			clients:  store.Clients(),
			sales:    store.Sales(),
			tx:       store,
			close:    func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return stores{
		products: postgres.NewProductRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		sales:    postgres.NewSaleRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}
