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
	"github.com/jhoicas/Reciclaje-api/internal/application/analytics"
	"github.com/jhoicas/Reciclaje-api/internal/application/entry"
	"github.com/jhoicas/Reciclaje-api/internal/application/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/application/ports"
	"github.com/jhoicas/Reciclaje-api/internal/application/usecase"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/memory"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/migrations"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Reciclaje-api/internal/interfaces/http"
	"github.com/jhoicas/Reciclaje-api/pkg/config"
	"github.com/jhoicas/Reciclaje-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repos puertos de persistencia que usan los casos de uso, sea cual sea el driver.
type repos struct {
	tx          ports.TxRunner
	entries     repository.EntryRepository
	allocations repository.AllocationRepository
	records     repository.InventoryRecordRepository
	adjustments repository.InventoryAdjustmentRepository
	locations   repository.LocationRepository
	materials   repository.MaterialRepository
	parties     repository.PartyRepository
	staff       repository.StaffRepository
	dashboard   repository.DashboardRepository
	ping        func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var r repos
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		r = repos{
			tx:          store,
			entries:     store.Entries(),
			allocations: store.Allocations(),
			records:     store.Records(),
			adjustments: store.Adjustments(),
			locations:   store.Locations(),
			materials:   store.Materials(),
			parties:     store.Parties(),
			staff:       store.Staff(),
			dashboard:   store.Dashboard(),
			ping:        func(context.Context) error { return nil },
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := migrations.Up(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		r = repos{
			tx:          postgres.NewTxRunner(pool),
			entries:     postgres.NewEntryRepository(pool),
			allocations: postgres.NewAllocationRepository(pool),
			records:     postgres.NewInventoryRecordRepository(pool),
			adjustments: postgres.NewInventoryAdjustmentRepository(pool),
			locations:   postgres.NewLocationRepository(pool),
			materials:   postgres.NewMaterialRepository(pool),
			parties:     postgres.NewPartyRepository(pool),
			staff:       postgres.NewStaffRepository(pool),
			dashboard:   postgres.NewDashboardRepository(pool),
			ping:        pool.Ping,
		}
	}

	adjustUC := inventory.NewAdjustUseCase(r.tx, r.records, r.adjustments, r.locations, r.materials, log.Component("inventory"))
	entryUC := entry.NewUseCase(entry.Deps{
		TxRunner:    r.tx,
		Entries:     r.entries,
		Allocations: r.allocations,
		Locations:   r.locations,
		Materials:   r.materials,
		Parties:     r.parties,
		Staff:       r.staff,
		Inventory:   adjustUC,
		Log:         log.Component("entries"),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Reciclaje API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := r.ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EntryUC:     entryUC,
		AdjustUC:    adjustUC,
		LocationUC:  usecase.NewLocationUseCase(r.locations),
		MaterialUC:  usecase.NewMaterialUseCase(r.materials),
		PartyUC:     usecase.NewPartyUseCase(r.parties),
		StaffUC:     usecase.NewStaffUseCase(r.staff),
		DashboardUC: analytics.NewDashboardUseCase(r.dashboard),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
