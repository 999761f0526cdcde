package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Reciclaje-api/internal/application/analytics"
	"github.com/jhoicas/Reciclaje-api/internal/application/entry"
	"github.com/jhoicas/Reciclaje-api/internal/application/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EntryUC     *entry.UseCase
	AdjustUC    *inventory.AdjustUseCase
	LocationUC  *usecase.LocationUseCase
	MaterialUC  *usecase.MaterialUseCase
	PartyUC     *usecase.PartyUseCase
	StaffUC     *usecase.StaffUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
//
// Permisos: operador registra entradas y consulta; supervisor además anula entradas,
// ajusta inventario y gestiona personal; admin gestiona el directorio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	anyRole := RequireRole(RoleAdmin, RoleSupervisor, RoleOperator)
	supervisor := RequireRole(RoleAdmin, RoleSupervisor)
	admin := RequireRole(RoleAdmin)

	// Entradas y salidas de material
	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/preview", anyRole, entryHandler.Preview)
	entries.Post("/", anyRole, entryHandler.Submit)
	entries.Get("/", anyRole, entryHandler.List)
	entries.Get("/:id", anyRole, entryHandler.GetByID)
	entries.Delete("/:id", supervisor, entryHandler.Delete)

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC)
	invGroup.Post("/adjustments", supervisor, inventoryHandler.Adjust)
	invGroup.Get("/adjustments", anyRole, inventoryHandler.ListAdjustments)
	invGroup.Get("/records", anyRole, inventoryHandler.ListRecords)

	// Ubicaciones
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", admin, locationHandler.Create)
	locations.Get("/", anyRole, locationHandler.List)
	locations.Get("/:id", anyRole, locationHandler.GetByID)
	locations.Put("/:id", admin, locationHandler.Update)
	locations.Delete("/:id", admin, locationHandler.Delete)

	// Materiales
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", admin, materialHandler.Create)
	materials.Get("/", anyRole, materialHandler.List)
	materials.Get("/:id", anyRole, materialHandler.GetByID)

	// Terceros y agentes
	partyHandler := NewPartyHandler(deps.PartyUC)
	parties := api.Group("/parties")
	parties.Post("/", admin, partyHandler.Create)
	parties.Get("/", anyRole, partyHandler.List)
	parties.Get("/:id", anyRole, partyHandler.GetByID)
	api.Get("/agents", anyRole, partyHandler.ListAgents)

	// Tablero
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", anyRole, dashboardHandler.GetSummary)
	dashboard.Get("/period", anyRole, dashboardHandler.GetPeriod)

	// Personal
	staff := api.Group("/staff")
	staffHandler := NewStaffHandler(deps.StaffUC)
	staff.Post("/", supervisor, staffHandler.Create)
	staff.Get("/", anyRole, staffHandler.List)
	staff.Put("/:id", supervisor, staffHandler.Update)
}
