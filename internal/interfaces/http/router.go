package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
	"github.com/fys/fabrica-pinceles-api/internal/application/auth"
	"github.com/fys/fabrica-pinceles-api/internal/application/fulfillment"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *inventory.CatalogUseCase
	StockUC     *inventory.StockUseCase
	ProduceUC   *inventory.ProduceUseCase
	FinishedUC  *inventory.FinishedUseCase
	OrderUC     *fulfillment.OrderUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de materias primas (protegido; seed y alta solo admin)
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/", catalogHandler.List)
	catalog.Get("/types", catalogHandler.ListTypes)
	catalog.Get("/types/:tipo/variants", catalogHandler.ListVariants)
	catalog.Post("/", RequireAdmin(), catalogHandler.Upsert)
	catalog.Post("/seed", RequireAdmin(), catalogHandler.Seed)

	// Libro de stock de materia prima (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Post("/entries", inventoryHandler.RegisterEntry)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/stock", inventoryHandler.ListStock)
	invGroup.Get("/stock/line", inventoryHandler.GetStock)
	invGroup.Put("/stock/minimo", inventoryHandler.UpdateMinimo)
	invGroup.Post("/stock/merge-duplicates", RequireAdmin(), inventoryHandler.MergeDuplicates)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Producción (protegido)
	production := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProduceUC)
	production.Post("/", productionHandler.Produce)
	production.Get("/", productionHandler.History)

	// Productos terminados (protegido)
	finished := protected.Group("/finished-goods")
	finishedHandler := NewFinishedHandler(deps.FinishedUC)
	finished.Get("/", finishedHandler.List)
	finished.Get("/line", finishedHandler.Get)
	finished.Post("/adjustments", finishedHandler.Adjust)

	// Pedidos y despachos (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id", orderHandler.Update)
	orders.Post("/:id/production", orderHandler.GenerateProduction)
	orders.Post("/:id/dispatch", orderHandler.Dispatch)
	orders.Get("/:id/dispatches", orderHandler.ListDispatches)
	protected.Get("/dispatches/:id/note", orderHandler.DispatchNote)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/alerts", dashboardHandler.Alerts)
}
