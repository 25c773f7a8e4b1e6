package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MedicineUC    *usecase.MedicineUseCase
	StockUC       *inventory.StockUseCase
	ExpiryUC      *inventory.ExpiryUseCase
	TransactionUC *usecase.TransactionUseCase
	OrderUC       *usecase.OrderUseCase
	UserUC        *usecase.UserUseCase
	DashboardUC   *analytics.DashboardUseCase
	StockEvents   inventory.StockEventSubscriber // nil: /api/events/stock responde 503
	JWTSecret     string
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
	adminOnly := RequireRole(entity.RoleAdmin)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)

	// Catálogo y stock por lotes
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.MedicineUC)
	medicines.Post("/", adminOnly, medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Post("/:id/batches", RequireRole(entity.RoleAdmin, entity.RoleSupplier), stockHandler.ReceiveSupply)
	medicines.Get("/:id/batches", stockHandler.ListBatches)
	medicines.Get("/:id/stock", stockHandler.Stock)
	medicines.Post("/:id/sales", RequireRole(entity.RoleAdmin, entity.RoleRetailer), stockHandler.Sell)

	// Vencimientos y tablero
	invGroup := protected.Group("/inventory")
	expiryHandler := NewExpiryHandler(deps.ExpiryUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	invGroup.Get("/dashboard", dashboardHandler.GetSummary)
	invGroup.Get("/expiry-report", expiryHandler.Report)
	invGroup.Get("/expiry-report/pdf", adminOnly, expiryHandler.ReportPDF)

	// Transacciones (admin)
	txns := protected.Group("/transactions", adminOnly)
	txnHandler := NewTransactionHandler(deps.TransactionUC)
	txns.Get("/", txnHandler.List)
	txns.Get("/:id", txnHandler.GetByID)

	// Órdenes de compra: pending hasta que el administrador las aprueba o rechaza
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleRetailer, entity.RoleSupplier), orderHandler.Place)
	orders.Post("/:id/approve", adminOnly, orderHandler.Approve)
	orders.Post("/:id/reject", adminOnly, orderHandler.Reject)

	// Eventos de stock en vivo (SSE)
	eventsHandler := NewStockEventsHandler(deps.StockEvents)
	protected.Get("/events/stock", eventsHandler.Stream)
}
