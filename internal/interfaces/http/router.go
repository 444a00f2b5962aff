package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/analytics"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *ledger.CustomerUseCase
	OrderUC     *ledger.OrderUseCase
	PaymentUC   *ledger.PaymentUseCase
	ReceiptUC   *receipt.ReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Live        *projection.LiveStore
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (Bearer Token + sesión en vivo del propietario)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireLiveSession(deps.Live))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Live)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, deps.Live)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.Live)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Patch("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Catalog
	catalogHandler := NewCatalogHandler(deps.Live)
	protected.Get("/catalog", catalogHandler.List)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Live
	liveHandler := NewLiveHandler(deps.Live, deps.Logger)
	protected.Get("/live/events", liveHandler.Events)
}
