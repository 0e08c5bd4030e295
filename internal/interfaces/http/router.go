package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiranapos/kirana-api/internal/application/auth"
	"github.com/kiranapos/kirana-api/internal/application/billing"
	"github.com/kiranapos/kirana-api/internal/application/inventory"
	applledger "github.com/kiranapos/kirana-api/internal/application/ledger"
	"github.com/kiranapos/kirana-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	AdjustStock *inventory.AdjustStockUseCase
	CreateBill  *billing.CreateBillUseCase
	CancelBill  *billing.CancelBillUseCase
	LedgerUC    *applledger.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.AdjustStock)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/stock-adjustments", productHandler.AdjustStock)

	// Customers and their credit ledger
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/payments", ledgerHandler.RecordPayment)
	customers.Post("/:id/advances", ledgerHandler.RecordAdvance)
	customers.Get("/:id/ledger", ledgerHandler.History)
	customers.Get("/:id/balance", ledgerHandler.Balance)

	// Bills
	bills := protected.Group("/bills")
	billingHandler := NewBillingHandler(deps.CreateBill, deps.CancelBill)
	bills.Post("/", billingHandler.Create)
	bills.Get("/", billingHandler.List)
	bills.Get("/:id", billingHandler.GetByID)
	bills.Post("/:id/cancel", billingHandler.Cancel)
}
