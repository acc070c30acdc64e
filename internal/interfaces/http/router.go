package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	BranchUC     *usecase.BranchUseCase
	IngredientUC *usecase.IngredientUseCase
	ProductUC    *usecase.ProductUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	InventoryUC  *inventory.UseCase
	SaleUC       *sales.UseCase
	CartUC       *sales.CartUseCase
	ReportUC     *usecase.ReportUseCase
	Cookie       config.CookieConfig
	JWT          config.JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	staff := []string{entity.RoleAdmin, entity.RoleWorker}

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CartUC, deps.Cookie, deps.JWT)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", authHandler.Verify)
	authGroup.Post("/refresh-token", authHandler.Refresh)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Perfil del usuario autenticado
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me", authHandler.UpdateMe)

	// Branches: lectura para todo usuario autenticado, escritura solo admin
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", RequireRole(entity.RoleAdmin), branchHandler.Create)
	branches.Put("/:id", RequireRole(entity.RoleAdmin), branchHandler.Update)
	branches.Delete("/:id", RequireRole(entity.RoleAdmin), branchHandler.Delete)

	// Products: lectura para todos (el menú lo ven también los clientes),
	// escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Put("/:id/recipe", RequireRole(entity.RoleAdmin), productHandler.UpdateRecipe)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Ingredients (staff)
	ingredients := protected.Group("/ingredients", RequireRole(staff...))
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Get("/", ingredientHandler.ListByBranch)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Put("/:id/stock", ingredientHandler.UpdateStock)
	ingredients.Delete("/:id", ingredientHandler.Delete)

	// Employees (solo admin)
	employees := protected.Group("/employees", RequireRole(entity.RoleAdmin))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.ListByBranch)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Inventario diario (staff)
	inventories := protected.Group("/inventories", RequireRole(staff...))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventories.Post("/", inventoryHandler.Open)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/current", inventoryHandler.Current)
	inventories.Get("/by-date", inventoryHandler.ByDate)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Put("/:id", inventoryHandler.Update)
	inventories.Post("/:id/close", inventoryHandler.Close)
	inventories.Get("/:id/pdf", inventoryHandler.ClosingPDF)
	inventories.Post("/:id/ingredients/:ingredientId/movements", inventoryHandler.AddMovement)
	inventories.Delete("/:id/ingredients/:ingredientId/movements/:index", inventoryHandler.RemoveMovement)

	// Ventas (staff)
	salesGroup := protected.Group("/sales", RequireRole(staff...))
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/quote", saleHandler.Quote)
	salesGroup.Post("/", saleHandler.Register)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/status", saleHandler.AdvanceStatus)
	salesGroup.Get("/:id/pdf", saleHandler.ReceiptPDF)

	// Carrito (rol client)
	cart := protected.Group("/cart", RequireRole(entity.RoleClient))
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:productId", cartHandler.SetQuantity)
	cart.Delete("/items/:productId", cartHandler.Remove)
	cart.Delete("/", cartHandler.Clear)

	// Reportes (solo admin)
	reports := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales-total", reportHandler.SalesTotal)
	reports.Get("/weekly-profits", reportHandler.WeeklyProfits)
	reports.Get("/inventory-stats", reportHandler.InventoryStats)
}
