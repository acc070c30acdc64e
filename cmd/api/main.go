package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokenStore := redisstore.NewTokenStore(redisClient)
	cartStore := redisstore.NewCartStore(redisClient)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, tokenStore, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		AccessMinutes: cfg.JWT.AccessMinutes,
		RefreshHours:  cfg.JWT.RefreshHours,
		Issuer:        cfg.JWT.Issuer,
	}, log)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	ingredientUC := usecase.NewIngredientUseCase(ingredientRepo, branchRepo)
	productUC := usecase.NewProductUseCase(productRepo, branchRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, branchRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, branchRepo)
	inventoryUC := inventory.NewUseCase(invRepo, branchRepo, ingredientRepo, txRunner, pdfGenerator, log)
	saleUC := sales.NewUseCase(saleRepo, branchRepo, productRepo, pdfGenerator, log)
	cartUC := sales.NewCartUseCase(cartStore, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		BranchUC:     branchUC,
		IngredientUC: ingredientUC,
		ProductUC:    productUC,
		EmployeeUC:   employeeUC,
		InventoryUC:  inventoryUC,
		SaleUC:       saleUC,
		CartUC:       cartUC,
		ReportUC:     reportUC,
		Cookie:       cfg.Cookie,
		JWT:          cfg.JWT,
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
