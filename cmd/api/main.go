package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/warungpos/costing-api/internal/application/costing"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/application/recipe"
	"github.com/warungpos/costing-api/internal/infrastructure/postgres"
	httpRouter "github.com/warungpos/costing-api/internal/interfaces/http"
	"github.com/warungpos/costing-api/pkg/config"
	"github.com/warungpos/costing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	movementRepo := postgres.NewMovementRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	menuItemRepo := postgres.NewMenuItemRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	expenseRecorder := ledger.NewPurchaseExpenseRecorder(expenseRepo)
	ledgerUC := ledger.NewUseCase(txRunner, movementRepo, expenseRecorder, log)
	recipeUC := recipe.NewUseCase(txRunner, recipeRepo, menuItemRepo)
	recipeCostUC := costing.NewRecipeCostUseCase(menuItemRepo, recipeRepo)
	varianceUC := costing.NewVarianceUseCase(analyticsRepo)
	menuUC := costing.NewMenuEngineeringUseCase(menuItemRepo, recipeRepo, analyticsRepo)
	cogsUC := costing.NewCOGSUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		RecipeUC:     recipeUC,
		RecipeCostUC: recipeCostUC,
		VarianceUC:   varianceUC,
		MenuUC:       menuUC,
		COGSUC:       cogsUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
