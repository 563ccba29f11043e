package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/warungpos/costing-api/internal/application/costing"
	"github.com/warungpos/costing-api/internal/application/ledger"
	"github.com/warungpos/costing-api/internal/application/recipe"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	LedgerUC     *ledger.UseCase
	RecipeUC     *recipe.UseCase
	RecipeCostUC *costing.RecipeCostUseCase
	VarianceUC   *costing.VarianceUseCase
	MenuUC       *costing.MenuEngineeringUseCase
	COGSUC       *costing.COGSUseCase
	JWTSecret    string
}

// Router registers the API routes. Everything under /api requires a valid
// Bearer token; writes to the ledger are additionally role-gated.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Stock ledger
	inv := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	inv.Post("/movements", RequireRole(RoleAdmin, RoleWarehouse), movementHandler.Create)
	inv.Get("/movements", movementHandler.List)
	inv.Get("/movements-summary", movementHandler.Summary)
	inv.Get("/movements/:id", movementHandler.GetByID)
	inv.Delete("/movements/:id", RequireRole(RoleAdmin), movementHandler.Delete)

	// Recipes (bill of materials)
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Get("/items/:itemId", recipeHandler.ListForItem)
	recipes.Post("/items/:itemId", RequireRole(RoleAdmin), recipeHandler.Replace)
	recipes.Post("/", RequireRole(RoleAdmin), recipeHandler.AddLine)
	recipes.Delete("/:id", RequireRole(RoleAdmin), recipeHandler.RemoveLine)

	// Costing and analytics
	cost := api.Group("/costing")
	costingHandler := NewCostingHandler(deps.RecipeCostUC, deps.VarianceUC, deps.MenuUC, deps.COGSUC)
	cost.Get("/recipes", costingHandler.RecipeCosts)
	cost.Post("/recipes/recalculate-all", RequireRole(RoleAdmin), costingHandler.RecalculateAll)
	cost.Post("/recipes/:itemId/recalculate", RequireRole(RoleAdmin), costingHandler.Recalculate)
	cost.Get("/variance", costingHandler.Variance)
	cost.Get("/menu-engineering", costingHandler.MenuEngineering)
	cost.Get("/cogs-summary", costingHandler.COGSSummary)
}
