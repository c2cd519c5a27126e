package app

import (
	"context"
	"fmt"
	"log"

	"meal-week-planner/internal/config"
	"meal-week-planner/internal/database"
	"meal-week-planner/internal/food"
	"meal-week-planner/internal/importer"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/recipe"
	"meal-week-planner/internal/shopping"
	"meal-week-planner/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	db  *database.DB

	RecipeRepo   *recipe.Repository
	FoodRepo     *food.Repository
	PlanRepo     *plan.Repository
	ShoppingRepo *shopping.Repository
	MetricsStore *metrics.Store
	Shopping     *shopping.Service
	Importer     *importer.Importer // nil when no LLM backend is configured
	RecipeStore  *storage.RecipeStore
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	db *database.DB,
	recipeRepo *recipe.Repository,
	foodRepo *food.Repository,
	planRepo *plan.Repository,
	shoppingRepo *shopping.Repository,
	metricsStore *metrics.Store,
	shoppingService *shopping.Service,
	recipeImporter *importer.Importer,
	recipeStore *storage.RecipeStore,
) *App {
	return &App{
		cfg:          cfg,
		db:           db,
		RecipeRepo:   recipeRepo,
		FoodRepo:     foodRepo,
		PlanRepo:     planRepo,
		ShoppingRepo: shoppingRepo,
		MetricsStore: metricsStore,
		Shopping:     shoppingService,
		Importer:     recipeImporter,
		RecipeStore:  recipeStore,
	}
}

// SaveWeekPlan persists the plan and then refreshes its shopping list in the
// background. The save never waits on the cleaning step; until the refresh
// lands, the persisted list is the previous generation's.
func (a *App) SaveWeekPlan(ctx context.Context, wp *plan.WeekPlan) error {
	if err := a.PlanRepo.Save(ctx, wp); err != nil {
		return fmt.Errorf("failed to save week plan: %w", err)
	}
	a.Shopping.TriggerRegeneration(wp.ID)
	return nil
}

// ImportRecipe clips a recipe from a URL into the catalog.
func (a *App) ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	if a.Importer == nil {
		return nil, fmt.Errorf("recipe import requires GEMINI_API_KEY or GROQ_API_KEY to be set")
	}
	return a.Importer.ImportURL(ctx, url)
}

// SeedRecipes bulk-loads recipe JSON files from the file store into the
// catalog. Returns the number of recipes loaded.
func (a *App) SeedRecipes(ctx context.Context) (int, error) {
	recipes, err := a.RecipeStore.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list recipes from file storage: %w", err)
	}

	count := 0
	for _, rec := range recipes {
		if rec.ID == "" {
			log.Printf("Skipping recipe file without an id (title %q)", rec.Title)
			continue
		}
		if err := a.RecipeRepo.Save(ctx, rec); err != nil {
			log.Printf("Failed to save recipe '%s' to catalog: %v", rec.Title, err)
			continue
		}
		count++
	}
	return count, nil
}

// ExportRecipes writes every catalog recipe out to the file store as JSON.
// Returns the number of recipes written.
func (a *App) ExportRecipes(ctx context.Context) (int, error) {
	recipes, err := a.RecipeRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog recipes: %w", err)
	}

	count := 0
	for _, rec := range recipes {
		if err := a.RecipeStore.Save(rec); err != nil {
			log.Printf("Failed to export recipe '%s': %v", rec.Title, err)
			continue
		}
		count++
	}
	return count, nil
}
