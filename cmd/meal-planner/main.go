package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"meal-week-planner/internal/app"
	"meal-week-planner/internal/cleaner"
	"meal-week-planner/internal/config"
	"meal-week-planner/internal/database"
	"meal-week-planner/internal/food"
	"meal-week-planner/internal/grocery"
	"meal-week-planner/internal/importer"
	"meal-week-planner/internal/llm"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/recipe"
	"meal-week-planner/internal/shopping"
	"meal-week-planner/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	foodRepo := food.NewRepository(db.SQL)
	planRepo := plan.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	textGen := newTextGenerator(ctx, cfg)
	if c, ok := textGen.(llm.Closer); ok {
		defer c.Close()
	}

	var nameCleaner cleaner.NameCleaner = cleaner.Noop{}
	var recipeImporter *importer.Importer
	if textGen != nil {
		nameCleaner = cleaner.NewLLMCleaner(textGen, cfg.CleaningTimeout, metricsStore)
		recipeImporter = importer.NewImporter(textGen, recipeRepo, metricsStore)
	}

	collector := shopping.NewCollector(recipeRepo, cfg.PreferredLanguage != "en")
	shoppingService := shopping.NewService(collector, nameCleaner, shoppingRepo, planRepo)

	recipeStore, err := storage.NewRecipeStore(cfg.RecipeStoragePath)
	if err != nil {
		log.Fatalf("Failed to initialize file-based recipe store: %v", err)
	}

	application := app.NewApp(
		cfg,
		db,
		recipeRepo,
		foodRepo,
		planRepo,
		shoppingRepo,
		metricsStore,
		shoppingService,
		recipeImporter,
		recipeStore,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		count, err := application.SeedRecipes(ctx)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Loaded %d recipes into the catalog.\n", count)

	case "export":
		count, err := application.ExportRecipes(ctx)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Exported %d recipes to %s.\n", count, cfg.RecipeStoragePath)

	case "import":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner import <url>")
		}
		rec, err := application.ImportRecipe(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported '%s' (%d ingredients) as %s.\n", rec.Title, len(rec.Ingredients), rec.ID)

	case "add-food":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner add-food <file.json>")
		}
		saved, err := addQuickFood(ctx, application, os.Args[2])
		if err != nil {
			log.Fatalf("Adding quick food failed: %v", err)
		}
		fmt.Printf("Saved quick food '%s' as %s.\n", saved.Name, saved.ID)

	case "regenerate":
		regenCmd := flag.NewFlagSet("regenerate", flag.ExitOnError)
		weekFlag := regenCmd.String("week", "", "Week to rebuild (YYYY-MM-DD, current, or next)")
		regenCmd.Parse(os.Args[2:])

		wp := mustResolvePlan(ctx, application, *weekFlag)
		items, err := application.Shopping.RegenerateAndSave(ctx, wp.ID)
		if err != nil {
			log.Fatalf("Regeneration failed: %v", err)
		}
		printList(wp, items)

	case "list":
		listCmd := flag.NewFlagSet("list", flag.ExitOnError)
		weekFlag := listCmd.String("week", "", "Week to show (YYYY-MM-DD, current, or next)")
		listCmd.Parse(os.Args[2:])

		wp := mustResolvePlan(ctx, application, *weekFlag)
		items, err := application.ShoppingRepo.Load(ctx, wp.ID)
		if err != nil {
			log.Fatalf("Failed to load shopping list: %v", err)
		}
		if items == nil {
			items, err = application.Shopping.RegenerateAndSave(ctx, wp.ID)
			if err != nil {
				log.Fatalf("Failed to build shopping list: %v", err)
			}
		}
		printList(wp, items)

	case "check":
		checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
		idFlag := checkCmd.String("id", "", "Item id to toggle (e.g. shopping-ingredient-3)")
		weekFlag := checkCmd.String("week", "", "Week of the list (YYYY-MM-DD, current, or next)")
		checkCmd.Parse(os.Args[2:])
		if *idFlag == "" {
			log.Fatal("Usage: meal-planner check -id <itemID> [-week YYYY-MM-DD]")
		}

		wp := mustResolvePlan(ctx, application, *weekFlag)
		items, err := application.Shopping.Toggle(ctx, wp.ID, *idFlag)
		if err != nil {
			log.Fatalf("Toggle failed: %v", err)
		}
		printList(wp, items)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newTextGenerator picks an LLM backend from the configured keys. Returns nil
// when neither key is present.
func newTextGenerator(ctx context.Context, cfg *config.Config) llm.TextGenerator {
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return client
	}
	if cfg.GroqAPIKey != "" {
		return llm.NewGroqClient(cfg.GroqAPIKey)
	}
	return nil
}

// mustResolvePlan finds the week plan for the given -week flag value, or the
// current week when the flag is empty.
func mustResolvePlan(ctx context.Context, application *app.App, weekFlag string) *plan.WeekPlan {
	weekStart, err := plan.WeekStartFor(weekFlag, time.Now())
	if err != nil {
		log.Fatalf("Invalid -week value: %v", err)
	}

	wp, err := application.PlanRepo.GetByWeekStart(ctx, weekStart)
	if err != nil {
		log.Fatalf("Failed to load week plan: %v", err)
	}
	if wp == nil {
		log.Fatalf("No plan exists for the week of %s", weekStart.Format("2006-01-02"))
	}
	return wp
}

func addQuickFood(ctx context.Context, application *app.App, path string) (food.QuickFood, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return food.QuickFood{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var qf food.QuickFood
	if err := json.Unmarshal(data, &qf); err != nil {
		return food.QuickFood{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if qf.Name == "" {
		return food.QuickFood{}, fmt.Errorf("quick food in %s has no name", path)
	}

	return application.FoodRepo.Save(ctx, qf)
}

var categoryOrder = []grocery.Category{
	grocery.CategoryProduce,
	grocery.CategoryMeat,
	grocery.CategoryDairy,
	grocery.CategoryPantry,
	grocery.CategoryOther,
}

func printList(wp *plan.WeekPlan, items []shopping.ShoppingItem) {
	fmt.Printf("Shopping list for week of %s\n", wp.WeekStart.Format("2006-01-02"))
	if len(items) == 0 {
		fmt.Println("  (empty)")
		return
	}

	for _, cat := range categoryOrder {
		printed := false
		for _, item := range items {
			if item.Category != cat {
				continue
			}
			if !printed {
				fmt.Printf("\n%s:\n", cat)
				printed = true
			}
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Printf("  [%s] %s  (%s)\n", mark, item.Name, item.ID)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed               Bulk-load recipe JSON files into the catalog")
	fmt.Println("  export             Write catalog recipes out to the file store")
	fmt.Println("  import <url>       Import a recipe from a web page")
	fmt.Println("  add-food <file>    Add a quick food to the catalog from a JSON file")
	fmt.Println("  regenerate         Rebuild the shopping list for a week")
	fmt.Println("  list               Show a week's shopping list")
	fmt.Println("  check              Toggle an item's checked state")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
