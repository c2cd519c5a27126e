package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-week-planner/internal/app"
	"meal-week-planner/internal/cleaner"
	"meal-week-planner/internal/config"
	"meal-week-planner/internal/database"
	"meal-week-planner/internal/food"
	"meal-week-planner/internal/importer"
	"meal-week-planner/internal/llm"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/recipe"
	"meal-week-planner/internal/shopping"
	"meal-week-planner/internal/storage"
	"meal-week-planner/internal/telegram"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Telegram configuration incomplete: %v", err)
	}

	ctx := context.Background()

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

	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		textGen, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
	} else if cfg.GroqAPIKey != "" {
		textGen = llm.NewGroqClient(cfg.GroqAPIKey)
	} else {
		log.Println("No LLM key configured: name cleaning disabled, recipe import unavailable")
	}
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

	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
