package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath      string
	RecipeStoragePath string

	// LLM Config. Both keys are optional: with neither set the name-cleaning
	// adapter runs in its degraded pass-through mode and the recipe importer
	// is unavailable.
	GeminiAPIKey string
	GroqAPIKey   string

	CleaningTimeout   time.Duration
	PreferredLanguage string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
	Port                   string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/meal-week-planner.db"
	}

	recipeStoragePath := os.Getenv("RECIPE_STORAGE_PATH")
	if recipeStoragePath == "" {
		recipeStoragePath = "data/recipes"
	}

	cleaningTimeout := 30 * time.Second
	if s := os.Getenv("CLEANING_TIMEOUT_SECONDS"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("CLEANING_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		cleaningTimeout = time.Duration(secs) * time.Second
	}

	lang := os.Getenv("PREFERRED_LANGUAGE")
	if lang == "" {
		lang = "en"
	}

	var allowedIDs []int64
	if s := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); s != "" {
		for _, part := range strings.Split(s, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if s := os.Getenv("ADMIN_TELEGRAM_ID"); s != "" {
		fmt.Sscanf(s, "%d", &adminID)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DatabasePath:           dbPath,
		RecipeStoragePath:      recipeStoragePath,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:             os.Getenv("GROQ_API_KEY"),
		CleaningTimeout:        cleaningTimeout,
		PreferredLanguage:      lang,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
		Port:                   port,
	}, nil
}

// RequireTelegram validates the fields the bot entrypoint depends on.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}
