package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meal-week-planner/internal/recipe"
)

// RecipeStore provides file-based storage for recipes. It backs the CLI
// seed command (bulk-loading recipe JSON into the catalog) and exports.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

func (s *RecipeStore) path(recipeID string) string {
	return filepath.Join(s.basePath, recipeID+".json")
}

// Save stores a recipe to a file named after its ID.
func (s *RecipeStore) Save(rec recipe.Recipe) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(s.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a recipe from its file.
func (s *RecipeStore) Load(recipeID string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}

// Exists checks if a recipe file exists.
func (s *RecipeStore) Exists(recipeID string) bool {
	_, err := os.Stat(s.path(recipeID))
	return !os.IsNotExist(err)
}

// ListAll reads every recipe JSON file in the store.
func (s *RecipeStore) ListAll() ([]recipe.Recipe, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var recipes []recipe.Recipe
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		rec, err := s.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}
