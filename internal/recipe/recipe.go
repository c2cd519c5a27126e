package recipe

import (
	"context"

	"meal-week-planner/internal/ingredient"
)

// Recipe is a stored recipe. Ingredients are immutable once the recipe is
// saved; plans reference recipes by ID and re-resolve the ingredient list at
// aggregation time.
type Recipe struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Ingredients []ingredient.Ingredient `json:"ingredients"`

	// TranslatedIngredients, when present, is parallel to Ingredients and
	// preferred by the collector for users with a non-default language.
	TranslatedIngredients []ingredient.Ingredient `json:"translated_ingredients,omitempty"`

	Instructions []string `json:"instructions,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	Servings     string   `json:"servings,omitempty"`
	Calories     int      `json:"calories,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// Catalog resolves recipe references from a meal plan. A nil recipe with a
// nil error means the reference is dangling (recipe deleted after planning);
// callers skip it rather than fail.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*Recipe, error)
}
