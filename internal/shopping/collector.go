package shopping

import (
	"context"
	"fmt"
	"log"

	"meal-week-planner/internal/food"
	"meal-week-planner/internal/grocery"
	"meal-week-planner/internal/ingredient"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/recipe"
)

// CollectedIngredient pairs an ingredient's pre-cleaning display name with
// the category decided for it. The category is fixed here, before the AI
// cleaning step, because cleaning may drop the very word that matched a
// keyword rule.
type CollectedIngredient struct {
	Name     string
	Category grocery.Category
}

// Collector walks a week plan, resolves recipe references against the
// catalog, and produces the deduplicated ingredient and quick-food inputs
// for the list builder.
type Collector struct {
	catalog          recipe.Catalog
	preferTranslated bool
}

// NewCollector creates a Collector. When preferTranslated is set, a recipe's
// translated ingredient list is used where present.
func NewCollector(catalog recipe.Catalog, preferTranslated bool) *Collector {
	return &Collector{catalog: catalog, preferTranslated: preferTranslated}
}

// Collect flattens all slots of all seven days. Ingredients and quick foods
// are deduplicated by normalized name, first occurrence wins, and both
// result lists keep discovery order. A dangling recipe reference is skipped
// with a log line; a catalog failure aborts the whole pass.
func (c *Collector) Collect(ctx context.Context, week *plan.WeekPlan) ([]CollectedIngredient, []food.QuickFood, error) {
	var (
		ingredients []CollectedIngredient
		quickFoods  []food.QuickFood
		seenKeys    = make(map[string]struct{})
		seenFoods   = make(map[string]struct{})
		resolved    = make(map[string]*recipe.Recipe)
	)

	for _, day := range week.Days {
		for _, slot := range plan.Slots {
			meal := day.Slot(slot)
			if meal == nil {
				continue
			}

			for _, ref := range meal.Recipes {
				rec, ok := resolved[ref.ID]
				if !ok {
					var err error
					rec, err = c.catalog.GetByID(ctx, ref.ID)
					if err != nil {
						return nil, nil, fmt.Errorf("failed to resolve recipe %s: %w", ref.ID, err)
					}
					resolved[ref.ID] = rec
				}
				if rec == nil {
					log.Printf("Skipping dangling recipe reference %s (%s)", ref.ID, ref.Name)
					continue
				}

				for _, ing := range c.ingredientsOf(rec) {
					n := ingredient.Normalize(ing.Name)
					if n.Key == "" {
						continue
					}
					if _, dup := seenKeys[n.Key]; dup {
						continue
					}
					seenKeys[n.Key] = struct{}{}
					ingredients = append(ingredients, CollectedIngredient{
						Name:     n.Display,
						Category: grocery.Categorize(n.Key),
					})
				}
			}

			for _, f := range meal.QuickFoods {
				n := ingredient.Normalize(f.Name)
				if n.Key == "" {
					continue
				}
				if _, dup := seenFoods[n.Key]; dup {
					continue
				}
				seenFoods[n.Key] = struct{}{}
				quickFoods = append(quickFoods, f)
			}
		}
	}

	return ingredients, quickFoods, nil
}

func (c *Collector) ingredientsOf(rec *recipe.Recipe) []ingredient.Ingredient {
	if c.preferTranslated && len(rec.TranslatedIngredients) > 0 {
		return rec.TranslatedIngredients
	}
	return rec.Ingredients
}
