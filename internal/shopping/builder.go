package shopping

import (
	"fmt"
	"log"
	"strings"

	"meal-week-planner/internal/food"
	"meal-week-planner/internal/ingredient"
)

// BuildList merges cleaned ingredient names with quick foods into final
// shopping rows. cleaned must be index-aligned with collected: position i of
// cleaned is the cleaned form of collected[i], and collected[i].Category is
// used regardless of what cleaning did to the text.
//
// Ingredient rows come first in discovery order, then quick-food rows. A
// quick food whose normalized name collides with an existing row is dropped;
// the ingredient-derived entry wins.
func BuildList(cleaned []string, collected []CollectedIngredient, quickFoods []food.QuickFood) []ShoppingItem {
	items := make([]ShoppingItem, 0, len(cleaned)+len(quickFoods))
	seen := make(map[string]struct{})

	for i, name := range cleaned {
		key := ingredient.Key(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		items = append(items, ShoppingItem{
			ID:       fmt.Sprintf("shopping-ingredient-%d", len(items)),
			Name:     ingredient.Capitalize(strings.TrimSpace(name)),
			Quantity: "", // amounts are not aggregated across recipes
			Category: collected[i].Category,
			Checked:  false,
		})
	}

	foodIndex := 0
	for _, f := range quickFoods {
		n := ingredient.Normalize(f.Name)
		if n.Key == "" {
			continue
		}
		if _, dup := seen[n.Key]; dup {
			log.Printf("Dropping quick food %q: an ingredient row already covers it", f.Name)
			continue
		}
		seen[n.Key] = struct{}{}

		items = append(items, ShoppingItem{
			ID:       fmt.Sprintf("shopping-quickfood-%d", foodIndex),
			Name:     ingredient.Capitalize(strings.TrimSpace(f.Name)),
			Quantity: f.ServingSize,
			Category: f.Category.ShoppingCategory(),
			Checked:  false,
		})
		foodIndex++
	}

	return items
}
