package food

import "meal-week-planner/internal/grocery"

// FoodCategory classifies a quick food on the food screen. It is distinct
// from the shopping-list grocery.Category, which has a coarser partition.
type FoodCategory string

const (
	CategoryFruit   FoodCategory = "fruit"
	CategoryVeggie  FoodCategory = "veggie"
	CategoryDairy   FoodCategory = "dairy"
	CategoryGrain   FoodCategory = "grain"
	CategoryProtein FoodCategory = "protein"
	CategorySnack   FoodCategory = "snack"
	CategoryDrink   FoodCategory = "drink"
)

// Nutrition holds per-serving macros in grams.
type Nutrition struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// QuickFood is a standalone consumable attached directly to a meal slot,
// independent of any recipe.
type QuickFood struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    FoodCategory `json:"category"`
	Emoji       string       `json:"emoji"`
	ServingSize string       `json:"serving_size"`
	Calories    int          `json:"calories"`
	Nutrition   Nutrition    `json:"nutrition"`
}

// ShoppingCategory maps a food category onto a shopping-list section.
// The mapping is fixed and does not consult the keyword categorizer.
func (c FoodCategory) ShoppingCategory() grocery.Category {
	switch c {
	case CategoryFruit, CategoryVeggie:
		return grocery.CategoryProduce
	case CategoryDairy:
		return grocery.CategoryDairy
	case CategoryProtein:
		return grocery.CategoryMeat
	default:
		return grocery.CategoryPantry
	}
}
