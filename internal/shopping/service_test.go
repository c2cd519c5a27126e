package shopping

import (
	"context"
	"testing"

	"meal-week-planner/internal/cleaner"
	"meal-week-planner/internal/food"
	"meal-week-planner/internal/grocery"
	"meal-week-planner/internal/plan"
	"meal-week-planner/internal/recipe"
)

// recordingCleaner notes whether it was called and can misbehave on demand.
type recordingCleaner struct {
	called    bool
	wrongSize bool
}

func (r *recordingCleaner) CleanNames(_ context.Context, names []string) []string {
	r.called = true
	if r.wrongSize {
		return names[:len(names)-1]
	}
	return names
}

func newTestService(catalog recipe.Catalog, c cleaner.NameCleaner) *Service {
	return NewService(NewCollector(catalog, false), c, nil, nil)
}

func TestRegenerateScenario(t *testing.T) {
	// Monday breakfast: a recipe with garlic and tomatoes. Monday lunch: a
	// Garlic Hummus quick food, which normalizes differently from garlic and
	// must survive as its own row.
	catalog := &fakeCatalog{recipes: map[string]*recipe.Recipe{
		"rA": {ID: "rA", Title: "Recipe A", Ingredients: ings("2 cloves minced garlic", "1 cup Tomatoes")},
	}}
	week := weekWith(plan.DayPlan{
		Day: "Monday",
		Meals: map[plan.MealSlot]*plan.Meal{
			plan.SlotBreakfast: {Recipes: []plan.RecipeRef{{ID: "rA", Name: "Recipe A"}}},
			plan.SlotLunch: {QuickFoods: []food.QuickFood{
				{ID: "f1", Name: "Garlic Hummus", Category: food.CategorySnack, ServingSize: "2 tbsp"},
			}},
		},
	})

	svc := newTestService(catalog, cleaner.Noop{})
	items, err := svc.Regenerate(context.Background(), week, nil)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d: %v", len(items), items)
	}
	if items[0].Name != "Garlic" || items[0].Category != grocery.CategoryProduce {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	if items[1].Name != "Tomato" || items[1].Category != grocery.CategoryProduce {
		t.Errorf("Unexpected second item: %+v", items[1])
	}
	if items[2].Name != "Garlic Hummus" || items[2].Category != grocery.CategoryPantry {
		t.Errorf("Unexpected quick-food item: %+v", items[2])
	}
}

func TestRegenerateDedupInvariant(t *testing.T) {
	catalog := &fakeCatalog{recipes: map[string]*recipe.Recipe{
		"r1": {ID: "r1", Ingredients: ings("garlic", "Tomatoes", "olive oil")},
		"r2": {ID: "r2", Ingredients: ings("Garlic", "tomato", "chicken breasts")},
	}}
	week := weekWith(
		mealDay("Monday", plan.SlotDinner, &plan.Meal{Recipes: []plan.RecipeRef{{ID: "r1"}, {ID: "r2"}}}),
	)

	svc := newTestService(catalog, cleaner.Noop{})
	items, err := svc.Regenerate(context.Background(), week, nil)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, it := range items {
		key := it.Name
		if seen[key] {
			t.Errorf("Duplicate normalized name in output: %q", key)
		}
		seen[key] = true
	}
	if len(items) != 4 {
		t.Errorf("Expected 4 unique items, got %d: %v", len(items), items)
	}
}

func TestRegenerateEmptyWeekSkipsCleaner(t *testing.T) {
	rc := &recordingCleaner{}
	svc := newTestService(&fakeCatalog{}, rc)

	items, err := svc.Regenerate(context.Background(), weekWith(), nil)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty list, got %v", items)
	}
	if rc.called {
		t.Error("Cleaner must not be called for an empty week")
	}
}

func TestRegenerateMisbehavingCleaner(t *testing.T) {
	catalog := &fakeCatalog{recipes: map[string]*recipe.Recipe{
		"r1": {ID: "r1", Ingredients: ings("chicken breasts")},
	}}
	week := weekWith(
		mealDay("Monday", plan.SlotLunch, &plan.Meal{Recipes: []plan.RecipeRef{{ID: "r1"}}}),
	)

	svc := newTestService(catalog, &recordingCleaner{wrongSize: true})
	items, err := svc.Regenerate(context.Background(), week, nil)
	if err != nil {
		t.Fatalf("Pipeline must complete despite a misbehaving cleaner: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Chicken breast" {
		t.Errorf("Expected the uncleaned normalized name, got %v", items)
	}
}

func TestRegenerateDeterministic(t *testing.T) {
	catalog := &fakeCatalog{recipes: map[string]*recipe.Recipe{
		"r1": {ID: "r1", Ingredients: ings("garlic", "1 cup Tomatoes")},
	}}
	week := weekWith(
		mealDay("Wednesday", plan.SlotDinner, &plan.Meal{Recipes: []plan.RecipeRef{{ID: "r1"}}}),
	)

	svc := newTestService(catalog, cleaner.Noop{})
	first, err := svc.Regenerate(context.Background(), week, nil)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	second, err := svc.Regenerate(context.Background(), week, nil)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Lists differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || first[i].Category != second[i].Category {
			t.Errorf("Item %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRegeneratePreservesChecked(t *testing.T) {
	catalog := &fakeCatalog{recipes: map[string]*recipe.Recipe{
		"r1": {ID: "r1", Ingredients: ings("garlic", "tomato")},
	}}
	week := weekWith(
		mealDay("Monday", plan.SlotDinner, &plan.Meal{Recipes: []plan.RecipeRef{{ID: "r1"}}}),
	)
	previous := []ShoppingItem{
		{ID: "shopping-ingredient-0", Name: "Garlic", Checked: true},
	}

	svc := newTestService(catalog, cleaner.Noop{})
	items, err := svc.Regenerate(context.Background(), week, previous)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if !items[0].Checked {
		t.Error("Checked flag for Garlic must survive regeneration")
	}
	if items[1].Checked {
		t.Error("Tomato was never checked")
	}
}
