package shopping

import (
	"testing"

	"meal-week-planner/internal/grocery"
)

func TestPreserveChecked(t *testing.T) {
	previous := []ShoppingItem{
		{ID: "shopping-ingredient-0", Name: "Garlic", Checked: true},
		{ID: "shopping-ingredient-1", Name: "Tomato", Checked: false},
		{ID: "shopping-quickfood-0", Name: "Almond", Checked: true},
	}
	fresh := []ShoppingItem{
		{ID: "shopping-ingredient-0", Name: "Tomato"},
		{ID: "shopping-ingredient-1", Name: "garlic"},
		{ID: "shopping-ingredient-2", Name: "Onion"},
	}

	out := PreserveChecked(fresh, previous)

	if out[0].Checked {
		t.Error("Tomato was unchecked before and must stay unchecked")
	}
	if !out[1].Checked {
		t.Error("garlic matches a previously checked item by normalized name")
	}
	if out[2].Checked {
		t.Error("Onion is new and must start unchecked")
	}
	if fresh[1].Checked {
		t.Error("PreserveChecked must not mutate its input")
	}
}

func TestPreserveCheckedNoPrevious(t *testing.T) {
	fresh := []ShoppingItem{{ID: "shopping-ingredient-0", Name: "Garlic"}}
	out := PreserveChecked(fresh, nil)
	if len(out) != 1 || out[0].Checked {
		t.Errorf("Expected untouched list, got %v", out)
	}
}

func TestToggleChecked(t *testing.T) {
	items := []ShoppingItem{
		{ID: "shopping-ingredient-0", Name: "Garlic", Category: grocery.CategoryProduce},
		{ID: "shopping-ingredient-1", Name: "Tomato", Category: grocery.CategoryProduce, Checked: true},
	}

	t.Run("CheckAndUncheck", func(t *testing.T) {
		out := ToggleChecked(items, "shopping-ingredient-0")
		if !out[0].Checked {
			t.Error("Expected item to be checked after toggle")
		}
		out = ToggleChecked(out, "shopping-ingredient-0")
		if out[0].Checked {
			t.Error("Expected item to be unchecked after second toggle")
		}
		if items[0].Checked {
			t.Error("ToggleChecked must not mutate its input")
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		out := ToggleChecked(items, "nope")
		for i := range out {
			if out[i].Checked != items[i].Checked {
				t.Errorf("Unknown id changed item %d", i)
			}
		}
	})
}
