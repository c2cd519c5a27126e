package shopping

import "meal-week-planner/internal/ingredient"

// PreserveChecked carries the checked flag forward from the previous
// persisted list: a fresh item is checked iff some previous item with the
// same normalized name was checked. Pure; the input slice is not modified.
func PreserveChecked(items, previous []ShoppingItem) []ShoppingItem {
	if len(previous) == 0 || len(items) == 0 {
		return items
	}

	checked := make(map[string]struct{})
	for _, p := range previous {
		if p.Checked {
			checked[ingredient.Key(p.Name)] = struct{}{}
		}
	}

	out := make([]ShoppingItem, len(items))
	copy(out, items)
	for i := range out {
		if _, ok := checked[ingredient.Key(out[i].Name)]; ok {
			out[i].Checked = true
		}
	}
	return out
}

// ToggleChecked flips the checked flag of the item with the given id,
// returning a new list. Unknown ids leave the list unchanged.
func ToggleChecked(items []ShoppingItem, itemID string) []ShoppingItem {
	out := make([]ShoppingItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == itemID {
			out[i].Checked = !out[i].Checked
			break
		}
	}
	return out
}
