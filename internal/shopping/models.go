package shopping

import "meal-week-planner/internal/grocery"

// ShoppingItem is one row of a generated shopping list. Everything except
// Checked is rebuilt from scratch on each regeneration; Checked survives by
// name through the reconciler.
type ShoppingItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Quantity string           `json:"quantity"`
	Category grocery.Category `json:"category"`
	Checked  bool             `json:"checked"`
}
