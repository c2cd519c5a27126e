package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of shopping lists. One list per week plan,
// stored as a JSON items document and fully replaced on each save.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save replaces the shopping list for a week plan.
func (r *Repository) Save(ctx context.Context, weekPlanID string, items []ShoppingItem) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO shopping_lists (week_plan_id, items, generation, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(week_plan_id) DO UPDATE SET
			items = excluded.items,
			generation = shopping_lists.generation + 1,
			updated_at = excluded.updated_at`,
		weekPlanID, string(itemsJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert shopping list: %w", err)
	}
	return nil
}

// Load retrieves the shopping list for a week plan. Returns nil, nil when no
// list has been generated yet.
func (r *Repository) Load(ctx context.Context, weekPlanID string) ([]ShoppingItem, error) {
	var itemsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT items FROM shopping_lists WHERE week_plan_id = ?`, weekPlanID,
	).Scan(&itemsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No shopping list found
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}

	var items []ShoppingItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return items, nil
}

// Delete removes a week plan's shopping list.
func (r *Repository) Delete(ctx context.Context, weekPlanID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE week_plan_id = ?`, weekPlanID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
