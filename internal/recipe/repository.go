package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Repository is a database-backed repository for recipes. Each recipe is
// stored as a JSON document keyed by its ID.
type Repository struct {
	db *sql.DB
}

// Ensure the repository satisfies the catalog interface used by the collector.
var _ Catalog = (*Repository)(nil)

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a recipe.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	var updatedAt time.Time
	if rec.UpdatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			log.Printf("Warning: failed to parse UpdatedAt '%s' for recipe %s: %v. Using current time.", rec.UpdatedAt, rec.ID, err)
			updatedAt = time.Now().UTC()
		} else {
			updatedAt = parsed
		}
	} else {
		updatedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recipes (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		rec.ID, string(data), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// GetByID retrieves a recipe by its ID. Returns nil, nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM recipes WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	return &rec, nil
}

// List retrieves all recipes ordered by last update.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM recipes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		var rec Recipe
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %s: %v", id, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Delete removes a recipe. Plans referencing it keep their dangling reference;
// the collector skips those at aggregation time.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}
