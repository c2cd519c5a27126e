package food

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed catalog of quick foods.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a quick food, assigning an ID when missing.
func (r *Repository) Save(ctx context.Context, f QuickFood) (QuickFood, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	data, err := json.Marshal(f)
	if err != nil {
		return QuickFood{}, fmt.Errorf("failed to marshal quick food to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quick_foods (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		f.ID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return QuickFood{}, fmt.Errorf("failed to insert quick food: %w", err)
	}
	return f, nil
}

// GetByID retrieves a quick food by its ID. Returns nil, nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*QuickFood, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM quick_foods WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quick food by ID: %w", err)
	}

	var f QuickFood
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quick food JSON: %w", err)
	}
	return &f, nil
}

// List retrieves all quick foods.
func (r *Repository) List(ctx context.Context) ([]QuickFood, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM quick_foods ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quick foods: %w", err)
	}
	defer rows.Close()

	var foods []QuickFood
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan quick food row: %w", err)
		}
		var f QuickFood
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			log.Printf("Warning: failed to unmarshal quick food JSON for ID %s: %v", id, err)
			continue
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}
