package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed repository for week plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a week plan, assigning an ID when missing.
func (r *Repository) Save(ctx context.Context, wp *WeekPlan) error {
	if wp.ID == "" {
		wp.ID = uuid.New().String()
	}

	data, err := json.Marshal(wp)
	if err != nil {
		return fmt.Errorf("failed to marshal week plan to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO week_plans (id, week_start, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET week_start = excluded.week_start, data = excluded.data, updated_at = excluded.updated_at`,
		wp.ID, wp.WeekStart, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert week plan: %w", err)
	}
	return nil
}

// GetByID retrieves a week plan by its ID. Returns nil, nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*WeekPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM week_plans WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get week plan by ID: %w", err)
	}

	var wp WeekPlan
	if err := json.Unmarshal([]byte(data), &wp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal week plan JSON: %w", err)
	}
	return &wp, nil
}

// GetByWeekStart retrieves the plan for a given week. Returns nil, nil when
// no plan exists for that week.
func (r *Repository) GetByWeekStart(ctx context.Context, weekStart time.Time) (*WeekPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM week_plans WHERE week_start = ? ORDER BY updated_at DESC LIMIT 1`,
		weekStart.UTC(),
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get week plan by week start: %w", err)
	}

	var wp WeekPlan
	if err := json.Unmarshal([]byte(data), &wp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal week plan JSON: %w", err)
	}
	return &wp, nil
}
