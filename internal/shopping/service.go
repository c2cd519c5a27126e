package shopping

import (
	"context"
	"fmt"
	"log"
	"sync"

	"meal-week-planner/internal/cleaner"
	"meal-week-planner/internal/plan"
)

// Service runs the plan-to-shopping-list pipeline: collect, clean, build,
// reconcile, persist. Regenerations of different week plans may run in
// parallel; within one week plan they are coalesced so that a save from a
// superseded run is discarded.
type Service struct {
	collector *Collector
	cleaner   cleaner.NameCleaner
	repo      *Repository
	planRepo  *plan.Repository

	mu    sync.Mutex
	weeks map[string]*weekState
}

// weekState serializes persistence per week plan and tracks the newest
// generation so stale completions can be recognized.
type weekState struct {
	mu  sync.Mutex
	gen uint64
}

// NewService creates a Service.
func NewService(collector *Collector, nameCleaner cleaner.NameCleaner, repo *Repository, planRepo *plan.Repository) *Service {
	return &Service{
		collector: collector,
		cleaner:   nameCleaner,
		repo:      repo,
		planRepo:  planRepo,
		weeks:     make(map[string]*weekState),
	}
}

// Regenerate rebuilds the shopping list for a week plan against the given
// previous list. It rejects only when the recipe catalog cannot be read; a
// degraded cleaning step is absorbed silently and still yields a valid list.
func (s *Service) Regenerate(ctx context.Context, week *plan.WeekPlan, previous []ShoppingItem) ([]ShoppingItem, error) {
	collected, quickFoods, err := s.collector.Collect(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to collect ingredients: %w", err)
	}

	// Empty week: nothing to clean, skip the external call entirely.
	var cleaned []string
	if len(collected) > 0 {
		names := make([]string, len(collected))
		for i, c := range collected {
			names[i] = c.Name
		}
		cleaned = s.cleaner.CleanNames(ctx, names)
		if len(cleaned) != len(collected) {
			// Defensive alignment check; a well-behaved cleaner already
			// guarantees this.
			cleaned = names
		}
	}

	items := BuildList(cleaned, collected, quickFoods)
	return PreserveChecked(items, previous), nil
}

// RegenerateAndSave loads the plan and its previous list, rebuilds, and
// persists the result, unless a newer regeneration for the same week
// started in the meantime, in which case the stale result is discarded.
func (s *Service) RegenerateAndSave(ctx context.Context, weekPlanID string) ([]ShoppingItem, error) {
	gen := s.begin(weekPlanID)

	week, err := s.planRepo.GetByID(ctx, weekPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load week plan: %w", err)
	}
	if week == nil {
		return nil, fmt.Errorf("week plan %s not found", weekPlanID)
	}

	previous, err := s.repo.Load(ctx, weekPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous shopping list: %w", err)
	}

	items, err := s.Regenerate(ctx, week, previous)
	if err != nil {
		return nil, err
	}

	saved, err := s.commit(ctx, weekPlanID, gen, items)
	if err != nil {
		return nil, err
	}
	if !saved {
		log.Printf("Discarding superseded shopping list for week plan %s (generation %d)", weekPlanID, gen)
	}
	return items, nil
}

// TriggerRegeneration kicks off a regeneration without blocking the caller.
// Plan saves use this so the save itself never waits on the cleaning step;
// until the pipeline finishes, the persisted list is the previous
// generation's, which is expected.
func (s *Service) TriggerRegeneration(weekPlanID string) {
	go func() {
		if _, err := s.RegenerateAndSave(context.Background(), weekPlanID); err != nil {
			log.Printf("Background shopping list regeneration failed for week plan %s: %v", weekPlanID, err)
		}
	}()
}

// Toggle flips one item's checked flag and persists the updated list.
func (s *Service) Toggle(ctx context.Context, weekPlanID, itemID string) ([]ShoppingItem, error) {
	st := s.state(weekPlanID)
	st.mu.Lock()
	defer st.mu.Unlock()

	items, err := s.repo.Load(ctx, weekPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("no shopping list for week plan %s", weekPlanID)
	}

	updated := ToggleChecked(items, itemID)
	if err := s.repo.Save(ctx, weekPlanID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) state(weekPlanID string) *weekState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.weeks[weekPlanID]
	if !ok {
		st = &weekState{}
		s.weeks[weekPlanID] = st
	}
	return st
}

// begin registers a new generation for the week and returns its number.
func (s *Service) begin(weekPlanID string) uint64 {
	st := s.state(weekPlanID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	return st.gen
}

// commit persists items if gen is still the newest generation for the week.
// Returns false when the result was superseded and therefore discarded.
func (s *Service) commit(ctx context.Context, weekPlanID string, gen uint64, items []ShoppingItem) (bool, error) {
	st := s.state(weekPlanID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.gen != gen {
		return false, nil
	}
	if err := s.repo.Save(ctx, weekPlanID, items); err != nil {
		return false, fmt.Errorf("failed to save shopping list: %w", err)
	}
	return true, nil
}
