package plan

import (
	"fmt"
	"time"

	"meal-week-planner/internal/food"
)

// MealSlot identifies one of the meal slots in a day plan.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"

	// SlotSnack is a legacy slot some stored plans still carry.
	SlotSnack MealSlot = "snack"
)

// Slots lists slots in their day order, legacy snack slot last.
var Slots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// RecipeRef is the display subset of a recipe carried inside a plan. The
// full ingredient list must be re-resolved from the catalog at aggregation
// time; a ref whose recipe has since been deleted is skipped there.
type RecipeRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// Meal is the content of one slot: an ordered list of recipe references and
// a parallel list of standalone quick foods.
type Meal struct {
	Recipes    []RecipeRef      `json:"recipes,omitempty"`
	QuickFoods []food.QuickFood `json:"quick_foods,omitempty"`
}

// DayPlan holds one calendar day's assignments.
type DayPlan struct {
	Day   string             `json:"day"`
	Meals map[MealSlot]*Meal `json:"meals,omitempty"`
}

// Slot returns the meal for a slot, which may be nil.
func (d DayPlan) Slot(s MealSlot) *Meal {
	if d.Meals == nil {
		return nil
	}
	return d.Meals[s]
}

// WeekPlan is seven day plans starting at WeekStart (a Monday).
type WeekPlan struct {
	ID        string     `json:"id"`
	WeekStart time.Time  `json:"week_start"`
	Days      [7]DayPlan `json:"days"`
}

// WeekStartOf truncates t to the Monday of its week, midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// NextMonday returns the Monday after t.
func NextMonday(t time.Time) time.Time {
	return WeekStartOf(t).AddDate(0, 0, 7)
}

// WeekStartFor resolves a user-supplied week selector to a week start.
// An empty selector or "current" means the week containing now, "next" the
// week after it; anything else must be a YYYY-MM-DD date, which selects the
// week containing that day.
func WeekStartFor(selector string, now time.Time) (time.Time, error) {
	switch selector {
	case "", "current":
		return WeekStartOf(now), nil
	case "next":
		return NextMonday(now), nil
	}
	day, err := time.Parse("2006-01-02", selector)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week selector %q: expected YYYY-MM-DD, \"current\", or \"next\"", selector)
	}
	return WeekStartOf(day), nil
}
