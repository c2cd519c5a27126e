package plan

import (
	"testing"
	"time"
)

func TestWeekStartOf(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"Wednesday", time.Date(2024, 5, 15, 17, 30, 0, 0, time.UTC), time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"Monday", time.Date(2024, 5, 13, 0, 0, 1, 0, time.UTC), time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"Sunday", time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC), time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStartOf(tc.in); !got.Equal(tc.want) {
				t.Errorf("WeekStartOf(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNextMonday(t *testing.T) {
	in := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	if got := NextMonday(in); !got.Equal(want) {
		t.Errorf("NextMonday(%v) = %v, want %v", in, got, want)
	}
}

func TestWeekStartFor(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) // a Wednesday

	cases := []struct {
		name     string
		selector string
		want     time.Time
	}{
		{"Empty", "", time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"Current", "current", time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"Next", "next", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{"Date", "2024-05-19", time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := WeekStartFor(tc.selector, now)
			if err != nil {
				t.Fatalf("WeekStartFor(%q) failed: %v", tc.selector, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("WeekStartFor(%q) = %v, want %v", tc.selector, got, tc.want)
			}
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		if _, err := WeekStartFor("someday", now); err == nil {
			t.Error("Expected an error for a malformed selector")
		}
	})
}
