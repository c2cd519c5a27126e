package cleaner

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"meal-week-planner/internal/database"
	"meal-week-planner/internal/llm"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/shared"
)

type stubTextGenerator struct {
	content string
	usage   shared.TokenUsage
	err     error
	block   bool
}

func (s *stubTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if s.block {
		<-ctx.Done()
		return llm.ContentResponse{}, ctx.Err()
	}
	if s.err != nil {
		return llm.ContentResponse{}, s.err
	}
	return llm.ContentResponse{Content: s.content, Usage: s.usage}, nil
}

func TestLLMCleanerCleanNames(t *testing.T) {
	ctx := context.Background()
	names := []string{"chicken breasts, diced", "2 cloves garlic"}

	t.Run("Success", func(t *testing.T) {
		gen := &stubTextGenerator{content: `{"names": ["chicken breast", "garlic"]}`}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if len(got) != 2 || got[0] != "chicken breast" || got[1] != "garlic" {
			t.Errorf("Expected cleaned names, got %v", got)
		}
	})

	t.Run("BareArrayResponse", func(t *testing.T) {
		gen := &stubTextGenerator{content: `["chicken breast", "garlic"]`}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[0] != "chicken breast" {
			t.Errorf("Expected bare array to parse, got %v", got)
		}
	})

	t.Run("CodeFenceResponse", func(t *testing.T) {
		gen := &stubTextGenerator{content: "```json\n{\"names\": [\"chicken breast\", \"garlic\"]}\n```"}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[1] != "garlic" {
			t.Errorf("Expected fenced JSON to parse, got %v", got)
		}
	})

	t.Run("LengthMismatchFallsBack", func(t *testing.T) {
		gen := &stubTextGenerator{content: `{"names": ["chicken breast"]}`}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[0] != names[0] || got[1] != names[1] {
			t.Errorf("Expected fallback to originals, got %v", got)
		}
	})

	t.Run("BackendErrorFallsBack", func(t *testing.T) {
		gen := &stubTextGenerator{err: fmt.Errorf("backend down")}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[0] != names[0] {
			t.Errorf("Expected fallback to originals, got %v", got)
		}
	})

	t.Run("InvalidJSONFallsBack", func(t *testing.T) {
		gen := &stubTextGenerator{content: `sure, here are your names`}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[1] != names[1] {
			t.Errorf("Expected fallback to originals, got %v", got)
		}
	})

	t.Run("TimeoutFallsBack", func(t *testing.T) {
		gen := &stubTextGenerator{block: true}
		c := NewLLMCleaner(gen, 10*time.Millisecond, nil)

		done := make(chan []string, 1)
		go func() { done <- c.CleanNames(ctx, names) }()

		select {
		case got := <-done:
			if got[0] != names[0] {
				t.Errorf("Expected fallback to originals, got %v", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("CleanNames did not respect its timeout")
		}
	})

	t.Run("EmptyCleanedEntryKeepsOriginal", func(t *testing.T) {
		gen := &stubTextGenerator{content: `{"names": ["", "garlic"]}`}
		c := NewLLMCleaner(gen, time.Second, nil)

		got := c.CleanNames(ctx, names)
		if got[0] != names[0] || got[1] != "garlic" {
			t.Errorf("Expected blank entry to keep original, got %v", got)
		}
	})

	t.Run("EmptyInputSkipsCall", func(t *testing.T) {
		gen := &stubTextGenerator{block: true} // would hang if called
		c := NewLLMCleaner(gen, time.Second, nil)

		if got := c.CleanNames(ctx, nil); len(got) != 0 {
			t.Errorf("Expected empty result, got %v", got)
		}
	})
}

func TestLLMCleanerMetrics(t *testing.T) {
	ctx := context.Background()
	names := []string{"chicken breasts, diced"}

	newStore := func(t *testing.T) *metrics.Store {
		t.Helper()
		db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to initialize test database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return metrics.NewStore(db.SQL)
	}

	t.Run("SuccessRecordsUsage", func(t *testing.T) {
		store := newStore(t)
		gen := &stubTextGenerator{
			content: `{"names": ["chicken breast"]}`,
			usage:   shared.TokenUsage{PromptTokens: 80, CompletionTokens: 12, Model: "gemini-1.5-flash"},
		}
		c := NewLLMCleaner(gen, time.Second, store)

		c.CleanNames(ctx, names)

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 1 || usage[0].TotalExecution != 1 {
			t.Fatalf("Expected one recorded execution, got %v", usage)
		}
		if usage[0].TotalPrompt != 80 {
			t.Errorf("Expected 80 prompt tokens recorded, got %d", usage[0].TotalPrompt)
		}
	})

	t.Run("BackendErrorRecordsNothing", func(t *testing.T) {
		store := newStore(t)
		gen := &stubTextGenerator{err: fmt.Errorf("backend down")}
		c := NewLLMCleaner(gen, time.Second, store)

		got := c.CleanNames(ctx, names)
		if got[0] != names[0] {
			t.Fatalf("Expected fallback to originals, got %v", got)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 0 {
			t.Errorf("A failed call must not leave a metric row, got %v", usage)
		}
	})
}

func TestNoopCleaner(t *testing.T) {
	names := []string{"a", "b"}
	got := Noop{}.CleanNames(context.Background(), names)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Noop changed the input: %v", got)
	}
}
