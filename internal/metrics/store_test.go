package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"meal-week-planner/internal/database"
	"meal-week-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordMeta(t *testing.T) {
	store := newTestStore(t)

	t.Run("RecordsExecution", func(t *testing.T) {
		err := store.RecordMeta(shared.AgentMeta{
			AgentName: "Cleaner",
			Usage: shared.TokenUsage{
				PromptTokens:     120,
				CompletionTokens: 40,
				Model:            "gemini-1.5-flash",
			},
			Latency: 800 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("RecordMeta failed: %v", err)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("Expected 1 usage day, got %d", len(usage))
		}
		if usage[0].TotalPrompt != 120 || usage[0].TotalCompletion != 40 {
			t.Errorf("Unexpected token totals: %+v", usage[0])
		}
		if usage[0].TotalExecution != 1 {
			t.Errorf("Expected 1 execution, got %d", usage[0].TotalExecution)
		}
	})

	t.Run("SkipsEmptyUsage", func(t *testing.T) {
		err := store.RecordMeta(shared.AgentMeta{AgentName: "Cleaner"})
		if err != nil {
			t.Fatalf("RecordMeta failed: %v", err)
		}

		usage, err := store.GetDailyUsage(1)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if usage[0].TotalExecution != 1 {
			t.Errorf("Zero-token meta should not add a row, got %d executions", usage[0].TotalExecution)
		}
	})
}

func TestMapUsage(t *testing.T) {
	m := MapUsage("Importer", shared.TokenUsage{
		PromptTokens:     10,
		CompletionTokens: 5,
		Model:            "llama-3.3-70b-versatile",
	}, 2*time.Second)

	if m.AgentName != "Importer" || m.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Unexpected identity fields: %+v", m)
	}
	if m.PromptTokens != 10 || m.CompletionTokens != 5 {
		t.Errorf("Unexpected token fields: %+v", m)
	}
	if m.LatencyMS != 2000 {
		t.Errorf("Expected latency 2000ms, got %d", m.LatencyMS)
	}
	if m.Timestamp.IsZero() {
		t.Error("Expected a timestamp to be set")
	}
}
