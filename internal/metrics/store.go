package metrics

import (
	"context"
	"database/sql"
	"time"

	"meal-week-planner/internal/shared"
)

// ExecutionMetric records metadata for a single external-call execution.
type ExecutionMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO execution_metrics (agent_name, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.AgentName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, ts,
	)
	return err
}

// RecordMeta records metrics directly from shared.AgentMeta.
func (s *Store) RecordMeta(meta shared.AgentMeta) error {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 {
		return nil
	}
	return s.Record(MapUsage(meta.AgentName, meta.Usage, meta.Latency))
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT date(timestamp) AS day,
		       COALESCE(SUM(prompt_tokens), 0),
		       COALESCE(SUM(completion_tokens), 0),
		       COUNT(*)
		FROM execution_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecution); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns the number removed.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(context.Background(),
		`DELETE FROM execution_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MapUsage helper to convert shared.TokenUsage to ExecutionMetric.
func MapUsage(agentName string, usage shared.TokenUsage, latency time.Duration) ExecutionMetric {
	return ExecutionMetric{
		AgentName:        agentName,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Timestamp:        time.Now().UTC(),
	}
}
