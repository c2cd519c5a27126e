package cleaner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"meal-week-planner/internal/llm"
	"meal-week-planner/internal/metrics"
	"meal-week-planner/internal/shared"
)

// NameCleaner tidies a batch of ingredient display names. Implementations
// must return exactly len(names) results in the same order. Cleaning is
// best-effort: a failed or unavailable backend degrades to returning the
// input unchanged, never to an error.
type NameCleaner interface {
	CleanNames(ctx context.Context, names []string) []string
}

// Noop is the cleaner used when no LLM capability is configured.
type Noop struct{}

// CleanNames returns the input unchanged.
func (Noop) CleanNames(_ context.Context, names []string) []string {
	return names
}

// LLMCleaner cleans ingredient names through a text-generation backend.
// This is the only pipeline step that performs an external call.
type LLMCleaner struct {
	textGen      llm.TextGenerator
	timeout      time.Duration
	metricsStore *metrics.Store
}

// NewLLMCleaner creates a cleaner over the given backend. metricsStore may
// be nil; timeout bounds every batch so callers are never blocked
// indefinitely.
func NewLLMCleaner(textGen llm.TextGenerator, timeout time.Duration, metricsStore *metrics.Store) *LLMCleaner {
	return &LLMCleaner{
		textGen:      textGen,
		timeout:      timeout,
		metricsStore: metricsStore,
	}
}

// CleanNames sends the batch to the LLM and validates the response against
// the equal-length, equal-order contract. Any violation, error, or timeout
// falls back to the original names; the degraded mode is logged but never
// surfaced.
func (c *LLMCleaner) CleanNames(ctx context.Context, names []string) []string {
	if len(names) == 0 {
		return names
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt, err := buildCleaningPrompt(names)
	if err != nil {
		log.Printf("Name cleaning degraded: failed to build prompt: %v", err)
		return names
	}

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("Name cleaning degraded: %v", err)
		return names
	}

	if c.metricsStore != nil {
		if recErr := c.metricsStore.RecordMeta(shared.AgentMeta{
			AgentName: "Cleaner",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		}); recErr != nil {
			log.Printf("Warning: failed to record cleaner metrics: %v", recErr)
		}
	}

	cleaned, err := parseCleanedNames(resp.Content)
	if err != nil {
		log.Printf("Name cleaning degraded: %v", err)
		return names
	}

	if len(cleaned) != len(names) {
		log.Printf("Name cleaning degraded: expected %d names, got %d", len(names), len(cleaned))
		return names
	}

	// Positions with an empty cleaned value keep their original.
	for i, n := range cleaned {
		if strings.TrimSpace(n) == "" {
			cleaned[i] = names[i]
		}
	}
	return cleaned
}

func buildCleaningPrompt(names []string) (string, error) {
	input, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to marshal names: %w", err)
	}

	return fmt.Sprintf(`
You are a grocery list editor. Clean up the following ingredient names for a
shopping list: remove any remaining quantities, units, and preparation or
processing words, and use the singular form. Keep each name in its original
language. Do not merge, drop, add, or reorder entries.

Input (JSON array of %d names):
%s

Return the result strictly as a JSON object with this structure:
{"names": ["cleaned name 1", "cleaned name 2", ...]}

The "names" array must contain exactly %d entries, one per input name, in
the same order. Do not include any other text in your response.
`, len(names), string(input), len(names)), nil
}

func parseCleanedNames(content string) ([]string, error) {
	content = strings.TrimSpace(content)

	// Some models wrap the JSON in a markdown code fence despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var wrapped struct {
		Names []string `json:"names"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Names != nil {
		return wrapped.Names, nil
	}

	var bare []string
	if err := json.Unmarshal([]byte(content), &bare); err != nil {
		return nil, fmt.Errorf("failed to parse cleaned names: %w. Response: %s", err, content)
	}
	return bare, nil
}
