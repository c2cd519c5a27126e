package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for an external-call execution,
// e.g. a name-cleaning batch or a recipe import.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}
