package objects

import (
	"github.com/datawarden/datawarden/internal/dispatch"
)

// ToolCall is one tool execution in a dispatch batch.
type ToolCall struct {
	ToolName   string         `json:"tool_name" binding:"required"`
	Target     string         `json:"target_identifier"`
	Input      map[string]any `json:"input_data"`
	TimeoutMS  int64          `json:"timeout_ms"`
	MaxRetries int            `json:"max_retries"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// DispatchRequest is the body of POST /v1/tools/dispatch.
type DispatchRequest struct {
	Requests         []ToolCall `json:"requests" binding:"required"`
	OverallTimeoutMS int64      `json:"overall_timeout_ms"`
}

// DispatchResponse carries the terminal result of every requested call,
// in request order.
type DispatchResponse struct {
	Results []dispatch.Result `json:"results"`
}

// StatsResponse is the body of GET /v1/tools/stats.
type StatsResponse struct {
	Stats map[string]dispatch.Stats `json:"stats"`
}
