package dispatch

import (
	"time"
)

// Status is the execution state of a dispatched request.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
)

// Terminal reports whether no further attempt will follow this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusTimeout:
		return true
	default:
		return false
	}
}

// Request describes one downstream tool execution. Constructed by the caller,
// consumed once by the dispatcher.
type Request struct {
	// ToolName selects the registered tool.
	ToolName string `json:"tool_name"`

	// Target identifies what the tool operates on.
	Target string `json:"target_identifier"`

	// Input is the structured tool input.
	Input map[string]any `json:"input_data"`

	// Timeout bounds a single attempt. Zero means the dispatcher default.
	Timeout time.Duration `json:"timeout"`

	// MaxRetries bounds total attempts. Zero means the dispatcher default.
	MaxRetries int `json:"max_retries"`

	// Metadata is opaque caller data carried into the result.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Result is the immutable terminal snapshot of one request's execution.
type Result struct {
	ID              string         `json:"id"`
	ToolName        string         `json:"tool_name"`
	Status          Status         `json:"status"`
	Output          map[string]any `json:"result,omitempty"`
	Error           string         `json:"error,omitempty"`
	ExecutionTimeMS int64          `json:"execution_time_ms"`
	Attempts        int            `json:"attempts"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	StartedAt       time.Time      `json:"started_at"`
}
