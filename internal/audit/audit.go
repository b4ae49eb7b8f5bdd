// Package audit defines the append-only decision log emitted by the
// authorization gate and the query rewriter. Sinks are fire-and-forget: a
// failure to record is logged locally and never surfaced to the caller, so it
// cannot alter a decision that has already been made.
package audit

import (
	"context"
	"time"
)

// Config controls the in-memory audit tail.
type Config struct {
	// RecentCapacity bounds the number of events retained for
	// GET /v1/audit/recent. Zero means the default capacity.
	RecentCapacity int `conf:"recent_capacity" yaml:"recent_capacity" json:"recent_capacity"`
}

// Event is a single structured audit record.
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	UserID       string         `json:"user_id"`
	ResourceType string         `json:"resource_type"`
	ResourceName string         `json:"resource_name"`
	Action       string         `json:"action"`
	Decision     string         `json:"decision"`
	Reason       string         `json:"reason,omitempty"`
	Persona      string         `json:"persona"`
	Groups       []string       `json:"groups,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"

	// DecisionRewrite marks events emitted by the query rewriter when it
	// changed the query text.
	DecisionRewrite = "rewrite"
)

// Sink receives audit events. Implementations must not block the caller
// beyond a local append, and must swallow their own failures.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(ctx context.Context, event Event) {}

// MultiSink fans events out to several sinks.
type MultiSink []Sink

func (s MultiSink) Record(ctx context.Context, event Event) {
	for _, sink := range s {
		sink.Record(ctx, event)
	}
}
