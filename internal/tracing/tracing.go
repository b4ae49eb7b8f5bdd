package tracing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/datawarden/datawarden/internal/contexts"
)

type Config struct {
	// TraceHeader is the request header carrying an externally supplied trace id.
	TraceHeader string `conf:"trace_header" yaml:"trace_header" json:"trace_header"`

	// RequestHeader is the response header carrying the generated request id.
	RequestHeader string `conf:"request_header" yaml:"request_header" json:"request_header"`

	// ExtraTraceHeaders are additional request headers checked for a trace id.
	ExtraTraceHeaders []string `conf:"extra_trace_headers" yaml:"extra_trace_headers" json:"extra_trace_headers"`

	// ExtraTraceBodyFields are JSON body paths checked for a trace id.
	ExtraTraceBodyFields []string `conf:"extra_trace_body_fields" yaml:"extra_trace_body_fields" json:"extra_trace_body_fields"`
}

// GenerateTraceID generates a trace id, formatted as dw-{{uuid}}.
func GenerateTraceID() string {
	id := uuid.New()
	return fmt.Sprintf("dw-%s", id.String())
}

// GenerateRequestID generates a request id, formatted as dwr-{{uuid}}.
func GenerateRequestID() string {
	id := uuid.New()
	return fmt.Sprintf("dwr-%s", id.String())
}

// WithTraceID stores the trace id to context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return contexts.WithTraceID(ctx, traceID)
}

// GetTraceID gets the trace id from context.
func GetTraceID(ctx context.Context) (string, bool) {
	return contexts.GetTraceID(ctx)
}

// WithRequestID stores the request id to context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return contexts.WithRequestID(ctx, requestID)
}

// GetRequestID gets the request id from context.
func GetRequestID(ctx context.Context) (string, bool) {
	return contexts.GetRequestID(ctx)
}

// WithOperationName stores the operation name to context.
func WithOperationName(ctx context.Context, name string) context.Context {
	return contexts.WithOperationName(ctx, name)
}

// GetOperationName gets the operation name from context.
func GetOperationName(ctx context.Context) (string, bool) {
	return contexts.GetOperationName(ctx)
}
