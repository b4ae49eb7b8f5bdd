package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawarden/datawarden/internal/log"
)

func TestTraceFieldsHooks(t *testing.T) {
	hook := log.HookFunc(TraceFieldsHooks)

	t.Run("with trace ID", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "dw-test-trace-id")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "trace_id", fields[0].Key)
		assert.Equal(t, "dw-test-trace-id", fields[0].String)
	})

	t.Run("with operation name", func(t *testing.T) {
		ctx := WithOperationName(context.Background(), "test-operation-name")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "operation_name", fields[0].Key)
		assert.Equal(t, "test-operation-name", fields[0].String)
	})

	t.Run("with trace and request ID", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "dw-test-trace-id")
		ctx = WithRequestID(ctx, "dwr-test-request-id")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 2)
		assert.Equal(t, "trace_id", fields[0].Key)
		assert.Equal(t, "request_id", fields[1].Key)
	})

	t.Run("with empty context", func(t *testing.T) {
		fields := hook.Apply(context.Background(), "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("with nil context", func(t *testing.T) {
		fields := hook.Apply(nil, "test message")
		assert.Len(t, fields, 0)
	})
}
