package contexts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithUser(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUser(ctx)
	assert.False(t, ok)

	user := UserContext{
		UserID:    "u-100",
		Persona:   "warehouse_manager",
		Groups:    []string{"ops"},
		SessionID: "s-1",
	}

	ctx = WithUser(ctx, user)

	got, ok := GetUser(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestTraceAndRequestID(t *testing.T) {
	ctx := context.Background()

	ctx = WithTraceID(ctx, "dw-trace")
	ctx = WithRequestID(ctx, "dw-request")

	traceID, ok := GetTraceID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "dw-trace", traceID)

	requestID, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "dw-request", requestID)
}

func TestContainerSharedAcrossValues(t *testing.T) {
	ctx := WithTraceID(context.Background(), "dw-trace")

	// Subsequent writes reuse the same container, no new context values.
	ctx2 := WithOperationName(ctx, "POST /v1/query")
	assert.Equal(t, ctx, ctx2)

	name, ok := GetOperationName(ctx)
	assert.True(t, ok)
	assert.Equal(t, "POST /v1/query", name)
}

func TestErrors(t *testing.T) {
	ctx := WithTraceID(context.Background(), "dw-trace")

	AddError(ctx, errors.New("boom"))
	AddError(ctx, nil)

	errs := GetErrors(ctx)
	assert.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "boom")
}
