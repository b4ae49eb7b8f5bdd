package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/contexts"
)

func newTestGate(t *testing.T) (*Gate, *audit.MemorySink) {
	t.Helper()

	store, err := NewStore(Config{})
	require.NoError(t, err)

	sink := audit.NewMemorySink(64)

	return NewGate(store, sink), sink
}

func managerContext() context.Context {
	return contexts.WithUser(context.Background(), contexts.UserContext{
		UserID:    "u-100",
		Persona:   "warehouse_manager",
		Groups:    []string{"ops", "emea"},
		SessionID: "s-1",
	})
}

func TestAuthorizeAllowed(t *testing.T) {
	gate, sink := newTestGate(t)
	ctx := managerContext()

	allowed := gate.Authorize(ctx, Table("warehouse_product"), ActionRead)
	assert.True(t, allowed)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.DecisionAllow, events[0].Decision)
	assert.Equal(t, "warehouse_product", events[0].ResourceName)
	assert.Equal(t, "table", events[0].ResourceType)
	assert.Equal(t, "warehouse_manager", events[0].Persona)
	assert.Equal(t, "u-100", events[0].UserID)
	assert.Equal(t, "s-1", events[0].SessionID)
}

func TestAuthorizeDeniedTable(t *testing.T) {
	gate, sink := newTestGate(t)
	ctx := managerContext()

	allowed := gate.Authorize(ctx, Table("finance_ledger"), ActionRead)
	assert.False(t, allowed)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.DecisionDeny, events[0].Decision)
	assert.Equal(t, ReasonNotInPolicy, events[0].Reason)
}

func TestAuthorizeNoPersona(t *testing.T) {
	gate, sink := newTestGate(t)

	ctx := contexts.WithUser(context.Background(), contexts.UserContext{UserID: "u-1"})

	decision := gate.Decide(ctx, Table("warehouse_product"), ActionRead)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "no persona")

	// Denials are audited too.
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, audit.DecisionDeny, sink.Events()[0].Decision)
}

func TestAuthorizeInvalidPersona(t *testing.T) {
	gate, sink := newTestGate(t)

	ctx := contexts.WithUser(context.Background(), contexts.UserContext{
		UserID:  "u-1",
		Persona: "superuser",
	})

	decision := gate.Decide(ctx, Tool("sales_report"), ActionExecute)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonInvalidPersona, decision.Reason)
	assert.Equal(t, 1, sink.Len())
}

func TestAuthorizeMissingUserContext(t *testing.T) {
	gate, sink := newTestGate(t)

	allowed := gate.Authorize(context.Background(), Table("sales_order"), ActionRead)
	assert.False(t, allowed)
	assert.Equal(t, 1, sink.Len())
}

func TestAuthorizeRepeatedCallsStable(t *testing.T) {
	gate, sink := newTestGate(t)
	ctx := managerContext()

	for i := 0; i < 5; i++ {
		assert.True(t, gate.Authorize(ctx, Table("inventory_snapshot"), ActionRead))
		assert.False(t, gate.Authorize(ctx, Table("sales_order"), ActionRead))
	}

	// One audit event per call, allow or deny.
	assert.Equal(t, 10, sink.Len())
}

func TestAuthorizeBulk(t *testing.T) {
	gate, sink := newTestGate(t)
	ctx := managerContext()

	results := gate.AuthorizeBulk(ctx, KindTable,
		[]string{"warehouse_product", "inventory_snapshot", "finance_ledger"}, ActionRead)

	assert.Equal(t, map[string]bool{
		"warehouse_product":  true,
		"inventory_snapshot": true,
		"finance_ledger":     false,
	}, results)
	assert.Equal(t, 3, sink.Len())
}

func TestAuthorizeToolKindMismatch(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := managerContext()

	// warehouse_product is a table; as a tool name it must be denied.
	assert.False(t, gate.Authorize(ctx, Tool("warehouse_product"), ActionExecute))
	assert.True(t, gate.Authorize(ctx, Tool("inventory_report"), ActionExecute))
}
