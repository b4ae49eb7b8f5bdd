package authz

import (
	"context"
	"time"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/contexts"
	"github.com/datawarden/datawarden/internal/pkg/xtime"
)

// Decision is the outcome of a single authorization call. Created once per
// call, immutable, and always appended to the audit sink.
type Decision struct {
	Resource  Resource
	Action    Action
	Allowed   bool
	Reason    string
	Timestamp time.Time
	Persona   string
	UserID    string
	Groups    []string
	SessionID string
}

const (
	ReasonNoPersona      = "no persona"
	ReasonInvalidPersona = "invalid persona"
	ReasonNotInPolicy    = "resource not in persona policy"
	ReasonAllowed        = "persona policy allows resource"
)

// Gate decides resource access per persona. It holds no mutable state and is
// safe for concurrent use. Every call re-evaluates the policy and emits
// exactly one audit event, allow or deny.
type Gate struct {
	store *Store
	sink  audit.Sink
}

func NewGate(store *Store, sink audit.Sink) *Gate {
	if sink == nil {
		sink = audit.NopSink{}
	}

	return &Gate{store: store, sink: sink}
}

// Decide evaluates a single resource access and audits the outcome.
// It never returns an error; every outcome is a value.
func (g *Gate) Decide(ctx context.Context, resource Resource, action Action) Decision {
	user, _ := contexts.GetUser(ctx)

	decision := Decision{
		Resource:  resource,
		Action:    action,
		Timestamp: xtime.UTCNow(),
		Persona:   user.Persona,
		UserID:    user.UserID,
		Groups:    user.Groups,
		SessionID: user.SessionID,
	}

	switch {
	case user.Persona == "":
		decision.Reason = ReasonNoPersona
	default:
		persona, err := ParsePersona(user.Persona)
		if err != nil {
			decision.Reason = ReasonInvalidPersona
		} else if g.store.Allows(persona, resource.Kind, resource.Name) {
			decision.Allowed = true
			decision.Reason = ReasonAllowed
		} else {
			decision.Reason = ReasonNotInPolicy
		}
	}

	g.record(ctx, decision)

	return decision
}

// Authorize reports whether the caller may perform the action on the resource.
func (g *Gate) Authorize(ctx context.Context, resource Resource, action Action) bool {
	return g.Decide(ctx, resource, action).Allowed
}

// AuthorizeBulk evaluates several resources of one kind under one action.
// Each resource is individually decided and audited.
func (g *Gate) AuthorizeBulk(ctx context.Context, kind ResourceKind, names []string, action Action) map[string]bool {
	results := make(map[string]bool, len(names))
	for _, name := range names {
		results[name] = g.Authorize(ctx, Resource{Kind: kind, Name: name}, action)
	}

	return results
}

func (g *Gate) record(ctx context.Context, decision Decision) {
	outcome := audit.DecisionDeny
	if decision.Allowed {
		outcome = audit.DecisionAllow
	}

	g.sink.Record(ctx, audit.Event{
		Timestamp:    decision.Timestamp,
		UserID:       decision.UserID,
		ResourceType: string(decision.Resource.Kind),
		ResourceName: decision.Resource.Name,
		Action:       string(decision.Action),
		Decision:     outcome,
		Reason:       decision.Reason,
		Persona:      decision.Persona,
		Groups:       decision.Groups,
		SessionID:    decision.SessionID,
	})
}
