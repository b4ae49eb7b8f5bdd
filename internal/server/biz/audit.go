package biz

import (
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/audit"
)

type AuditServiceParams struct {
	fx.In

	Recent *audit.MemorySink
}

// AuditService exposes the in-memory tail of the audit trail for operators.
type AuditService struct {
	recent *audit.MemorySink
}

func NewAuditService(params AuditServiceParams) *AuditService {
	return &AuditService{recent: params.Recent}
}

// Recent returns the newest events, oldest first. A non-positive limit
// returns everything retained.
func (svc *AuditService) Recent(limit int) []audit.Event {
	events := svc.recent.Events()
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	return events
}
