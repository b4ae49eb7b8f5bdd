package biz

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/log"
)

type ToolServiceParams struct {
	fx.In

	Gate       *authz.Gate
	Dispatcher *dispatch.Dispatcher
	History    *dispatch.History
}

// ToolService authorizes tool executions for the caller's persona before
// handing the batch to the dispatcher.
type ToolService struct {
	gate       *authz.Gate
	dispatcher *dispatch.Dispatcher
	history    *dispatch.History
}

func NewToolService(params ToolServiceParams) *ToolService {
	return &ToolService{
		gate:       params.Gate,
		dispatcher: params.Dispatcher,
		history:    params.History,
	}
}

// Dispatch authorizes every distinct tool in the batch and runs it. One
// denied tool fails the whole batch before any call starts.
func (svc *ToolService) Dispatch(ctx context.Context, reqs []dispatch.Request, overallTimeout time.Duration) ([]dispatch.Result, error) {
	tools := lo.Uniq(lo.Map(reqs, func(req dispatch.Request, _ int) string {
		return req.ToolName
	}))

	var denied []string

	reason := ""

	for _, tool := range tools {
		decision := svc.gate.Decide(ctx, authz.Tool(tool), authz.ActionExecute)
		if !decision.Allowed {
			denied = append(denied, tool)
			reason = decision.Reason
		}
	}

	if len(denied) > 0 {
		return nil, &AccessDeniedError{
			Kind:      authz.KindTool,
			Resources: denied,
			Reason:    reason,
		}
	}

	return svc.dispatcher.DispatchMany(ctx, reqs, overallTimeout), nil
}

// Stats aggregates the execution history for one tool, or for every tool
// when tool is empty.
func (svc *ToolService) Stats(tool string) map[string]dispatch.Stats {
	if tool != "" {
		return map[string]dispatch.Stats{tool: svc.history.Stats(tool)}
	}

	return svc.history.StatsPerTool()
}

// ClearHistory drops all recorded executions.
func (svc *ToolService) ClearHistory(ctx context.Context) int {
	cleared := svc.history.Len()
	svc.history.Clear()

	log.Info(ctx, "execution history cleared", log.Int("cleared", cleared))

	return cleared
}
