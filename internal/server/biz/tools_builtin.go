package biz

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cast"

	"github.com/datawarden/datawarden/internal/pkg/xtime"

	"github.com/datawarden/datawarden/internal/dispatch"
)

// NewToolRegistry returns the registry of built-in tools. Deployments extend
// it through Registry.Register before the server starts.
func NewToolRegistry() *dispatch.Registry {
	registry := dispatch.NewRegistry()
	registry.Register("echo", dispatch.ToolFunc(echoTool))
	registry.Register("inventory_report", dispatch.ToolFunc(inventoryReportTool))
	registry.Register("sales_report", dispatch.ToolFunc(salesReportTool))

	return registry
}

func echoTool(ctx context.Context, target string, input map[string]any) (map[string]any, error) {
	return map[string]any{
		"target": target,
		"echo":   input,
	}, nil
}

func inventoryReportTool(ctx context.Context, target string, input map[string]any) (map[string]any, error) {
	warehouse := cast.ToString(input["warehouse_code"])
	if warehouse == "" {
		return nil, errors.New("inventory_report: warehouse_code is required")
	}

	limit := cast.ToInt(input["limit"])
	if limit <= 0 {
		limit = 10
	}

	return map[string]any{
		"report":         "inventory",
		"target":         target,
		"warehouse_code": warehouse,
		"row_limit":      limit,
		"generated_at":   xtime.UTCNow().Format(time.RFC3339),
	}, nil
}

func salesReportTool(ctx context.Context, target string, input map[string]any) (map[string]any, error) {
	region := cast.ToString(input["region"])
	if region == "" {
		return nil, errors.New("sales_report: region is required")
	}

	period := cast.ToString(input["period"])
	if period == "" {
		period = "month"
	}

	return map[string]any{
		"report":       "sales",
		"target":       target,
		"region":       region,
		"period":       period,
		"generated_at": xtime.UTCNow().Format(time.RFC3339),
	}, nil
}
