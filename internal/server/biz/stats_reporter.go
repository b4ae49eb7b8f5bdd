package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/log"
)

type StatsReporterParams struct {
	fx.In

	Executor executors.ScheduledExecutor
	History  *dispatch.History

	ReportInterval time.Duration `name:"stats_report_interval" optional:"true"`
}

// StatsReporter periodically logs per-tool execution statistics.
type StatsReporter struct {
	executor executors.ScheduledExecutor
	history  *dispatch.History
	interval time.Duration
}

func NewStatsReporter(params StatsReporterParams) *StatsReporter {
	return &StatsReporter{
		executor: params.Executor,
		history:  params.History,
		interval: params.ReportInterval,
	}
}

func (r *StatsReporter) Start(ctx context.Context) error {
	_, err := r.executor.ScheduleFuncAtCronRate(
		r.report,
		executors.CRONRule{Expr: r.cronExpr()},
	)

	return err
}

func (r *StatsReporter) Stop(ctx context.Context) error {
	return nil
}

func (r *StatsReporter) cronExpr() string {
	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	if 60%minutes != 0 {
		minutes = 5
	}

	return fmt.Sprintf("*/%d * * * *", minutes)
}

func (r *StatsReporter) report(ctx context.Context) {
	perTool := r.history.StatsPerTool()
	if len(perTool) == 0 {
		return
	}

	for tool, stats := range perTool {
		log.Info(ctx, "tool execution stats",
			log.String("tool", tool),
			log.Int("total", stats.Total),
			log.Int("success", stats.Success),
			log.Int("failed", stats.Failed),
			log.Int("timeout", stats.Timeout),
			log.Float64("success_rate", stats.SuccessRate),
			log.Float64("avg_latency_ms", stats.AvgLatencyMS),
			log.Float64("avg_attempts", stats.AvgAttempts),
		)
	}
}
