package dependencies

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/dispatch"
	"github.com/datawarden/datawarden/internal/log"
	"github.com/datawarden/datawarden/internal/rewrite"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(NewExecutors),
	fx.Provide(NewRecentSink),
	fx.Provide(NewAuditSink),
	fx.Provide(NewPolicyStore),
	fx.Provide(authz.NewGate),
	fx.Provide(rewrite.NewRewriter),
	fx.Provide(dispatch.NewHistory),
	fx.Provide(dispatch.NewDispatcher),
	fx.Invoke(func(lc fx.Lifecycle, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return executor.Shutdown(ctx)
			},
		})
	}),
)

// NewRecentSink builds the bounded in-memory tail served to operators.
func NewRecentSink(cfg audit.Config) *audit.MemorySink {
	return audit.NewMemorySink(cfg.RecentCapacity)
}

// NewAuditSink fans every event out to the log and the in-memory tail.
func NewAuditSink(logger *log.Logger, recent *audit.MemorySink) audit.Sink {
	return audit.MultiSink{audit.NewLogSink(logger), recent}
}

func NewPolicyStore(cfg authz.Config) (*authz.Store, error) {
	return authz.NewStore(cfg)
}
