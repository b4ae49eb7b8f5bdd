package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewToolRegistry),
	fx.Provide(NewQueryService),
	fx.Provide(NewToolService),
	fx.Provide(NewAuditService),
	fx.Provide(NewStatsReporter),
)
