package api

import (
	"go.uber.org/fx"
)

var Module = fx.Module("api",
	fx.Provide(NewQueryHandlers),
	fx.Provide(NewToolHandlers),
	fx.Provide(NewAuditHandlers),
	fx.Provide(NewSystemHandlers),
)
