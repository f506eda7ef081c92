package compatibility

import "go.uber.org/fx"

// Module exposes the compatibility service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
