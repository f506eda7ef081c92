package horoscope

import "go.uber.org/fx"

// Module exposes the horoscope service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
