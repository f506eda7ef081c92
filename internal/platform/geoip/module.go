package geoip

import "go.uber.org/fx"

// Module exposes the geolocation client via Fx.
var Module = fx.Options(
	fx.Provide(NewClient),
)
