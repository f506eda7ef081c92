package appleiap

import "go.uber.org/fx"

// Module exposes the App Store receipt verifier via Fx.
var Module = fx.Options(
	fx.Provide(NewVerifier),
)
