package oracle

import (
	"context"

	"elasticreplan/model"
)

// demoOracle short-circuits straight to the offline fallback when demoMode
// is enabled, skipping the network round trip entirely (spec.md §6
// Configuration: "the Route Oracle may short-circuit to the offline
// fallback without attempting an upstream call").
type demoOracle struct {
	delegate Oracle
	demoMode bool
}

// NewDemoAware wraps delegate so that, when demoMode is true, every call
// answers with the offline fallback instead of reaching delegate.
func NewDemoAware(delegate Oracle, demoMode bool) Oracle {
	return &demoOracle{delegate: delegate, demoMode: demoMode}
}

func (o *demoOracle) Directions(ctx context.Context, origin, destination model.Coord, mode model.Mode) (Result, error) {
	if o.demoMode {
		return Offline(origin, destination, mode), nil
	}
	return o.delegate.Directions(ctx, origin, destination, mode)
}
