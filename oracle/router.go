package oracle

import (
	"context"

	"elasticreplan/model"
)

// Router dispatches to a mode-specific Oracle. Which concrete Oracle
// backs which mode is an internal routing decision, invisible to the
// Matrix Fan-Out and the solver (spec.md §4.2) — they only ever see the
// Router's aggregate Directions behavior through Oracle itself.
type Router struct {
	byMode map[model.Mode]Oracle
	def    Oracle
}

// NewRouter builds a Router from a default oracle and a set of
// mode-specific overrides (e.g. a dedicated transit oracle, an e-bike
// oracle), generalizing the teacher's per-BusType dispatch in
// model.BuildFleetBuses into a per-Mode dispatch.
func NewRouter(def Oracle, byMode map[model.Mode]Oracle) *Router {
	return &Router{byMode: byMode, def: def}
}

// Directions satisfies Oracle by delegating to the mode-specific oracle,
// or the default if none is registered for mode.
func (r *Router) Directions(ctx context.Context, origin, destination model.Coord, mode model.Mode) (Result, error) {
	if o, ok := r.byMode[mode]; ok {
		return o.Directions(ctx, origin, destination, mode)
	}
	return r.def.Directions(ctx, origin, destination, mode)
}
