package oracle

import (
	"context"

	"elasticreplan/model"
	"elasticreplan/store"

	"go.uber.org/zap"
)

// cacheBackend is the slice of store.Store the caching oracle needs. It is
// expressed as its own tiny interface so oracle never imports the full
// store.Store surface (itinerary keys, disruption lists) it has no use for.
type cacheBackend interface {
	GetDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode) (store.CachedLeg, bool)
	PutDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode, leg store.CachedLeg)
}

// cachingOracle consults the session store before delegating, persisting
// results with the 24h expiry spec.md §4.1 requires. Cache faults never
// propagate: a store miss or error simply falls through to delegate.
type cachingOracle struct {
	delegate Oracle
	cache    cacheBackend
	log      *zap.SugaredLogger
}

// NewCaching wraps delegate with an optional session-scoped cache.
func NewCaching(delegate Oracle, cache cacheBackend, log *zap.SugaredLogger) Oracle {
	if cache == nil {
		return delegate
	}
	return &cachingOracle{delegate: delegate, cache: cache, log: log}
}

func (o *cachingOracle) Directions(ctx context.Context, origin, destination model.Coord, mode model.Mode) (Result, error) {
	if leg, ok := o.cache.GetDirections(ctx, origin, destination, mode); ok {
		return Result{CostCents: leg.CostCents, DurationSec: leg.DurationSec, Available: leg.Available, Polyline: leg.Polyline}, nil
	}
	res, err := o.delegate.Directions(ctx, origin, destination, mode)
	if err != nil {
		return res, err
	}
	o.cache.PutDirections(ctx, origin, destination, mode, store.CachedLeg{
		CostCents: res.CostCents, DurationSec: res.DurationSec, Available: res.Available, Polyline: res.Polyline,
	})
	return res, nil
}
