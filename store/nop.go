package store

import (
	"context"

	"elasticreplan/model"
)

// NopStore is a Store that never caches anything; every read is a miss and
// every write is discarded. It backs the "session store disabled" mode
// used by the fallback-determinism test (spec.md §8) and any deployment
// that runs without Redis configured.
type NopStore struct{}

func (NopStore) GetDirections(context.Context, model.Coord, model.Coord, model.Mode) (CachedLeg, bool) {
	return CachedLeg{}, false
}
func (NopStore) PutDirections(context.Context, model.Coord, model.Coord, model.Mode, CachedLeg) {}

func (NopStore) GetItinerary(context.Context, string) (*model.Itinerary, bool)         { return nil, false }
func (NopStore) PutItinerary(context.Context, string, *model.Itinerary)                {}
func (NopStore) GetPreviousItinerary(context.Context, string) (*model.Itinerary, bool) { return nil, false }

func (NopStore) GetLegGraph(context.Context, string, string, string, model.Mode) (CachedLeg, bool) {
	return CachedLeg{}, false
}
func (NopStore) PutLegGraph(context.Context, string, string, string, model.Mode, CachedLeg) {}

func (NopStore) PushDisruption(context.Context, string, *model.DisruptionEvent) {}
