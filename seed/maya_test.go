package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"elasticreplan/model"
	"elasticreplan/seed"
	"elasticreplan/store"
)

func TestBuildReturnsCanonicalSessionIDByDefault(t *testing.T) {
	it := seed.Build(false)
	assert.Equal(t, seed.SessionID, it.ID)
	assert.Len(t, it.Stops, 4)
	assert.Len(t, it.Legs, 3)
	assert.NoError(t, it.Validate())
}

func TestBuildAssignsFreshIDWhenRequested(t *testing.T) {
	a := seed.Build(true)
	b := seed.Build(true)
	assert.NotEqual(t, seed.SessionID, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuildKeepsFirstStopAsMustVisit(t *testing.T) {
	it := seed.Build(false)
	assert.Equal(t, model.MustVisit, it.Stops[0].Priority)
	assert.Equal(t, "home", it.Stops[0].ID)
}

func TestSeedWritesItineraryIntoStore(t *testing.T) {
	st := &recordingStore{}
	it := seed.Seed(context.Background(), st)
	assert.Equal(t, seed.SessionID, it.ID)
	assert.Equal(t, it, st.put)
}

func TestSeedPinsEveryLegAsAGraphOverride(t *testing.T) {
	st := &recordingStore{}
	it := seed.Seed(context.Background(), st)

	assert.Len(t, st.legs, len(it.Legs))
	for _, leg := range it.Legs {
		pinned, ok := st.GetLegGraph(context.Background(), it.ID, leg.FromStopID, leg.ToStopID, leg.Mode)
		assert.True(t, ok)
		assert.Equal(t, leg.CostCents, pinned.CostCents)
		assert.Equal(t, leg.DurationSec, pinned.DurationSec)
		assert.True(t, pinned.Available)
	}
}

type recordingStore struct {
	store.NopStore
	put  *model.Itinerary
	legs map[string]store.CachedLeg
}

func (r *recordingStore) PutItinerary(_ context.Context, _ string, it *model.Itinerary) {
	r.put = it
}

func (r *recordingStore) PutLegGraph(_ context.Context, sessionID, from, to string, mode model.Mode, leg store.CachedLeg) {
	if r.legs == nil {
		r.legs = make(map[string]store.CachedLeg)
	}
	r.legs[store.LegGraphKey(sessionID, from, to, mode)] = leg
}

func (r *recordingStore) GetLegGraph(_ context.Context, sessionID, from, to string, mode model.Mode) (store.CachedLeg, bool) {
	leg, ok := r.legs[store.LegGraphKey(sessionID, from, to, mode)]
	return leg, ok
}
