package replan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"elasticreplan/model"
	"elasticreplan/replan"
)

func TestDemoBypassDropsRooftopBarAndInsertsFixedLegs(t *testing.T) {
	itin := &model.Itinerary{
		ID:      "demo-maya-001",
		Version: 1,
		Stops: []*model.Stop{
			{ID: "home", Status: model.StopPending, Priority: model.MustVisit},
			{ID: "farmers-market", Status: model.StopPending, Priority: model.MustVisit},
			{ID: "art-museum", Status: model.StopPending, Priority: model.MustVisit},
			{ID: "rooftop-bar", Status: model.StopPending, Priority: model.NiceToHave},
		},
		Legs: []*model.Leg{
			{FromStopID: "home", ToStopID: "farmers-market", Mode: model.Transit, CostCents: 300, DurationSec: 900},
		},
	}
	event := &model.DisruptionEvent{Type: model.LineCancellation}

	next, diff, meta, err := replan.DemoBypass{}.Replan(context.Background(), itin, event)
	assert.NoError(t, err)
	assert.Equal(t, "demo_hardcoded", meta.Solver)
	assert.Equal(t, 1, meta.StopsDropped)
	assert.Equal(t, model.StopDropped, next.GetStop("rooftop-bar").Status)

	assert.Len(t, next.Legs, 3)
	assert.Equal(t, "home", next.Legs[0].FromStopID)
	assert.Equal(t, model.EBike, next.Legs[1].Mode)
	assert.Equal(t, model.Rideshare, next.Legs[2].Mode)
	assert.Equal(t, 300+500+750, next.TotalCost)
	assert.Equal(t, int64(5*60), diff.EtaDelta)

	assert.Equal(t, 1, itin.Version, "caller's itinerary must never be mutated")
}
