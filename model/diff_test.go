package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"elasticreplan/model"
)

func mkItinerary(legs []*model.Leg, totalCost int) *model.Itinerary {
	return &model.Itinerary{
		ID:           "it-1",
		Version:      1,
		Legs:         legs,
		TotalCost:    totalCost,
		ProjectedETA: time.Unix(1000, 0),
	}
}

func TestBuildDiffPartitionsNewAndChanged(t *testing.T) {
	old := mkItinerary([]*model.Leg{
		{FromStopID: "a", ToStopID: "b", Mode: model.Walking, CostCents: 100, DurationSec: 60},
	}, 100)

	next := mkItinerary([]*model.Leg{
		{FromStopID: "a", ToStopID: "b", Mode: model.Transit, CostCents: 150, DurationSec: 90},
		{FromStopID: "b", ToStopID: "c", Mode: model.Walking, CostCents: 0, DurationSec: 30},
	}, 150)

	diff := model.BuildDiff(old, next, nil)

	assert.Len(t, diff.ChangedLegs, 1)
	assert.Equal(t, "a", diff.ChangedLegs[0].FromStopID)
	assert.Len(t, diff.NewLegs, 1)
	assert.Equal(t, "c", diff.NewLegs[0].ToStopID)
	assert.Equal(t, 50, diff.CostDelta)
}

func TestBuildDiffIgnoresPolylineOnlyChange(t *testing.T) {
	old := mkItinerary([]*model.Leg{
		{FromStopID: "a", ToStopID: "b", Mode: model.Walking, CostCents: 100, DurationSec: 60, Polyline: "old"},
	}, 100)
	next := mkItinerary([]*model.Leg{
		{FromStopID: "a", ToStopID: "b", Mode: model.Walking, CostCents: 100, DurationSec: 60, Polyline: "new"},
	}, 100)

	diff := model.BuildDiff(old, next, nil)

	assert.Empty(t, diff.ChangedLegs)
	assert.Empty(t, diff.NewLegs)
}

func TestValidateRejectsDuplicateStopID(t *testing.T) {
	it := &model.Itinerary{
		Stops: []*model.Stop{
			{ID: "s1", Status: model.StopPending},
			{ID: "s1", Status: model.StopPending},
		},
		User: model.UserConstraints{PreferredModes: []model.Mode{model.Walking}},
	}
	assert.ErrorIs(t, it.Validate(), model.ErrDuplicateStopID)
}

func TestValidateRejectsFirstStopDropped(t *testing.T) {
	it := &model.Itinerary{
		Stops: []*model.Stop{
			{ID: "s1", Status: model.StopDropped, DropReason: "x"},
		},
		User: model.UserConstraints{PreferredModes: []model.Mode{model.Walking}},
	}
	assert.ErrorIs(t, it.Validate(), model.ErrFirstStopDropped)
}

func TestItineraryCloneIsIndependent(t *testing.T) {
	it := mkItinerary([]*model.Leg{
		{FromStopID: "a", ToStopID: "b", CostCents: 10},
	}, 10)
	it.Stops = []*model.Stop{{ID: "a"}, {ID: "b"}}

	clone := it.Clone()
	clone.Legs[0].CostCents = 999
	clone.Stops[0].Name = "changed"

	assert.Equal(t, 10, it.Legs[0].CostCents)
	assert.Equal(t, "", it.Stops[0].Name)
}
