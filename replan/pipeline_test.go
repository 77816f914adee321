package replan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"elasticreplan/friction"
	"elasticreplan/model"
	"elasticreplan/oracle"
	"elasticreplan/replan"
	"elasticreplan/solver"
	"elasticreplan/store"
)

func threeStopItinerary() *model.Itinerary {
	return &model.Itinerary{
		ID:      "it-1",
		Version: 1,
		User: model.UserConstraints{
			BudgetCents:    100000,
			ReturnDeadline: time.Now().Add(2 * time.Hour),
			PreferredModes: []model.Mode{model.Walking},
		},
		Stops: []*model.Stop{
			{ID: "home", Lat: 37.77, Lng: -122.41, Priority: model.MustVisit, Status: model.StopPending},
			{ID: "market", Lat: 37.78, Lng: -122.40, Priority: model.NiceToHave, Status: model.StopPending},
			{ID: "museum", Lat: 37.79, Lng: -122.39, Priority: model.MustVisit, Status: model.StopPending},
		},
		Legs: []*model.Leg{
			{FromStopID: "home", ToStopID: "market", Mode: model.Walking, CostCents: 0, DurationSec: 600, Available: true},
			{FromStopID: "market", ToStopID: "museum", Mode: model.Walking, CostCents: 0, DurationSec: 600, Available: true},
		},
		Status: model.Active,
	}
}

func TestPipelineReplanProducesNewVersionAndDiff(t *testing.T) {
	itin := threeStopItinerary()
	p := &replan.Pipeline{
		Router:  oracle.NewOffline(),
		Solvers: []solver.Solver{solver.BranchAndBound{}, solver.Greedy{}},
		Scorer:  friction.Mock{},
		Now:     func() time.Time { return time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC) },
	}
	event := &model.DisruptionEvent{ID: "d1", Type: model.TransitDelay, DelayMinutes: 5}

	next, diff, meta, err := p.Replan(context.Background(), itin, event)
	assert.NoError(t, err)
	assert.Equal(t, 2, next.Version)
	assert.Equal(t, model.Replanning, next.Status)
	assert.NotNil(t, diff)
	assert.Equal(t, 1, itin.Version, "caller's itinerary must never be mutated")
	assert.NotEmpty(t, meta.Solver)
}

func TestPipelineReplanErrorsWhenFewerThanTwoActiveStops(t *testing.T) {
	itin := threeStopItinerary()
	itin.Stops[1].Drop("x")
	itin.Stops[2].Drop("x")
	p := &replan.Pipeline{
		Router:  oracle.NewOffline(),
		Solvers: []solver.Solver{solver.Greedy{}},
	}
	event := &model.DisruptionEvent{Type: model.Weather, Severity: model.Minor}

	_, _, _, err := p.Replan(context.Background(), itin, event)
	assert.ErrorIs(t, err, replan.ErrTooFewActiveStops)
}

func TestPipelineReplanDropsNiceToHaveStopUnderTightBudget(t *testing.T) {
	// market sits far from both home and museum, so routing through it is
	// far costlier than going home->museum directly; only dropping it fits
	// the budget.
	itin := &model.Itinerary{
		ID:      "it-3",
		Version: 1,
		User: model.UserConstraints{
			BudgetCents:    5,
			ReturnDeadline: time.Now().Add(2 * time.Hour),
			PreferredModes: []model.Mode{model.Rideshare},
		},
		Stops: []*model.Stop{
			{ID: "home", Lat: 37.0, Lng: -122.0, Priority: model.MustVisit, Status: model.StopPending},
			{ID: "market", Lat: 38.0, Lng: -121.0, Priority: model.NiceToHave, Status: model.StopPending},
			{ID: "museum", Lat: 37.001, Lng: -122.001, Priority: model.MustVisit, Status: model.StopPending},
		},
		Legs:   []*model.Leg{},
		Status: model.Active,
	}
	p := &replan.Pipeline{
		Router:  oracle.NewOffline(),
		Solvers: []solver.Solver{solver.BranchAndBound{}, solver.Greedy{}},
	}
	event := &model.DisruptionEvent{Type: model.Weather, Severity: model.Minor}

	_, _, meta, err := p.Replan(context.Background(), itin, event)
	assert.NoError(t, err)
	assert.Equal(t, 1, meta.StopsDropped)
	assert.Equal(t, 1, itin.Version, "caller's itinerary must never be mutated")
}

type pinnedLegStore struct {
	store.NopStore
	from, to string
	mode     model.Mode
	leg      store.CachedLeg
}

func (s pinnedLegStore) GetLegGraph(_ context.Context, _, from, to string, mode model.Mode) (store.CachedLeg, bool) {
	if from == s.from && to == s.to && mode == s.mode {
		return s.leg, true
	}
	return store.CachedLeg{}, false
}

func TestPipelineReplanUsesStoreLegGraphOverrideAheadOfOracle(t *testing.T) {
	itin := threeStopItinerary()
	p := &replan.Pipeline{
		Router:  oracle.NewOffline(),
		Solvers: []solver.Solver{solver.BranchAndBound{}, solver.Greedy{}},
		Scorer:  friction.Mock{},
		Store: pinnedLegStore{
			from: "home", to: "market", mode: model.Walking,
			leg: store.CachedLeg{CostCents: 777, DurationSec: 42, Available: true},
		},
		Now: func() time.Time { return time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC) },
	}
	event := &model.DisruptionEvent{ID: "d1", Type: model.TransitDelay, DelayMinutes: 5}

	next, _, _, err := p.Replan(context.Background(), itin, event)
	assert.NoError(t, err)

	var found bool
	for _, leg := range next.Legs {
		if leg.FromStopID == "home" && leg.ToStopID == "market" {
			found = true
			assert.Equal(t, 777, leg.CostCents)
			assert.Equal(t, 42, leg.DurationSec)
		}
	}
	assert.True(t, found, "expected the home->market leg to survive routing")
}

type stubRouterFixedResult struct{}

func (stubRouterFixedResult) Directions(context.Context, model.Coord, model.Coord, model.Mode) (oracle.Result, error) {
	return oracle.Offline(model.Coord{}, model.Coord{Lat: 1}, model.Walking), nil
}

func TestPipelineReplanInfeasibleWhenNothingLeftToDrop(t *testing.T) {
	itin := &model.Itinerary{
		ID:      "it-2",
		Version: 1,
		User: model.UserConstraints{
			BudgetCents:    0,
			ReturnDeadline: time.Now().Add(time.Hour),
			PreferredModes: []model.Mode{model.Walking},
		},
		Stops: []*model.Stop{
			{ID: "home", Priority: model.MustVisit, Status: model.StopPending},
			{ID: "museum", Priority: model.MustVisit, Status: model.StopPending},
		},
		Legs:   []*model.Leg{},
		Status: model.Active,
	}
	p := &replan.Pipeline{
		Router:  stubRouterFixedResult{},
		Solvers: []solver.Solver{alwaysInfeasible{}},
	}
	event := &model.DisruptionEvent{Type: model.Weather, Severity: model.Minor}

	_, _, _, err := p.Replan(context.Background(), itin, event)
	assert.ErrorIs(t, err, replan.ErrInfeasible)
}

type alwaysInfeasible struct{}

func (alwaysInfeasible) Solve(int, [][]int, [][]int, int, int) solver.Result { return solver.Infeasible }

func TestDispatcherRoutesDemoSessionLineCancellationToBypass(t *testing.T) {
	d := replan.Dispatcher{
		Real:          recordingStrategy{},
		Bypass:        replan.DemoBypass{},
		DemoSessionID: "demo-maya-001",
	}
	itin := &model.Itinerary{ID: "demo-maya-001", Version: 1}
	event := &model.DisruptionEvent{Type: model.LineCancellation}

	next, _, meta, err := d.Replan(context.Background(), itin, event)
	assert.NoError(t, err)
	assert.Equal(t, "demo_hardcoded", meta.Solver)
	assert.Equal(t, 2, next.Version)
}

func TestDispatcherRoutesNonDemoSessionToRealStrategy(t *testing.T) {
	real := recordingStrategy{}
	d := replan.Dispatcher{Real: real, Bypass: replan.DemoBypass{}, DemoSessionID: "demo-maya-001"}
	itin := &model.Itinerary{ID: "some-other-session", Version: 1}
	event := &model.DisruptionEvent{Type: model.LineCancellation}

	_, _, meta, err := d.Replan(context.Background(), itin, event)
	assert.NoError(t, err)
	assert.Equal(t, "REAL", meta.Solver)
}

type recordingStrategy struct{}

func (recordingStrategy) Replan(context.Context, *model.Itinerary, *model.DisruptionEvent) (*model.Itinerary, *model.Diff, replan.Meta, error) {
	return &model.Itinerary{}, &model.Diff{}, replan.Meta{Solver: "REAL"}, nil
}
