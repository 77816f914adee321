// Package seed builds Maya's canonical demo itinerary (spec.md §6,
// SPEC_FULL.md §6.6), grounded on
// _examples/original_source/backend/api/demo_cache.py's MAYA_STOPS and
// MAYA_LEGS fixtures, and pushes it into the session store the way the
// teacher's model.LoadRouteFromReader builds a domain object from a
// fixed source — here the source is an in-repo literal instead of a
// file, since the fixture must stay byte-identical across runs.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"

	"elasticreplan/model"
	"elasticreplan/store"
)

// stopFixture is a (id, name, lat, lng) tuple from MAYA_STOPS.
type stopFixture struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

var mayaStops = []stopFixture{
	{ID: "home", Name: "Home", Lat: 37.7749, Lng: -122.4194},
	{ID: "farmers-market", Name: "Farmers Market", Lat: 37.7700, Lng: -122.4130},
	{ID: "art-museum", Name: "Art Museum", Lat: 37.7851, Lng: -122.4008},
	{ID: "rooftop-bar", Name: "Rooftop Bar", Lat: 37.7899, Lng: -122.4104},
}

// legFixture mirrors one MAYA_LEGS entry: a (from, to) pair and the
// transit leg OSRM/transit estimate used for the pre-disruption plan.
type legFixture struct {
	From, To    string
	Mode        model.Mode
	CostCents   int
	DurationSec int
}

var mayaLegs = []legFixture{
	{From: "home", To: "farmers-market", Mode: model.Transit, CostCents: 275, DurationSec: 900},
	{From: "farmers-market", To: "art-museum", Mode: model.Transit, CostCents: 300, DurationSec: 1080},
	{From: "art-museum", To: "rooftop-bar", Mode: model.Transit, CostCents: 250, DurationSec: 720},
}

// SessionID is the canonical demo session id matching config.DemoSessionID's
// default and the replan.Dispatcher's bypass check.
const SessionID = "demo-maya-001"

// Build constructs Maya's fixture itinerary fresh, with a new id if
// newID is true (useful for load-testing many independent demo
// sessions); otherwise it uses SessionID so the replan.Dispatcher's
// bypass fires against it.
func Build(newID bool) *model.Itinerary {
	id := SessionID
	if newID {
		id = uuid.NewString()
	}

	stops := make([]*model.Stop, 0, len(mayaStops))
	for i, sf := range mayaStops {
		priority := model.NiceToHave
		if i == 0 || sf.ID == "art-museum" {
			priority = model.MustVisit
		}
		stops = append(stops, &model.Stop{
			ID: sf.ID, Name: sf.Name, Lat: sf.Lat, Lng: sf.Lng,
			Priority: priority, Status: model.StopPending,
		})
	}

	legs := make([]*model.Leg, 0, len(mayaLegs))
	for _, lf := range mayaLegs {
		legs = append(legs, &model.Leg{
			FromStopID: lf.From, ToStopID: lf.To, Mode: lf.Mode,
			CostCents: lf.CostCents, DurationSec: lf.DurationSec, Available: true,
		})
	}

	it := &model.Itinerary{
		ID:      id,
		Version: 1,
		User: model.UserConstraints{
			BudgetCents:    2000,
			ReturnDeadline: time.Now().Add(3 * time.Hour),
			PreferredModes: []model.Mode{model.Transit, model.EBike, model.Rideshare},
		},
		Stops:  stops,
		Legs:   legs,
		Status: model.Active,
	}
	it.RecomputeTotalCost()
	it.ProjectedETA = time.Now().Add(45 * time.Minute)
	return it
}

// Seed writes Maya's fixture itinerary into sessionStore under its
// canonical key, the step the teacher's fixture-loading tools perform
// as a one-shot setup pass rather than at request time. It also pins
// every MAYA_LEGS edge as a session-scoped routing graph override
// (store.LegGraphKey), so a replan against the demo session sees the
// same fixture legs the Route Oracle would otherwise have to be asked
// for, recovered from
// _examples/original_source/backend/redis/state.py's save_leg_graph.
func Seed(ctx context.Context, sessionStore store.Store) *model.Itinerary {
	it := Build(false)
	sessionStore.PutItinerary(ctx, it.ID, it)
	for _, lf := range mayaLegs {
		sessionStore.PutLegGraph(ctx, it.ID, lf.From, lf.To, lf.Mode, store.CachedLeg{
			CostCents:   lf.CostCents,
			DurationSec: lf.DurationSec,
			Available:   true,
		})
	}
	return it
}
