package replan

import (
	"context"

	"elasticreplan/model"
)

// DemoBypass is the deterministic escape hatch from spec.md §4.5's
// "Deterministic demo bypass" paragraph, grounded on
// _examples/original_source/backend/engine/elastic_replan.py's
// hardcoded_maya_replan: a fixed, reproducible result for demos,
// unconditionally returned regardless of what the matrices or solver
// would otherwise produce. This is a design-level escape hatch, not an
// optimization.
type DemoBypass struct{}

func (DemoBypass) Replan(_ context.Context, itin *model.Itinerary, _ *model.DisruptionEvent) (*model.Itinerary, *model.Diff, Meta, error) {
	next := itin.Clone()
	next.Version = itin.Version + 1
	next.Status = model.Replanning

	var dropped []*model.Stop
	for _, s := range next.Stops {
		if s.ID == "rooftop-bar" {
			s.Drop("Rooftop Bar removed — insufficient budget after e-bike reroute")
			dropped = append(dropped, s)
		}
	}

	ebikeLeg := &model.Leg{
		FromStopID:  "farmers-market",
		ToStopID:    "art-museum",
		Mode:        model.EBike,
		CostCents:   500,
		DurationSec: 1200,
		Available:   true,
		Polyline:    "ier~F~achVcAeAkAy@oAs@qAi@sA_@uAOuA@sAP",
	}
	ebikeLeg.SetFriction(0.45, model.FrictionMedium)

	rideshareLeg := &model.Leg{
		FromStopID:  "art-museum",
		ToStopID:    "home",
		Mode:        model.Rideshare,
		CostCents:   750,
		DurationSec: 1500,
		Available:   true,
		Polyline:    "qmr~Ft_chVdBnCjBjCdBrB~@pA`@fBXrBJpBCnBQlB",
	}
	rideshareLeg.SetFriction(0.22, model.FrictionLow)

	newLegs := make([]*model.Leg, 0, 3)
	if first := itin.LegBetween("home", "farmers-market"); first != nil {
		newLegs = append(newLegs, first.Clone())
	}
	newLegs = append(newLegs, ebikeLeg, rideshareLeg)

	next.Legs = newLegs
	next.RecomputeTotalCost()

	diff := model.BuildDiff(itin, next, dropped)
	diff.EtaDelta = 5 * 60

	meta := Meta{
		PipelineMs:   0,
		Solver:       "demo_hardcoded",
		StopsDropped: len(dropped),
		Version:      next.Version,
		StepTimings: StepTimings{
			"step1_graph_update":    0,
			"step2_leg_invalidation": 0,
			"step3_api_fanout":      0,
			"step4_solver":          0,
			"step5_stop_drop":       0,
			"step6_diff":            0,
			"step7_emit":            0,
		},
	}
	return next, diff, meta, nil
}

// Dispatcher selects between the full Pipeline and DemoBypass by session
// id and event type, matching spec.md §4.5's "Deterministic demo bypass"
// rule exactly.
type Dispatcher struct {
	Real          ReplanStrategy
	Bypass        ReplanStrategy
	DemoSessionID string
}

func (d Dispatcher) Replan(ctx context.Context, itin *model.Itinerary, event *model.DisruptionEvent) (*model.Itinerary, *model.Diff, Meta, error) {
	if d.DemoSessionID != "" && itin.ID == d.DemoSessionID && event.Type == model.LineCancellation {
		return d.Bypass.Replan(ctx, itin, event)
	}
	return d.Real.Replan(ctx, itin, event)
}
