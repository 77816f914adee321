package replan

import (
	"elasticreplan/model"
)

// applyDisruption is stage 1 of the pipeline (spec.md §4.5), grounded on
// _examples/original_source/backend/engine/elastic_replan.py's
// apply_disruption. It mutates the working copy in place.
func applyDisruption(itin *model.Itinerary, event *model.DisruptionEvent) {
	switch event.Type {
	case model.TransitDelay:
		for _, leg := range itin.Legs {
			affectedByMode := event.AffectsMode(leg.Mode)
			if affectedByMode && leg.Available {
				leg.DurationSec += event.DelayMinutes * 60
			}
			if event.AffectsRoute(leg.FromStopID, leg.ToStopID) {
				leg.Disable()
			}
		}
	case model.LineCancellation:
		for _, leg := range itin.Legs {
			if event.AffectsMode(leg.Mode) || event.AffectsRoute(leg.FromStopID, leg.ToStopID) {
				leg.Disable()
			}
		}
	case model.VenueClosed:
		if event.AffectedStopID == "" {
			return
		}
		for _, s := range itin.Stops {
			if s.ID == event.AffectedStopID && s.Status == model.StopPending {
				s.Drop("Venue closed (disruption " + event.ID + ")")
			}
		}
		for _, leg := range itin.Legs {
			if leg.FromStopID == event.AffectedStopID || leg.ToStopID == event.AffectedStopID {
				leg.Disable()
			}
		}
	case model.Weather:
		if event.Severity == model.Major || event.Severity == model.Critical {
			for _, leg := range itin.Legs {
				if leg.Mode == model.Walking || leg.Mode == model.EBike {
					leg.Disable()
				}
			}
		}
	}
}
