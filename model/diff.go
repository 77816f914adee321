package model

// Diff describes what changed between an input itinerary and its replan.
// The two leg sets partition the change with no duplication: a leg
// belongs to at most one of NewLegs/ChangedLegs (spec.md §3).
type Diff struct {
	DroppedStops []*Stop `json:"droppedStops"`
	NewLegs      []*Leg  `json:"newLegs"`
	ChangedLegs  []*Leg  `json:"changedLegs"`
	CostDelta    int     `json:"costDelta"`
	EtaDelta     int64   `json:"etaDelta"` // seconds
}

// legChanged reports whether two legs sharing endpoints differ in the
// fields spec.md §3 calls out: mode, cost, or duration. Polyline-only
// differences are deliberately ignored (spec.md §9 Open Question (a)).
func legChanged(old, next *Leg) bool {
	return old.Mode != next.Mode || old.CostCents != next.CostCents || old.DurationSec != next.DurationSec
}

// BuildDiff partitions next's legs against old's by endpoint pair and
// computes cost/eta deltas. droppedStops is supplied by the caller since
// it spans drops applied in two different pipeline stages (stage 1 and
// stage 5) that BuildDiff itself has no visibility into.
func BuildDiff(old, next *Itinerary, droppedStops []*Stop) *Diff {
	oldByPair := old.LegsByPair()
	diff := &Diff{
		DroppedStops: droppedStops,
		NewLegs:      make([]*Leg, 0),
		ChangedLegs:  make([]*Leg, 0),
		CostDelta:    next.TotalCost - old.TotalCost,
		EtaDelta:     int64(next.ProjectedETA.Sub(old.ProjectedETA).Seconds()),
	}
	for _, l := range next.Legs {
		prior, existed := oldByPair[l.PairOf()]
		switch {
		case !existed:
			diff.NewLegs = append(diff.NewLegs, l)
		case legChanged(prior, l):
			diff.ChangedLegs = append(diff.ChangedLegs, l)
		}
	}
	return diff
}
