package model

import "time"

// ItineraryStatus tracks an itinerary's lifecycle.
type ItineraryStatus string

const (
	Active      ItineraryStatus = "ACTIVE"
	Replanning  ItineraryStatus = "REPLANNING"
	Completed   ItineraryStatus = "COMPLETED"
)

// Itinerary is an ordered multi-stop journey plan. Once constructed it is
// treated as immutable by the core: a replan materializes a new value with
// Version+1 rather than mutating this one. See Clone.
type Itinerary struct {
	ID           string          `json:"id"`
	Version      int             `json:"version"`
	User         UserConstraints `json:"user"`
	Stops        []*Stop         `json:"stops"`
	Legs         []*Leg          `json:"legs"`
	TotalCost    int             `json:"totalCost"`
	ProjectedETA time.Time       `json:"projectedETA"`
	Status       ItineraryStatus `json:"status"`
}

// GetStop returns the stop with the given id, or nil.
func (it *Itinerary) GetStop(id string) *Stop {
	for _, s := range it.Stops {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// IndexOfStop returns the index of stop id within Stops, or -1.
func (it *Itinerary) IndexOfStop(id string) int {
	for i, s := range it.Stops {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// LegBetween returns the leg from->to, or nil if no such leg exists.
func (it *Itinerary) LegBetween(from, to string) *Leg {
	for _, l := range it.Legs {
		if l.FromStopID == from && l.ToStopID == to {
			return l
		}
	}
	return nil
}

// LegsByPair indexes Legs by endpoint pair for diffing against a new itinerary.
func (it *Itinerary) LegsByPair() map[Pair]*Leg {
	out := make(map[Pair]*Leg, len(it.Legs))
	for _, l := range it.Legs {
		out[l.PairOf()] = l
	}
	return out
}

// ActiveStops returns the stops with Status == PENDING, preserving order.
func (it *Itinerary) ActiveStops() []*Stop {
	out := make([]*Stop, 0, len(it.Stops))
	for _, s := range it.Stops {
		if s.Status == StopPending {
			out = append(out, s)
		}
	}
	return out
}

// RecomputeTotalCost sums CostCents over the itinerary's current legs.
func (it *Itinerary) RecomputeTotalCost() {
	total := 0
	for _, l := range it.Legs {
		total += l.CostCents
	}
	it.TotalCost = total
}

// Clone returns a deep copy of the itinerary. The core's working copy
// during a replan is always obtained this way so the caller's input is
// never mutated (spec.md §3 Lifecycle, §9 "Deep-copy of the input itinerary").
func (it *Itinerary) Clone() *Itinerary {
	c := *it
	c.Stops = CloneStops(it.Stops)
	c.Legs = CloneLegs(it.Legs)
	c.User.PreferredModes = append([]Mode(nil), it.User.PreferredModes...)
	return &c
}
