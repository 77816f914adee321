package model

import "errors"

// Sentinel errors for itinerary invariant checks (spec.md §3, §8).
var (
	ErrDuplicateStopID  = errors.New("model: duplicate stop id")
	ErrFirstStopDropped = errors.New("model: first stop must not be DROPPED")
	ErrMissingDropReason = errors.New("model: dropped stop missing dropReason")
	ErrLegUnknownStop   = errors.New("model: leg references unknown stop id")
	ErrEmptyPreferredModes = errors.New("model: preferredModes must be non-empty")
)

// Validate checks the structural invariants from spec.md §3's Stop/Leg/Itinerary rows.
func (it *Itinerary) Validate() error {
	seen := make(map[string]struct{}, len(it.Stops))
	for i, s := range it.Stops {
		if _, dup := seen[s.ID]; dup {
			return ErrDuplicateStopID
		}
		seen[s.ID] = struct{}{}
		if i == 0 && s.Status == StopDropped {
			return ErrFirstStopDropped
		}
		if s.Status == StopDropped && s.DropReason == "" {
			return ErrMissingDropReason
		}
	}
	for _, l := range it.Legs {
		if _, ok := seen[l.FromStopID]; !ok {
			return ErrLegUnknownStop
		}
		if _, ok := seen[l.ToStopID]; !ok {
			return ErrLegUnknownStop
		}
	}
	if len(it.User.PreferredModes) == 0 {
		return ErrEmptyPreferredModes
	}
	return nil
}
