package model

import "time"

// DisruptionType selects which fields of a DisruptionEvent are meaningful;
// unused fields for a given type are ignored (spec.md §3).
type DisruptionType string

const (
	TransitDelay     DisruptionType = "TRANSIT_DELAY"
	LineCancellation DisruptionType = "LINE_CANCELLATION"
	VenueClosed      DisruptionType = "VENUE_CLOSED"
	Weather          DisruptionType = "WEATHER"
)

// Severity grades how disruptive an event is.
type Severity string

const (
	Minor    Severity = "MINOR"
	Major    Severity = "MAJOR"
	Critical Severity = "CRITICAL"
)

// DisruptionEvent describes an external event forcing a replan.
type DisruptionEvent struct {
	ID             string         `json:"id"`
	Type           DisruptionType `json:"type"`
	Severity       Severity       `json:"severity"`
	AffectedModes  []Mode         `json:"affectedModes,omitempty"`
	AffectedRoutes []string       `json:"affectedRoutes,omitempty"`
	AffectedStopID string         `json:"affectedStopId,omitempty"`
	DelayMinutes   int            `json:"delayMinutes,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Source         string         `json:"source,omitempty"`
}

// AffectsMode reports whether mode appears in AffectedModes.
func (e *DisruptionEvent) AffectsMode(m Mode) bool {
	for _, am := range e.AffectedModes {
		if am == m {
			return true
		}
	}
	return false
}

// routeKey is the "{from}->{to}" key format used by AffectedRoutes (spec.md §4.5).
func routeKey(from, to string) string {
	return from + "->" + to
}

// AffectsRoute reports whether the from->to key appears in AffectedRoutes.
func (e *DisruptionEvent) AffectsRoute(from, to string) bool {
	key := routeKey(from, to)
	for _, r := range e.AffectedRoutes {
		if r == key {
			return true
		}
	}
	return false
}
