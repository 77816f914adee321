// Package friction implements the Friction Scorer component (spec.md
// §4.4): classify each leg of a candidate itinerary by congestion risk
// and flag proactive alerts for high-risk legs departing soon.
package friction

import (
	"context"
	"time"

	"elasticreplan/model"
)

// Scored is the per-leg outcome of a scoring pass.
type Scored struct {
	LegIndex int
	Score    float64
	Level    model.FrictionLevel
}

// Alert is a proactive warning surfaced when a leg scores HIGH and its
// estimated departure is still at least 5 minutes away.
type Alert struct {
	LegIndex     int
	Score        float64
	Level        model.FrictionLevel
	DepartureIn  time.Duration
	Message      string
}

// Scorer is the shared contract for both the mock heuristic and the
// ML-backed implementation; the replan pipeline depends only on this
// interface so the two are interchangeable at wiring time.
type Scorer interface {
	Score(ctx context.Context, legs []*model.Leg, now time.Time) ([]Scored, error)
}

// Level maps a raw score to its categorical bucket per spec.md §4.4:
// below 0.3 is LOW, at or below 0.7 is MEDIUM, above 0.7 is HIGH.
func Level(score float64) model.FrictionLevel {
	switch {
	case score < 0.3:
		return model.FrictionLow
	case score <= 0.7:
		return model.FrictionMedium
	default:
		return model.FrictionHigh
	}
}

// ApplyAndAlert scores every leg of legs in place, setting its friction
// fields, and returns proactive alerts for HIGH legs departing at least
// 5 minutes out. Cumulative departure offsets are estimated by summing
// preceding leg durations, mirroring the original score_itinerary pass.
func ApplyAndAlert(ctx context.Context, scorer Scorer, legs []*model.Leg, now time.Time) ([]Alert, error) {
	scored, err := scorer.Score(ctx, legs, now)
	if err != nil {
		return nil, err
	}

	var alerts []Alert
	cumulative := time.Duration(0)
	for _, s := range scored {
		if s.LegIndex < 0 || s.LegIndex >= len(legs) {
			continue
		}
		leg := legs[s.LegIndex]
		leg.SetFriction(s.Score, s.Level)

		departureIn := cumulative
		if s.Level == model.FrictionHigh && departureIn >= 5*time.Minute {
			alerts = append(alerts, Alert{
				LegIndex:    s.LegIndex,
				Score:       s.Score,
				Level:       s.Level,
				DepartureIn: departureIn,
				Message:     alertMessage(leg, departureIn),
			})
		}
		cumulative += time.Duration(leg.DurationSec) * time.Second
	}
	return alerts, nil
}

func alertMessage(leg *model.Leg, departureIn time.Duration) string {
	return "High congestion risk on " + string(leg.Mode) + " leg " +
		leg.FromStopID + " to " + leg.ToStopID + ", departing in ~" +
		departureIn.Round(time.Minute).String() + ". Consider an alternative mode."
}
