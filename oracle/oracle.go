// Package oracle implements the Route Oracle (spec.md §4.1): given an
// origin, a destination, and a transport mode, return a cost/duration
// estimate for that edge. Every implementation is safely callable
// concurrently. The offline, HTTP and demo-aware oracles never return an
// error — on timeout, connection error, or non-ok upstream response the
// HTTP oracle falls back to a deterministic offline estimate, since
// returning a leg is always preferable to aborting a replan. The caching
// decorator and Router pass on whatever error their delegate returns.
package oracle

import (
	"context"

	"elasticreplan/model"
)

// Result is what a Route Oracle call returns for one (origin, destination, mode) triple.
type Result struct {
	CostCents   int
	DurationSec int
	Polyline    string
	Available   bool
}

// Oracle is the Route Oracle contract (spec.md §4.1).
type Oracle interface {
	Directions(ctx context.Context, origin, destination model.Coord, mode model.Mode) (Result, error)
}

// rate is cents per metre, by mode. Unknown modes use defaultRate.
// Fixed part of the design (spec.md §4.1) — never configurable.
var rate = map[model.Mode]float64{
	model.Walking:   0,
	model.Transit:   0.003,
	model.EBike:     0.005,
	model.Rideshare: 0.012,
}

const defaultRate = 0.005

// speed is metres/second, by mode, used by the offline fallback.
var speed = map[model.Mode]float64{
	model.Walking:   1.4,
	model.Transit:   12.0,
	model.EBike:     5.5,
	model.Rideshare: 10.0,
}

const defaultSpeed = 5.0

func rateFor(m model.Mode) float64 {
	if r, ok := rate[m]; ok {
		return r
	}
	return defaultRate
}

func speedFor(m model.Mode) float64 {
	if s, ok := speed[m]; ok {
		return s
	}
	return defaultSpeed
}

// costFromDistance applies the rate table to a distance in metres.
func costFromDistance(distanceM float64, mode model.Mode) int {
	return int(distanceM * rateFor(mode))
}
