package oracle

import (
	"context"
	"math"

	"elasticreplan/model"
)

// metresPerDegree converts a flat-earth degree delta to metres, per spec.md §4.1.
const metresPerDegree = 111320.0

// straightLineDistanceM approximates distance as sqrt(Δlat²+Δlng²)·111320,
// a pure function of its inputs as required by spec.md §4.1 and §7.
func straightLineDistanceM(origin, destination model.Coord) float64 {
	dLat := destination.Lat - origin.Lat
	dLng := destination.Lng - origin.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * metresPerDegree
}

// Offline computes the deterministic offline fallback estimate (spec.md §4.1).
// It never errors and never consults the network.
func Offline(origin, destination model.Coord, mode model.Mode) Result {
	distanceM := straightLineDistanceM(origin, destination)
	durationSec := distanceM / speedFor(mode)
	if durationSec < 60 {
		durationSec = 60
	}
	return Result{
		CostCents:   costFromDistance(distanceM, mode),
		DurationSec: int(durationSec),
		Available:   true,
	}
}

// offlineOracle is an Oracle backed purely by Offline; it never calls upstream.
type offlineOracle struct{}

// NewOffline returns an Oracle that always answers with the offline fallback.
func NewOffline() Oracle { return offlineOracle{} }

func (offlineOracle) Directions(_ context.Context, origin, destination model.Coord, mode model.Mode) (Result, error) {
	return Offline(origin, destination, mode), nil
}
