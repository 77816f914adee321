// Package store implements the optional session key-value store named in
// spec.md §6. It is a named external collaborator, not part of the
// elastic replan core: the core only ever sees the Store interface, and
// cache misses or store outages must never surface as errors (spec.md §4.1,
// §6). The concrete implementation is a thin wrapper over
// github.com/redis/go-redis/v9, matching the session store the original
// Python implementation used (original_source/backend/redis/state.py and
// state_manager.py).
package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"elasticreplan/model"
)

// TTL is the expiry applied to every key this package writes (spec.md §6).
const TTL = 24 * time.Hour

// Store is the session key-value contract the core depends on. No method
// returns an error: a disconnected or errored backend makes reads report
// a zero value and false, and makes writes do nothing — callers never
// need to distinguish "miss" from "store unreachable".
type Store interface {
	GetDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode) (CachedLeg, bool)
	PutDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode, leg CachedLeg)

	GetItinerary(ctx context.Context, sessionID string) (*model.Itinerary, bool)
	PutItinerary(ctx context.Context, sessionID string, it *model.Itinerary)
	GetPreviousItinerary(ctx context.Context, sessionID string) (*model.Itinerary, bool)

	GetLegGraph(ctx context.Context, sessionID, from, to string, mode model.Mode) (CachedLeg, bool)
	PutLegGraph(ctx context.Context, sessionID, from, to string, mode model.Mode, leg CachedLeg)

	PushDisruption(ctx context.Context, sessionID string, event *model.DisruptionEvent)
}

// CachedLeg is what gets persisted under a directions:{h1}:{h2}:{mode} key.
type CachedLeg struct {
	CostCents   int    `json:"costCents"`
	DurationSec int    `json:"durationSec"`
	Available   bool   `json:"available"`
	Polyline    string `json:"polyline"`
}

// hashCoord hashes a coordinate truncated to six decimals, per spec.md §4.1's
// "h hashes lat,lng truncated to six decimals" cache key rule.
func hashCoord(c model.Coord) string {
	s := fmt.Sprintf("%.6f,%.6f", math.Trunc(c.Lat*1e6)/1e6, math.Trunc(c.Lng*1e6)/1e6)
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:8])
}

// DirectionsKey builds the directions:{h1}:{h2}:{mode} key (spec.md §6).
func DirectionsKey(origin, destination model.Coord, mode model.Mode) string {
	return fmt.Sprintf("directions:%s:%s:%s", hashCoord(origin), hashCoord(destination), mode)
}

// ItineraryKey builds the itinerary:{sessionId} key.
func ItineraryKey(sessionID string) string { return "itinerary:" + sessionID }

// PreviousItineraryKey builds the itinerary:{sessionId}:prev key, the slot
// that makes POST /v1/replan/undo possible (spec.md §6).
func PreviousItineraryKey(sessionID string) string { return "itinerary:" + sessionID + ":prev" }

// LegGraphKey builds the graph:{sessionId}:leg:{from}:{to}:{mode} key
// recovered from original_source/backend/redis/state.py, supplementing
// spec.md's three named key shapes with the session-scoped graph override:
// a pinned cost/duration/availability for one edge of one session's plan,
// read by the Matrix Fan-Out ahead of querying the Route Oracle and
// written by the demo seeding tool (SPEC_FULL.md §6.4).
func LegGraphKey(sessionID, from, to string, mode model.Mode) string {
	return fmt.Sprintf("graph:%s:leg:%s:%s:%s", sessionID, from, to, mode)
}

// DisruptionsKey builds the disruptions:{sessionId} list key, recovered
// from original_source's LPUSH disruptions:{session_id}.
func DisruptionsKey(sessionID string) string { return "disruptions:" + sessionID }
