// Package matrix implements the Matrix Fan-Out component (spec.md §4.2):
// given n active stops, issue every directed origin->destination query
// against the Route Oracle concurrently and assemble square cost/time
// matrices plus a per-edge detail map.
package matrix

import (
	"context"
	"sync"

	"elasticreplan/model"
	"elasticreplan/oracle"

	"golang.org/x/sync/errgroup"
)

// Matrices is the fan-out's output: square cost/time matrices indexed the
// same way as the stops slice passed to FanOut, plus detail and mode maps
// keyed by (i, j) carrying the leg detail (polyline, availability) and the
// queried mode the replan pipeline needs to reconstruct legs after solving.
type Matrices struct {
	Cost    [][]int
	Time    [][]int
	Details map[Pair]oracle.Result
	Modes   map[Pair]model.Mode
}

// Pair indexes the detail map by matrix position, not stop id — the
// solver and pipeline only ever deal in indices into the active-stops
// slice, keeping the matrix package decoupled from Itinerary.
type Pair struct{ I, J int }

// ModeFunc chooses which transport mode to query for the edge stops[i]->stops[j].
type ModeFunc func(i, j int) model.Mode

// OverrideFunc supplies a pinned result for the edge stops[i]->stops[j]
// ahead of querying the Route Oracle, the session-scoped "routing graph
// override" named in spec.md §6 (store.LegGraphKey). Returning ok=false
// falls through to the oracle as usual.
type OverrideFunc func(i, j int) (oracle.Result, bool)

// FanOut issues every i!=j directed query concurrently via an errgroup,
// waiting for all to complete (or degrade to the offline fallback) before
// returning. A single failed query degrades to the fallback leg for that
// pair only; it never aborts the batch (spec.md §4.2). override may be nil.
func FanOut(ctx context.Context, stops []*model.Stop, modeOf ModeFunc, router oracle.Oracle, override OverrideFunc) (*Matrices, error) {
	n := len(stops)
	out := &Matrices{
		Cost:    make([][]int, n),
		Time:    make([][]int, n),
		Details: make(map[Pair]oracle.Result, n*n),
		Modes:   make(map[Pair]model.Mode, n*n),
	}
	for i := range out.Cost {
		out.Cost[i] = make([]int, n)
		out.Time[i] = make([]int, n)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			i, j := i, j
			mode := modeOf(i, j)
			g.Go(func() error {
				var res oracle.Result
				if override != nil {
					if ov, ok := override(i, j); ok {
						res = ov
					} else {
						res = directionsOrFallback(gctx, router, stops[i], stops[j], mode)
					}
				} else {
					res = directionsOrFallback(gctx, router, stops[i], stops[j], mode)
				}
				mu.Lock()
				out.Cost[i][j] = res.CostCents
				out.Time[i][j] = res.DurationSec
				out.Details[Pair{I: i, J: j}] = res
				out.Modes[Pair{I: i, J: j}] = mode
				mu.Unlock()
				return nil
			})
		}
	}
	// FanOut never aborts the batch on a single failed query (fallback is
	// substituted inline above) and every goroutine returns nil, so
	// g.Wait() always returns nil.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// directionsOrFallback queries router, degrading to the offline estimate
// on any error.
func directionsOrFallback(ctx context.Context, router oracle.Oracle, from, to *model.Stop, mode model.Mode) oracle.Result {
	res, err := router.Directions(ctx, from.Coord(), to.Coord(), mode)
	if err != nil {
		return oracle.Offline(from.Coord(), to.Coord(), mode)
	}
	return res
}

// Shrink removes the row and column for index idx, used by the replan
// pipeline's drop loop (spec.md §4.5 stage 5) to resize the matrices in
// place after dropping a stop, without re-running the fan-out.
func (m *Matrices) Shrink(idx int) {
	m.Cost = dropRowCol(m.Cost, idx)
	m.Time = dropRowCol(m.Time, idx)
	details := make(map[Pair]oracle.Result, len(m.Details))
	modes := make(map[Pair]model.Mode, len(m.Modes))
	for p, v := range m.Details {
		if np, ok := reindex(p, idx); ok {
			details[np] = v
		}
	}
	for p, v := range m.Modes {
		if np, ok := reindex(p, idx); ok {
			modes[np] = v
		}
	}
	m.Details = details
	m.Modes = modes
}

func dropRowCol(matrix [][]int, idx int) [][]int {
	n := len(matrix)
	out := make([][]int, 0, n-1)
	for i, row := range matrix {
		if i == idx {
			continue
		}
		newRow := make([]int, 0, n-1)
		for j, v := range row {
			if j == idx {
				continue
			}
			newRow = append(newRow, v)
		}
		out = append(out, newRow)
	}
	return out
}

// reindex maps a (i, j) pair from the pre-shrink index space to the
// post-shrink space, dropping any pair touching idx.
func reindex(p Pair, idx int) (Pair, bool) {
	if p.I == idx || p.J == idx {
		return Pair{}, false
	}
	ni, nj := p.I, p.J
	if ni > idx {
		ni--
	}
	if nj > idx {
		nj--
	}
	return Pair{I: ni, J: nj}, true
}
