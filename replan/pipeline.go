// Package replan implements the Replan Pipeline (spec.md §4.5): the
// seven-stage orchestrator that turns (itinerary, disruption) into
// (new itinerary, diff) within the 3000ms SLA.
package replan

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"elasticreplan/friction"
	"elasticreplan/matrix"
	"elasticreplan/model"
	"elasticreplan/oracle"
	"elasticreplan/solver"
	"elasticreplan/store"
)

// Sentinel errors surfaced as the 422-class user errors from spec.md §7.
var (
	ErrTooFewActiveStops = errors.New("replan: need at least two active stops to build an itinerary")
	ErrInfeasible        = errors.New("replan: unable to find any feasible route even after dropping all droppable stops")
)

// StepTimings records the elapsed wall time, in milliseconds, of each
// named pipeline stage — surfaced back to callers so the SLA can be
// audited per replan, not just in aggregate.
type StepTimings map[string]float64

// Meta describes how a replan was produced, independent of its content.
type Meta struct {
	PipelineMs   float64
	Solver       string
	StopsDropped int
	Version      int
	StepTimings  StepTimings
}

// ReplanStrategy is the shared contract between the real pipeline and
// the deterministic demo bypass (spec.md §9's "Deterministic demo
// bypass" factoring) — a Dispatcher picks between them by session id and
// event type so callers never need to know which ran.
type ReplanStrategy interface {
	Replan(ctx context.Context, itin *model.Itinerary, event *model.DisruptionEvent) (*model.Itinerary, *model.Diff, Meta, error)
}

// Pipeline is the full seven-stage orchestrator.
type Pipeline struct {
	Router  oracle.Oracle
	Solvers []solver.Solver // tried in order; first feasible result wins
	Scorer  friction.Scorer
	Log     *zap.SugaredLogger

	// Store supplies the session-scoped routing graph override (spec.md
	// §6's graph:{sessionId}:leg:{from}:{to}:{mode} key): when set, the
	// fan-out consults it for each edge ahead of calling Router. Nil
	// disables the override path entirely.
	Store store.Store

	// Now lets tests pin the clock; nil uses time.Now.
	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// legGraphOverride builds the Matrix Fan-Out's per-edge override from the
// session store's pinned routing graph, letting a session (the demo
// fixture, a pre-seeded scenario) fix an edge's cost/duration/availability
// ahead of the Route Oracle being consulted at all. Returns nil when no
// store is configured, disabling the override path.
func (p *Pipeline) legGraphOverride(ctx context.Context, sessionID string, stops []*model.Stop, modeOf matrix.ModeFunc) matrix.OverrideFunc {
	if p.Store == nil {
		return nil
	}
	return func(i, j int) (oracle.Result, bool) {
		leg, ok := p.Store.GetLegGraph(ctx, sessionID, stops[i].ID, stops[j].ID, modeOf(i, j))
		if !ok {
			return oracle.Result{}, false
		}
		return oracle.Result{
			CostCents:   leg.CostCents,
			DurationSec: leg.DurationSec,
			Available:   leg.Available,
			Polyline:    leg.Polyline,
		}, true
	}
}

// Replan runs the full pipeline against a working copy of itin, never
// mutating the caller's value (spec.md §3, §9).
func (p *Pipeline) Replan(ctx context.Context, itin *model.Itinerary, event *model.DisruptionEvent) (*model.Itinerary, *model.Diff, Meta, error) {
	start := p.now()
	timings := StepTimings{}
	mark := func(step string, since time.Time) {
		timings[step] = p.now().Sub(since).Seconds() * 1000
	}

	work := itin.Clone()

	t1 := p.now()
	applyDisruption(work, event)
	mark("step1_apply_disruption", t1)

	t2 := p.now()
	activeStops := work.ActiveStops()
	if len(activeStops) < 2 {
		return nil, nil, Meta{}, ErrTooFewActiveStops
	}
	mark("step2_select_active", t2)

	t3 := p.now()
	preferredMode := work.User.FirstPreferredMode()
	modeOf := func(i, j int) model.Mode { return preferredMode }
	mats, err := matrix.FanOut(ctx, activeStops, modeOf, p.Router, p.legGraphOverride(ctx, work.ID, activeStops, modeOf))
	if err != nil {
		return nil, nil, Meta{}, err
	}
	deadlineSec := work.User.DeadlineSeconds(start)
	budgetCents := work.User.BudgetCents
	mark("step3_fanout", t3)

	t45 := p.now()
	stopsToRoute := append([]*model.Stop(nil), activeStops...)
	var dropped []*model.Stop
	for _, s := range work.Stops {
		if s.Status == model.StopDropped && s.DropReason != "" {
			dropped = append(dropped, s)
		}
	}

	var route solver.Result
	solverTag := ""
	for len(stopsToRoute) >= 2 {
		route = solver.Infeasible
		for idx, sv := range p.Solvers {
			res := sv.Solve(len(stopsToRoute), mats.Cost, mats.Time, budgetCents, deadlineSec)
			if res.Ok {
				route = res
				if idx == 0 {
					solverTag = "primary"
				} else {
					solverTag = "greedy"
				}
				break
			}
		}
		if route.Ok {
			break
		}

		dropIdx := selectDroppable(stopsToRoute)
		if dropIdx == -1 {
			break
		}
		stopsToRoute[dropIdx].Drop(dropReason)
		dropped = append(dropped, stopsToRoute[dropIdx])
		stopsToRoute = append(stopsToRoute[:dropIdx], stopsToRoute[dropIdx+1:]...)
		mats.Shrink(dropIdx)
	}
	mark("step4_5_solve_drop_loop", t45)

	if !route.Ok {
		return nil, nil, Meta{}, ErrInfeasible
	}

	newLegs := make([]*model.Leg, 0, len(route.Order)-1)
	for k := 0; k < len(route.Order)-1; k++ {
		from, to := route.Order[k], route.Order[k+1]
		detail := mats.Details[matrix.Pair{I: from, J: to}]
		mode := mats.Modes[matrix.Pair{I: from, J: to}]
		newLegs = append(newLegs, &model.Leg{
			FromStopID:  stopsToRoute[from].ID,
			ToStopID:    stopsToRoute[to].ID,
			Mode:        mode,
			CostCents:   detail.CostCents,
			DurationSec: detail.DurationSec,
			Available:   true,
			Polyline:    detail.Polyline,
		})
	}

	t6 := p.now()
	if p.Scorer != nil {
		if _, err := friction.ApplyAndAlert(ctx, p.Scorer, newLegs, p.now()); err != nil {
			return nil, nil, Meta{}, err
		}
	}
	mark("step6_friction", t6)

	t7 := p.now()
	next := work
	next.Version = itin.Version + 1
	next.Legs = newLegs
	next.RecomputeTotalCost()
	totalDuration := 0
	for _, l := range newLegs {
		totalDuration += l.DurationSec
	}
	next.ProjectedETA = p.now().Add(time.Duration(totalDuration) * time.Second)
	next.Status = model.Replanning

	diff := model.BuildDiff(itin, next, dropped)
	mark("step7_assemble_diff", t7)

	meta := Meta{
		PipelineMs:   p.now().Sub(start).Seconds() * 1000,
		Solver:       solverTag,
		StopsDropped: len(dropped),
		Version:      next.Version,
		StepTimings:  timings,
	}
	if p.Log != nil {
		p.Log.Infow("replan complete",
			"itineraryId", next.ID, "version", next.Version,
			"pipelineMs", meta.PipelineMs, "solver", meta.Solver,
			"stopsDropped", meta.StopsDropped)
	}

	return next, diff, meta, nil
}
