// Package solver implements the Constrained Solver contract (spec.md
// §4.3): given square cost/time matrices, a budget, and a deadline,
// return a feasible visiting order beginning at index 0, or signal
// infeasibility. Two implementations share this contract: BranchAndBound
// (complete search, grounded on the branch-and-bound engine in
// _examples/katalvlaran-lvlath/tsp/bb.go) and Greedy (nearest-neighbor
// fallback).
package solver

// Result is the outcome of a solve attempt. Ok is false to signal the
// distinguished "infeasible" variant described in spec.md §4.3 — callers
// must check Ok before using Order, never rely on a zero-length Order.
type Result struct {
	Order []int
	Ok    bool
}

// Infeasible is the zero Result, returned whenever no order can be found.
var Infeasible = Result{}

// Solver is the shared contract for both implementations.
type Solver interface {
	Solve(n int, cost, time [][]int, budgetCents, deadlineSec int) Result
}
