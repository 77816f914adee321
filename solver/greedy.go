package solver

// Greedy is the nearest-neighbor fallback solver, grounded on
// _examples/original_source/backend/engine/routing_solver.py's
// greedy_fallback. It always starts at index 0 and, at each step, picks
// the unvisited stop reachable in the least additional time without
// busting the budget or the deadline. Unlike the Python original it never
// requires a closing edge back to the start: this spec's itineraries are
// open paths, not round trips (spec.md §9 Open Question (b)).
type Greedy struct{}

func (Greedy) Solve(n int, cost, timeMx [][]int, budgetCents, deadlineSec int) Result {
	if n == 0 {
		return Infeasible
	}
	if n == 1 {
		return Result{Order: []int{0}, Ok: true}
	}

	visited := make([]bool, n)
	visited[0] = true
	order := make([]int, 1, n)
	order[0] = 0

	curr := 0
	currCost, currTime := 0, 0

	for len(order) < n {
		bestJ := -1
		bestTime := 0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			newCost := currCost + cost[curr][j]
			newTime := currTime + timeMx[curr][j]
			if newCost > budgetCents || newTime > deadlineSec {
				continue
			}
			if bestJ == -1 || timeMx[curr][j] < bestTime {
				bestJ = j
				bestTime = timeMx[curr][j]
			}
		}
		if bestJ == -1 {
			return Infeasible
		}
		visited[bestJ] = true
		order = append(order, bestJ)
		currCost += cost[curr][bestJ]
		currTime += timeMx[curr][bestJ]
		curr = bestJ
	}

	return Result{Order: order, Ok: true}
}
