package main

import "math"

// heuristicInfinity stands in for an unreachable assignment: large enough to
// dominate any real sum of push distances without risking integer overflow
// across a Hungarian assignment's additions.
const heuristicInfinity = 1 << 30

// Heuristic dispatches to the simple or Hungarian estimator per cfg. Both
// are admissible: neither ever overestimates the true remaining push
// count. cfg is threaded in explicitly rather than read from the process
// singleton so that two concurrent searches in the batch runner can use
// different heuristics without racing on shared config state.
func Heuristic(s *State, cfg Config) int {
	if cfg.UseHungarian {
		return hungarianHeuristic(s)
	}
	return simpleHeuristic(s)
}

// simpleHeuristic sums each crate's push distance to its own precomputed
// nearest goal. A crate whose current cell has no entry in its push-distance
// map (no chain of pushes reaches any goal from here) makes the whole state
// unsolvable from this position; reported as heuristicInfinity so it sorts
// last and is effectively never expanded ahead of a live candidate.
func simpleHeuristic(s *State) int {
	total := 0
	for i, c := range s.Crates {
		d, ok := s.Level.PushDistance[i][Key(c, MaxDim)]
		if !ok {
			return heuristicInfinity
		}
		total += d
	}
	return total
}

// hungarianHeuristic finds a minimum-weight perfect assignment between
// crates and goals, with cost a[i][j] = the precomputed push distance from
// crate j's current cell to goal i. Every solution parks each crate on a
// distinct goal, so the cost of the cheapest such pairing is a lower bound
// on the remaining pushes; and because each crate's matched goal is at
// least as far as its nearest goal, the assignment never undercuts the
// simple sum — it is the tighter of the two bounds.
func hungarianHeuristic(s *State) int {
	n := len(s.Crates)
	if n == 0 {
		return 0
	}
	cost := make([][]int, n)
	for i := range cost {
		row := make([]int, n)
		for j, c := range s.Crates {
			if d, ok := s.Level.GoalPushDistance[i][Key(c, MaxDim)]; ok {
				row[j] = d
			} else {
				row[j] = heuristicInfinity
			}
		}
		cost[i] = row
	}
	return hungarianMinCost(cost)
}

// hungarianMinCost is the standard O(n^3) Kuhn-Munkres assignment algorithm
// over a square cost matrix, using row/column potentials and Dijkstra-style
// relaxation to find the next augmenting column for each row in turn.
// Entries of heuristicInfinity are ordinary (large) costs here, so an
// assignment forced through one totals at least heuristicInfinity.
func hungarianMinCost(a [][]int) int {
	n := len(a)
	const inf = math.MaxInt / 2

	u := make([]int, n+1)
	v := make([]int, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]int, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	total := 0
	for j := 1; j <= n; j++ {
		total += a[p[j]-1][j-1]
	}
	return total
}
