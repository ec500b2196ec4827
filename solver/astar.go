package main

// SolveOutcome distinguishes a completed search from the two ways it can
// fail to find a solution: the frontier drained with nothing left to try,
// or the search budget ran out first. The two are not the same claim — a
// drained frontier proves unsolvability, a spent budget does not.
type SolveOutcome int

const (
	OutcomeSolved SolveOutcome = iota
	OutcomeNoSolution
	OutcomeBudgetExhausted
)

func (o SolveOutcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeNoSolution:
		return "no solution"
	case OutcomeBudgetExhausted:
		return "no solution within budget"
	default:
		return "unknown"
	}
}

// SolveResult is everything a caller needs to report on one level's search:
// the outcome, the winning push list if any, and how many distinct states
// were visited along the way.
type SolveResult struct {
	Outcome        SolveOutcome
	Moves          []Push
	StatesExpanded int
}

// Solve runs A* search over lvl's push-state space under cfg. It
// precomputes lvl's static analyses if that has not already happened,
// then expands states by increasing g+h, deduplicating by Zobrist hash,
// and compressing forced cut-chain pushes into single frontier entries.
// cfg is threaded explicitly rather than read from the process-wide
// singleton so the batch runner can run two concurrent searches under
// different heuristics without one racing the other's config.
func Solve(lvl *Level, cfg Config) SolveResult {
	Precompute(lvl)

	initial := NewInitialState(lvl)
	initial.Heuristic = Heuristic(initial, cfg)

	pq := NewPriorityQueue()
	pq.Enqueue(initial, 0, nil)

	visited := map[uint64]struct{}{}
	z := GetZobrist(MaxDim)

	for pq.Len() > 0 {
		if len(visited) > cfg.MaxSearch {
			return SolveResult{Outcome: OutcomeBudgetExhausted, StatesExpanded: len(visited)}
		}

		node := pq.Pop()
		s := node.State

		if s.Solved() {
			return SolveResult{Outcome: OutcomeSolved, Moves: node.Moves, StatesExpanded: len(visited)}
		}

		pushes := GenerateMoves(s)

		normalizedHash := s.Hash ^ z.Player(s.TopReachable)
		if _, seen := visited[normalizedHash]; seen {
			continue
		}
		visited[normalizedHash] = struct{}{}

		for _, push := range pushes {
			next, ok := TryPush(s, push.CrateIndex, push.Direction, cfg)
			if !ok {
				continue
			}
			if next.Heuristic >= heuristicInfinity {
				// the pushed crate can no longer reach any goal; never enqueue
				continue
			}
			macro, final := compressCutChain(lvl, next, push, cfg)

			moves := make([]Push, 0, len(node.Moves)+1+len(macro))
			moves = append(moves, node.Moves...)
			moves = append(moves, push)
			moves = append(moves, macro...)

			pq.Enqueue(final, node.G+1+len(macro), moves)
		}
	}
	return SolveResult{Outcome: OutcomeNoSolution, StatesExpanded: len(visited)}
}

// compressCutChain repeatedly re-pushes the same crate through a forced
// chain of cut cells: while the crate's current cell is an articulation
// point, not itself a goal, and boxed in on both sides perpendicular to the
// push direction, the only sensible continuation is another push the same
// way. Each successful extra push collapses into the same frontier entry;
// the chain stops at the first push that fails or the first cell that
// breaks the pattern.
func compressCutChain(lvl *Level, s *State, push Push, cfg Config) ([]Push, *State) {
	var macro []Push
	d := push.Direction
	crateIdx := push.CrateIndex

	for {
		cell := s.Crates[crateIdx]
		if lvl.IsGoal(cell) {
			break
		}
		if _, isCut := lvl.Cuts[Key(cell, MaxDim)]; !isCut {
			break
		}
		p1, p2 := d.Next(), d.Prev()
		if !lvl.IsWall(Move(cell, p1)) || !lvl.IsWall(Move(cell, p2)) {
			break
		}
		next, ok := TryPush(s, crateIdx, d, cfg)
		if !ok {
			break
		}
		s = next
		macro = append(macro, Push{CrateIndex: crateIdx, Direction: d})
	}
	return macro, s
}
