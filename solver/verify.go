package main

import "fmt"

// Verify replays a push list against a level's initial state and confirms
// it is both physically reachable and actually solves the level. A search
// bug that emits an impossible or non-terminal solution is an internal
// defect, not a user-facing error; callers are expected to treat a non-nil
// error here as fatal for the run.
func Verify(lvl *Level, moves []Push, cfg Config) error {
	Precompute(lvl)
	s := NewInitialState(lvl)
	s.Heuristic = Heuristic(s, cfg)

	for i, mv := range moves {
		candidates := GenerateMoves(s)
		reachable := false
		for _, c := range candidates {
			if c.Equals(mv) {
				reachable = true
				break
			}
		}
		if !reachable {
			return fmt.Errorf("push %d (crate %d, %s) is not reachable from the current player position", i, mv.CrateIndex, mv.Direction)
		}

		next, ok := TryPush(s, mv.CrateIndex, mv.Direction, cfg)
		if !ok {
			return fmt.Errorf("push %d (crate %d, %s) was rejected on replay", i, mv.CrateIndex, mv.Direction)
		}
		s = next
	}

	if !s.Solved() {
		return fmt.Errorf("replayed %d push(es) but not every crate ended on a goal", len(moves))
	}
	return nil
}
