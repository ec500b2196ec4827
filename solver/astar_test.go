package main

import "testing"

func TestSolveReportsBudgetExhaustedDistinctFromNoSolution(t *testing.T) {
	lvl := singlePushLevel("single")
	cfg := DefaultConfig()
	cfg.MaxSearch = 0

	result := Solve(lvl, cfg)
	if result.Outcome != OutcomeBudgetExhausted {
		t.Fatalf("expected OutcomeBudgetExhausted with MaxSearch=0, got %s", result.Outcome)
	}

	unsolvable := unsolvableLevel("maze")
	cfg = DefaultConfig()
	result = Solve(unsolvable, cfg)
	if result.Outcome != OutcomeNoSolution {
		t.Fatalf("expected OutcomeNoSolution for an unsolvable level with budget to spare, got %s", result.Outcome)
	}
}

// corridorLevel is a single-wide, seven-cell straight corridor: every
// interior cell is an articulation point with walls on both perpendicular
// sides, so pushing the crate off the player's starting cell forces a chain
// of cut-cell pushes all the way to the goal with no branching in between.
func corridorLevel(name string) *Level {
	rows := []string{
		"#########",
		"#@$    .#",
		"#########",
	}
	lvl, err := buildLevel(name, rows, 50)
	if err != nil {
		panic(err)
	}
	return lvl
}

func TestSolveCompressesCutChainIntoOneFrontierEntry(t *testing.T) {
	lvl := corridorLevel("corridor")
	cfg := DefaultConfig()

	result := Solve(lvl, cfg)
	if result.Outcome != OutcomeSolved {
		t.Fatalf("expected the corridor to solve, got %s", result.Outcome)
	}
	if len(result.Moves) != 5 {
		t.Fatalf("expected the initial push plus a 4-push cut chain to collapse into 5 total moves, got %d", len(result.Moves))
	}
	if result.StatesExpanded != 1 {
		t.Fatalf("expected the cut chain to be absorbed into a single frontier entry, got %d states expanded", result.StatesExpanded)
	}
}
