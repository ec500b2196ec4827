package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestTryPushRejectsDeadSquare(t *testing.T) {
	lvl := levelFromText(t, ";dead square\n####\n#.@#\n#$ #\n####\n")
	Precompute(lvl)

	s := NewInitialState(lvl)
	cfg := DefaultConfig()
	s.Heuristic = Heuristic(s, cfg)

	// The crate sits at (2,1); (2,2) is the precomputed dead corner.
	if _, ok := TryPush(s, 0, Right, cfg); ok {
		t.Fatalf("expected push onto a dead square to be rejected")
	}
}

func TestTryPushSinglePushReachesGoal(t *testing.T) {
	lvl := levelFromText(t, ";single push\n#####\n#@$.#\n#####\n")
	Precompute(lvl)

	s := NewInitialState(lvl)
	cfg := DefaultConfig()
	s.Heuristic = Heuristic(s, cfg)

	next, ok := TryPush(s, 0, Right, cfg)
	if !ok {
		t.Fatalf("expected the push to succeed")
	}
	if !next.Solved() {
		t.Fatalf("expected the level to be solved after the push")
	}
	if next.Player != (Position{Row: 1, Col: 2}) {
		t.Fatalf("expected the player to end up where the crate started, got %v", next.Player)
	}
}

// buildBoxedCorridor returns a hand-built level of a 3-cell-tall, 2-cell-wide
// corridor so the freeze test can place two crates one cell apart on the
// push axis, independent of any goal placement.
func buildBoxedCorridor(t *testing.T, goalA, goalB bool) (*Level, Position, Position) {
	t.Helper()
	configStore.Update(DefaultConfig())

	rows, cols := 5, 4
	grid := make([]Cell, rows*cols)
	for i := range grid {
		grid[i] = CellWall
	}
	floor := func(r, c int) { grid[r*cols+c] = CellFloor }
	for _, r := range []int{1, 2, 3} {
		floor(r, 1)
		floor(r, 2)
	}

	crateA := Position{Row: 1, Col: 1}
	crateB := Position{Row: 3, Col: 1}
	var goals []Position
	if goalA {
		grid[crateA.Row*cols+crateA.Col] = CellGoal
		goals = append(goals, crateA)
	}
	if goalB {
		grid[crateB.Row*cols+crateB.Col] = CellGoal
		goals = append(goals, crateB)
	}
	// keep crate/goal counts balanced regardless of which of goalA/goalB is set
	for len(goals) < 2 {
		goals = append(goals, Position{Row: 2, Col: 2})
	}

	player := Position{Row: 1, Col: 2}
	rowLengths := []int{cols, cols, cols, cols, cols}
	lvl := NewLevel("corridor", rows, cols, grid, rowLengths, goals, player, []Position{crateA, crateB})
	return lvl, crateA, crateB
}

func TestTryPushFreezeRejectsWhenNotGoals(t *testing.T) {
	// deliberately not precomputed: with no dead-square set the freeze
	// pattern itself has to reject the push, not the dead-square filter.
	lvl, _, _ := buildBoxedCorridor(t, false, false)
	s := NewInitialState(lvl)
	cfg := DefaultConfig()

	if _, ok := TryPush(s, 0, Down, cfg); ok {
		t.Fatalf("expected the push to be rejected as a 2x2 freeze")
	}
}

func TestTryPushFreezeAllowsWhenBothGoals(t *testing.T) {
	lvl, crateA, crateB := buildBoxedCorridor(t, false, false)
	// Mark the cell the crate lands on (crateA pushed down) and the blocking
	// crate's own cell as goals, matching the source's adopted rule: a 2x2
	// block is only safe when every crate cell involved is a goal.
	landing := Move(crateA, Down)
	lvl.grid[landing.Row*lvl.Cols+landing.Col] = CellGoal
	lvl.grid[crateB.Row*lvl.Cols+crateB.Col] = CellGoal
	lvl.Goals = []Position{landing, crateB}
	Precompute(lvl)

	s := NewInitialState(lvl)
	cfg := DefaultConfig()

	if _, ok := TryPush(s, 0, Down, cfg); !ok {
		t.Fatalf("expected the push to be allowed once both crate cells are goals")
	}
}

func TestTryPushIsPure(t *testing.T) {
	lvl := levelFromText(t, ";purity\n#####\n#@$.#\n#####\n")
	Precompute(lvl)
	s := NewInitialState(lvl)
	cfg := DefaultConfig()
	s.Heuristic = Heuristic(s, cfg)

	before := append([]Position(nil), s.Crates...)

	a, okA := TryPush(s, 0, Right, cfg)
	b, okB := TryPush(s, 0, Right, cfg)
	if okA != okB {
		t.Fatalf("expected repeated calls to agree on success")
	}
	if !reflect.DeepEqual(a.Crates, b.Crates) || a.Hash != b.Hash || a.Player != b.Player {
		t.Fatalf("expected repeated calls on equal inputs to produce equal outputs")
	}
	if !reflect.DeepEqual(before, s.Crates) {
		t.Fatalf("expected TryPush to leave the input state untouched")
	}
}

func TestParseLevelsRejectsMissingPlayer(t *testing.T) {
	configStore.Update(DefaultConfig())
	_, err := ParseLevels(strings.NewReader(";no player\n####\n#.$#\n####\n"))
	if err == nil {
		t.Fatalf("expected an error for a level with no player")
	}
}

func TestParseLevelsRejectsCrateGoalMismatch(t *testing.T) {
	configStore.Update(DefaultConfig())
	_, err := ParseLevels(strings.NewReader(";mismatch\n#####\n#@$$.#\n#####\n"))
	if err == nil {
		t.Fatalf("expected an error when crate count does not match goal count")
	}
}
