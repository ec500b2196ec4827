package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyAcceptsSolveOutput(t *testing.T) {
	lvl := levelFromText(t, ";corridor\n#########\n#@$    .#\n#########\n")
	cfg := DefaultConfig()

	result := Solve(lvl, cfg)
	require.Equal(t, OutcomeSolved, result.Outcome)
	require.NoError(t, Verify(lvl, result.Moves, cfg))
}

func TestVerifyRejectsUnreachablePush(t *testing.T) {
	lvl := levelFromText(t, ";corridor\n#########\n#@$    .#\n#########\n")
	cfg := DefaultConfig()

	// the player starts left of the crate; a Left push would need the
	// player on its far side, which the crate itself blocks.
	err := Verify(lvl, []Push{{CrateIndex: 0, Direction: Left}}, cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not reachable")
}

func TestVerifyRejectsNonTerminalReplay(t *testing.T) {
	lvl := levelFromText(t, ";corridor\n#########\n#@$    .#\n#########\n")
	cfg := DefaultConfig()

	result := Solve(lvl, cfg)
	require.Equal(t, OutcomeSolved, result.Outcome)

	truncated := result.Moves[:len(result.Moves)-1]
	err := Verify(lvl, truncated, cfg)
	require.Error(t, err)
}
