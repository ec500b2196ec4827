package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNoPlayer          = errors.New("level has no player")
	ErrCrateGoalMismatch = errors.New("crate count does not match goal count")
	ErrSizeExceeded      = errors.New("level exceeds configured MAX_DIM")
)

// TokenizeError names the level a parse failure happened in, so a CLI or
// HTTP caller can report which level of a multi-level file was malformed.
type TokenizeError struct {
	LevelName string
	Err       error
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("level %q: %v", e.LevelName, e.Err)
}

func (e *TokenizeError) Unwrap() error {
	return e.Err
}

// ParseLevels reads the line-oriented level-file format: a `;`-prefixed
// line starts a new level named by the text after the semicolon; the grid
// lines that follow use `#` wall, space floor, `.` goal, `@` player, `$`
// crate, `+` player-on-goal, `*` crate-on-goal. Rows keep their original
// ragged length. Blank lines are skipped. Malformed levels (no player, or a
// crate/goal count mismatch) and oversized levels abort the whole parse,
// per the size-exceeded and malformed-level error policies.
func ParseLevels(r io.Reader) ([]*Level, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	maxDim := GetConfig().MaxDim

	var levels []*Level
	var name string
	var rows []string
	haveLevel := false

	flush := func() error {
		if !haveLevel {
			return nil
		}
		lvl, err := buildLevel(name, rows, maxDim)
		if err != nil {
			return &TokenizeError{LevelName: name, Err: err}
		}
		levels = append(levels, lvl)
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			if err := flush(); err != nil {
				return nil, err
			}
			name = strings.TrimSpace(line[1:])
			rows = nil
			haveLevel = true
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return levels, nil
}

func buildLevel(name string, rows []string, maxDim int) (*Level, error) {
	if len(rows) > maxDim {
		return nil, ErrSizeExceeded
	}

	rowLengths := make([]int, len(rows))
	cols := 0
	for i, row := range rows {
		rowLengths[i] = len(row)
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols > maxDim {
		return nil, ErrSizeExceeded
	}

	grid := make([]Cell, len(rows)*cols)
	for i := range grid {
		grid[i] = CellWall
	}

	var goals, crates []Position
	var player Position
	havePlayer := false

	for r, row := range rows {
		for c, ch := range row {
			p := Position{Row: r, Col: c}
			idx := r*cols + c
			switch ch {
			case '#':
				grid[idx] = CellWall
			case ' ':
				grid[idx] = CellFloor
			case '.':
				grid[idx] = CellGoal
				goals = append(goals, p)
			case '@':
				grid[idx] = CellFloor
				player = p
				havePlayer = true
			case '+':
				grid[idx] = CellGoal
				goals = append(goals, p)
				player = p
				havePlayer = true
			case '$':
				grid[idx] = CellFloor
				crates = append(crates, p)
			case '*':
				grid[idx] = CellGoal
				goals = append(goals, p)
				crates = append(crates, p)
			default:
				grid[idx] = CellFloor
			}
		}
	}

	if !havePlayer {
		return nil, ErrNoPlayer
	}
	if len(crates) != len(goals) {
		return nil, ErrCrateGoalMismatch
	}

	return NewLevel(name, len(rows), cols, grid, rowLengths, goals, player, crates), nil
}
