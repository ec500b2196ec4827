package main

import "time"

// LevelStatus is the lifecycle state of one level's solve within a run,
// mirroring the teacher's GameState status transitions but for a one-shot
// search instead of a turn-by-turn match.
type LevelStatus int

const (
	LevelPending LevelStatus = iota
	LevelRunning
	LevelSolved
	LevelSkipped
	LevelFailed
)

func (s LevelStatus) String() string {
	switch s {
	case LevelPending:
		return "pending"
	case LevelRunning:
		return "running"
	case LevelSolved:
		return "solved"
	case LevelSkipped:
		return "skipped"
	case LevelFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LevelProgress is one level's entry inside a RunReport: its current
// status, the result once available, and timing, analogous to the
// teacher's per-match HistoryEntry but scoped to a whole level rather than
// a single move.
type LevelProgress struct {
	Name           string      `json:"name"`
	Status         LevelStatus `json:"status"`
	Pushes         []Push      `json:"pushes,omitempty"`
	StatesExpanded int         `json:"states_expanded"`
	Error          string      `json:"error,omitempty"`
	FromCache      bool        `json:"from_cache"`
	StartedAt      time.Time   `json:"started_at"`
	FinishedAt     time.Time   `json:"finished_at,omitempty"`
}

func newLevelProgress(name string) *LevelProgress {
	return &LevelProgress{Name: name, Status: LevelPending}
}

func (p *LevelProgress) markRunning() {
	p.Status = LevelRunning
	p.StartedAt = time.Now()
}

func (p *LevelProgress) markFromCache(entry ResultCacheEntry) {
	p.FromCache = true
	p.StatesExpanded = entry.StatesExpanded
	p.FinishedAt = time.Now()
	switch entry.Outcome {
	case OutcomeSolved:
		p.Status = LevelSolved
		p.Pushes = entry.Pushes
	default:
		p.Status = LevelSkipped
	}
}

func (p *LevelProgress) markResult(result SolveResult) {
	p.FinishedAt = time.Now()
	p.StatesExpanded = result.StatesExpanded
	switch result.Outcome {
	case OutcomeSolved:
		p.Status = LevelSolved
		p.Pushes = result.Moves
	default:
		p.Status = LevelSkipped
	}
}

func (p *LevelProgress) markFailed(err error) {
	p.FinishedAt = time.Now()
	p.Status = LevelFailed
	p.Error = err.Error()
}

// Duration reports how long this level's solve ran, zero while still
// pending or running.
func (p *LevelProgress) Duration() time.Duration {
	if p.StartedAt.IsZero() || p.FinishedAt.IsZero() {
		return 0
	}
	return p.FinishedAt.Sub(p.StartedAt)
}
