package main

import (
	"context"
	"sync"
)

// RunController is the mutex-guarded registry of every run the HTTP
// surface has started, analogous to the teacher's GameController wrapping
// a single Game — generalized from "one match in flight" to "many
// independent batch solves in flight, looked up by run ID".
type RunController struct {
	mu      sync.Mutex
	runs    map[string]*RunReport
	order   []string
	cache   *Store
	workers int
	onEvent func(RunEvent)
}

func NewRunController(cache *Store, workers int, onEvent func(RunEvent)) *RunController {
	return &RunController{
		runs:    make(map[string]*RunReport),
		cache:   cache,
		workers: workers,
		onEvent: onEvent,
	}
}

// StartRun registers a new RunReport for id and launches a BatchRunner
// against levels in the background, returning immediately so the HTTP
// handler can respond with the run's handle right away.
func (rc *RunController) StartRun(ctx context.Context, id string, levels []*Level, cfg Config) *RunReport {
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	report := newRunReport(id, names)

	rc.mu.Lock()
	rc.runs[id] = report
	rc.order = append(rc.order, id)
	rc.mu.Unlock()

	runner := NewBatchRunner(rc.cache, rc.workers, rc.onEvent)
	go runner.Run(ctx, report, levels, cfg)

	return report
}

// Get returns the RunReport registered under id.
func (rc *RunController) Get(id string) (*RunReport, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	report, ok := rc.runs[id]
	return report, ok
}

// List returns every run ID in submission order, most recent last.
func (rc *RunController) List() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]string(nil), rc.order...)
}
