package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// RunReport is the aggregate state of one batch solve over a LevelSet:
// one LevelProgress per level, kept in submission order, guarded by a
// mutex since the batch runner updates it from several goroutines at
// once. This is the shape behind both the CLI's end-of-run summary and
// the HTTP GET /api/runs/{id} response.
type RunReport struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`

	mu         sync.RWMutex
	levels     []*LevelProgress
	byName     map[string]*LevelProgress
	finishedAt time.Time
	done       bool
}

func newRunReport(id string, names []string) *RunReport {
	r := &RunReport{
		ID:        id,
		StartedAt: time.Now(),
		byName:    make(map[string]*LevelProgress, len(names)),
	}
	for _, name := range names {
		p := newLevelProgress(name)
		r.levels = append(r.levels, p)
		r.byName[name] = p
	}
	return r
}

// RunSummary is a read-only snapshot of a RunReport's counts, safe to
// serialize to JSON without holding the report's lock.
type RunSummary struct {
	ID             string          `json:"id"`
	Total          int             `json:"total"`
	Solved         int             `json:"solved"`
	Skipped        int             `json:"skipped"`
	Failed         int             `json:"failed"`
	Pending        int             `json:"pending"`
	StatesExpanded int             `json:"states_expanded"`
	SkippedNames   []string        `json:"skipped_names,omitempty"`
	FailedNames    []string        `json:"failed_names,omitempty"`
	Done           bool            `json:"done"`
	Levels         []LevelProgress `json:"levels"`
	Elapsed        time.Duration   `json:"elapsed_ns"`
}

// Snapshot copies out the report's current counts and per-level state.
func (r *RunReport) Snapshot() RunSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := RunSummary{ID: r.ID, Total: len(r.levels), Done: r.done}
	for _, lvl := range r.levels {
		summary.Levels = append(summary.Levels, *lvl)
		summary.StatesExpanded += lvl.StatesExpanded
		switch lvl.Status {
		case LevelSolved:
			summary.Solved++
		case LevelSkipped:
			summary.Skipped++
			summary.SkippedNames = append(summary.SkippedNames, lvl.Name)
		case LevelFailed:
			summary.Failed++
			summary.FailedNames = append(summary.FailedNames, lvl.Name)
		default:
			summary.Pending++
		}
	}
	end := r.finishedAt
	if end.IsZero() {
		end = time.Now()
	}
	summary.Elapsed = end.Sub(r.StartedAt)
	return summary
}

// Level returns one level's progress by name.
func (r *RunReport) Level(name string) (LevelProgress, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	if !ok {
		return LevelProgress{}, false
	}
	return *p, true
}

// markLevelRunning flips a level to running under the report lock so a
// concurrent Snapshot sees in-flight levels without racing the worker.
func (r *RunReport) markLevelRunning(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byName[name]; ok {
		p.markRunning()
	}
}

// setLevel copies a worker's finished progress into the report. Workers
// operate on their own private LevelProgress and hand the result over here,
// so no level entry is ever written outside the report lock.
func (r *RunReport) setLevel(p LevelProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.byName[p.Name]; ok {
		*cur = p
	}
}

func (r *RunReport) markDone() {
	r.mu.Lock()
	r.done = true
	r.finishedAt = time.Now()
	r.mu.Unlock()
}

// RunEvent is what the batch runner publishes to the Hub as each level
// finishes, letting a websocket client follow a run without polling.
type RunEvent struct {
	RunID string        `json:"run_id"`
	Level LevelProgress `json:"level"`
	Done  bool          `json:"done"`
}

// BatchRunner solves every level in a LevelSet concurrently, one
// single-threaded A* search per level running in its own goroutine,
// bounded by a semaphore.Weighted worker limit — the same "N independent
// units of work in flight" shape as the teacher's search-backlog worker
// pool (search_backlog.go), generalized from "one board analyzed at a
// time" to "N independent levels at once". No state is shared between
// concurrent per-level searches: each owns its own Level, queue, and
// visited set, so one level's verification failure can never corrupt a
// sibling level's run.
type BatchRunner struct {
	cache   *Store
	onEvent func(RunEvent)
	eventMu sync.Mutex
	workers int64
}

func NewBatchRunner(cache *Store, workers int, onEvent func(RunEvent)) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{cache: cache, workers: int64(workers), onEvent: onEvent}
}

// Run solves every level in levels, writing progress into report as each
// finishes, and returns once every level has a terminal status.
func (b *BatchRunner) Run(ctx context.Context, report *RunReport, levels []*Level, cfg Config) {
	sem := semaphore.NewWeighted(b.workers)
	var wg sync.WaitGroup

	for _, lvl := range levels {
		lvl := lvl

		if err := sem.Acquire(ctx, 1); err != nil {
			failed := newLevelProgress(lvl.Name)
			failed.markFailed(err)
			report.setLevel(*failed)
			b.publish(report, failed, false)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			progress := newLevelProgress(lvl.Name)
			report.markLevelRunning(lvl.Name)
			solveLevel(lvl, progress, b.cache, cfg)
			report.setLevel(*progress)
			b.publish(report, progress, false)
		}()
	}

	wg.Wait()
	report.markDone()
	b.publish(report, &LevelProgress{Name: "__run__"}, true)
}

// publish serializes onEvent callbacks so subscribers never see two
// workers' events interleave.
func (b *BatchRunner) publish(report *RunReport, level *LevelProgress, done bool) {
	if b.onEvent == nil {
		return
	}
	b.eventMu.Lock()
	defer b.eventMu.Unlock()
	b.onEvent(RunEvent{RunID: report.ID, Level: *level, Done: done})
}
