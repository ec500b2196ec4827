package main

import "github.com/prometheus/client_golang/prometheus"

// solverMetrics are the Prometheus series exposed at /metrics: how many
// levels have been solved or skipped, how many states each search
// expanded, and how long a level's search took wall-clock. Registered
// once against the default registry so promhttp.Handler needs no extra
// wiring in main.
type solverMetrics struct {
	levelsSolved   prometheus.Counter
	levelsSkipped  prometheus.Counter
	levelsFailed   prometheus.Counter
	statesExpanded prometheus.Histogram
	solveDuration  prometheus.Histogram
}

var metrics = newSolverMetrics()

func newSolverMetrics() *solverMetrics {
	m := &solverMetrics{
		levelsSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sokoban_levels_solved_total",
			Help: "Number of levels solved across all runs.",
		}),
		levelsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sokoban_levels_skipped_total",
			Help: "Number of levels skipped (budget exhausted or no solution).",
		}),
		levelsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sokoban_levels_failed_total",
			Help: "Number of levels whose solution failed verification.",
		}),
		statesExpanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sokoban_states_expanded",
			Help:    "Distinct states visited by the A* search per level.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sokoban_solve_duration_seconds",
			Help:    "Wall-clock time spent solving one level.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(m.levelsSolved, m.levelsSkipped, m.levelsFailed, m.statesExpanded, m.solveDuration)
	return m
}

// observe records one finished level's outcome against the process-wide
// metrics singleton.
func (m *solverMetrics) observe(p *LevelProgress) {
	switch p.Status {
	case LevelSolved:
		m.levelsSolved.Inc()
	case LevelSkipped:
		m.levelsSkipped.Inc()
	case LevelFailed:
		m.levelsFailed.Inc()
	}
	m.statesExpanded.Observe(float64(p.StatesExpanded))
	if d := p.Duration(); d > 0 {
		m.solveDuration.Observe(d.Seconds())
	}
}
