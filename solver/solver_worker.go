package main

import "github.com/sirupsen/logrus"

// solveLevel is the goroutine-driven unit of background work the batch
// runner schedules one per level: check the result cache, run the A*
// search if the cache misses, verify a claimed solution before trusting
// it, and record the outcome in progress. Grounded on the teacher's
// ai_player.go background-thinking worker, but simplified to a single
// synchronous call per level since the core search has no intermediate
// "ready" polling state the way iterative-deepening search does — a
// level's solve either finishes or it doesn't, there is nothing to poll
// mid-search beyond the MAX_SEARCH budget the driver already enforces.
func solveLevel(lvl *Level, progress *LevelProgress, cache *Store, cfg Config) {
	log := logrus.WithFields(logrus.Fields{"component": "solver_worker", "level": lvl.Name})
	progress.markRunning()

	Precompute(lvl)
	levelHash := lvl.Fingerprint()
	configHash := configFingerprint(cfg)

	if cache != nil {
		if entry, ok := cache.Get(levelHash, configHash); ok {
			// a cached push list is still replayed before it is trusted:
			// a stale or colliding entry must never surface as solved.
			if !entry.Solved() || Verify(lvl, entry.Pushes, cfg) == nil {
				progress.markFromCache(entry)
				log.WithField("status", progress.Status.String()).Info("served from result cache")
				metrics.observe(progress)
				return
			}
			cache.Delete(levelHash, configHash)
			log.Warn("cached solution failed replay, re-solving")
		}
	}

	result := Solve(lvl, cfg)
	progress.markResult(result)
	log.WithFields(logrus.Fields{
		"status": progress.Status.String(),
		"states": result.StatesExpanded,
	}).Info("level solve finished")

	if result.Outcome == OutcomeSolved {
		if err := Verify(lvl, result.Moves, cfg); err != nil {
			log.WithError(err).Error("solution verification failed")
			progress.markFailed(err)
			metrics.observe(progress)
			return
		}
	}

	if cache != nil {
		cache.Put(ResultCacheEntry{
			LevelName:      lvl.Name,
			LevelHash:      levelHash,
			ConfigHash:     configHash,
			Outcome:        result.Outcome,
			Pushes:         result.Moves,
			StatesExpanded: result.StatesExpanded,
		})
	}
	metrics.observe(progress)
}
