package main

import (
	"encoding/gob"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

// dockerCacheDir mirrors the teacher's cache_persistence.go convention of
// preferring a well-known mounted directory over a bare relative path when
// one is present, so a containerized deployment survives restarts without
// extra flags.
var dockerCacheDir = "/cache_logs"

type resultCacheSnapshot struct {
	Entries []ResultCacheEntry
}

// LoadResultCache restores a Store from path, following the teacher's
// load-on-start shape (tt_persistence.go / cache_persistence.go): a missing
// file is not an error, a decode failure is logged and treated as empty.
func LoadResultCache(store *Store, path string) {
	if path == "" {
		logrus.WithField("component", "resultcache").Info("result cache persistence disabled: no path")
		return
	}
	resolved := resolveResultCachePath(path)
	file, err := os.Open(resolved)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithField("component", "resultcache").WithError(err).Warn("failed to open result cache")
		}
		return
	}
	defer file.Close()

	var snapshot resultCacheSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		logrus.WithField("component", "resultcache").WithError(err).Warn("failed to decode result cache")
		return
	}
	store.LoadAll(snapshot.Entries)
	logrus.WithFields(logrus.Fields{"component": "resultcache", "entries": len(snapshot.Entries), "path": resolved}).Info("restored result cache")
}

// SaveResultCache gob-encodes store's contents to path, creating parent
// directories as needed.
func SaveResultCache(store *Store, path string) error {
	if path == "" {
		return nil
	}
	resolved := resolveResultCachePath(path)
	if dir := filepath.Dir(resolved); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(resolved)
	if err != nil {
		return err
	}
	defer file.Close()

	snapshot := resultCacheSnapshot{Entries: store.All()}
	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"component": "resultcache", "entries": len(snapshot.Entries), "path": resolved}).Info("persisted result cache")
	return nil
}

func resolveResultCachePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if stat, err := os.Stat(dockerCacheDir); err == nil && stat.IsDir() {
		return filepath.Join(dockerCacheDir, path)
	}
	return path
}

// InstallSignalPersistence starts the background handler that saves store
// to path on SIGINT/SIGTERM, directly analogous to cache_persistence.go's
// startCachePersistenceHandler. It returns a function the caller can defer
// to persist once more on a clean exit; the sync.Once guard means whichever
// of the signal or the defer fires first does the write, the other is a
// no-op. It deliberately leaves process exit to the caller's own shutdown
// sequence rather than calling os.Exit itself, since main also needs the
// signal to trigger the HTTP server's graceful drain.
func InstallSignalPersistence(store *Store, path string) (persistNow func()) {
	var once sync.Once
	persist := func() {
		once.Do(func() {
			if err := SaveResultCache(store, path); err != nil {
				logrus.WithField("component", "resultcache").WithError(err).Error("failed to persist result cache")
			}
		})
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		persist()
	}()

	return persist
}
