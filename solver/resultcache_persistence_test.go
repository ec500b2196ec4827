package main

import (
	"path/filepath"
	"testing"
)

func TestResolveResultCachePathKeepsAbsolutePath(t *testing.T) {
	absolute := "/tmp/result_cache.gob"
	got := resolveResultCachePath(absolute)
	if got != absolute {
		t.Fatalf("expected absolute path unchanged, got %q", got)
	}
}

func TestResolveResultCachePathUsesDockerCacheDirWhenPresent(t *testing.T) {
	temp := t.TempDir()
	old := dockerCacheDir
	dockerCacheDir = temp
	t.Cleanup(func() { dockerCacheDir = old })

	got := resolveResultCachePath("result_cache.gob")
	want := filepath.Join(temp, "result_cache.gob")
	if got != want {
		t.Fatalf("expected docker cache path %q, got %q", want, got)
	}
}

func TestResolveResultCachePathFallsBackToRelativeWhenDockerCacheDirMissing(t *testing.T) {
	old := dockerCacheDir
	dockerCacheDir = filepath.Join(t.TempDir(), "missing")
	t.Cleanup(func() { dockerCacheDir = old })

	got := resolveResultCachePath("result_cache.gob")
	if got != "result_cache.gob" {
		t.Fatalf("expected relative path fallback, got %q", got)
	}
}

func TestResultCachePersistenceRoundTrip(t *testing.T) {
	temp := t.TempDir()
	old := dockerCacheDir
	dockerCacheDir = temp
	t.Cleanup(func() { dockerCacheDir = old })

	store := NewStore()
	store.Put(ResultCacheEntry{
		LevelName:      "corridor",
		LevelHash:      0x12345,
		ConfigHash:     7,
		Outcome:        OutcomeSolved,
		Pushes:         []Push{{CrateIndex: 0, Direction: Right}, {CrateIndex: 0, Direction: Up}},
		StatesExpanded: 42,
	})
	store.Put(ResultCacheEntry{
		LevelName:  "maze",
		LevelHash:  0x998877,
		ConfigHash: 7,
		Outcome:    OutcomeBudgetExhausted,
	})

	path := "result_cache.gob"
	if err := SaveResultCache(store, path); err != nil {
		t.Fatalf("SaveResultCache: %v", err)
	}

	loaded := NewStore()
	LoadResultCache(loaded, path)

	entry, ok := loaded.Get(0x12345, 7)
	if !ok {
		t.Fatalf("expected restored entry for corridor")
	}
	if entry.Outcome != OutcomeSolved || len(entry.Pushes) != 2 || entry.StatesExpanded != 42 {
		t.Fatalf("unexpected restored entry: %+v", entry)
	}

	other, ok := loaded.Get(0x998877, 7)
	if !ok || other.Outcome != OutcomeBudgetExhausted {
		t.Fatalf("unexpected restored entry for maze: %+v", other)
	}
}

func TestLoadResultCacheMissingFileIsNotAnError(t *testing.T) {
	temp := t.TempDir()
	old := dockerCacheDir
	dockerCacheDir = filepath.Join(temp, "missing")
	t.Cleanup(func() { dockerCacheDir = old })

	store := NewStore()
	LoadResultCache(store, "does_not_exist.gob")
	if store.Count() != 0 {
		t.Fatalf("expected empty store when no persisted file exists")
	}
}
