package main

import "sync"

// Config holds the tunables the core search and its ambient scaffolding
// read. It is process-wide, mutated only through ConfigStore.Update, and
// read with GetConfig() the way the teacher's search reads its own knobs.
type Config struct {
	MaxDim       int  `json:"max_dim"`
	UseHungarian bool `json:"use_hungarian"`
	MaxSearch    int  `json:"max_search"`

	BatchWorkers int `json:"batch_workers"`

	EnableResultCache bool   `json:"enable_result_cache"`
	ResultCachePath   string `json:"result_cache_path"`

	LogLevel  string `json:"log_level"`
	LogSearch bool   `json:"log_search_stats"`

	HTTPAddr       string `json:"http_addr"`
	MetricsEnabled bool   `json:"metrics_enabled"`
	WSPingInterval int    `json:"ws_ping_interval_ms"`
}

// ConfigStore guards Config behind a RWMutex, mirroring the teacher's
// ConfigStore: readers never block each other, writers (HTTP settings
// updates, CLI flags) serialize.
type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

// DefaultConfig returns the spec's documented defaults for the core three
// keys (MAX_DIM, USE_HUNGARIAN, MAX_SEARCH) plus the ambient defaults this
// repo adds around them.
func DefaultConfig() Config {
	return Config{
		MaxDim:       50,
		UseHungarian: false,
		MaxSearch:    300000,

		BatchWorkers: 4,

		EnableResultCache: true,
		ResultCachePath:   "sokoban_result_cache.gob",

		LogLevel:  "info",
		LogSearch: false,

		HTTPAddr:       ":8080",
		MetricsEnabled: true,
		WSPingInterval: 30000,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

// MaxDim is the process-wide bound used to size the Zobrist tables and to
// compute dense cell keys. It tracks the active Config's MaxDim and must be
// set (ConfigStore.Update refreshes it) before any Level is built.
var MaxDim = DefaultConfig().MaxDim

// GetConfig returns the current process-wide configuration.
func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Update replaces the process-wide configuration and refreshes the
// package-level MaxDim cache used by geometry and the Zobrist tables.
func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
	MaxDim = newConfig.MaxDim
}
