// hot-reload.go: dynamic configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig provides dynamic configuration reload capabilities using Argus.
// It watches a configuration file and automatically updates limiter settings
// when changes are detected.
type HotConfig struct {
	limiter Limiter
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  Config

	// OnReload is called after configuration is successfully reloaded.
	// This callback is optional and must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations.
	// If nil, uses NoOpLogger.
	Logger Logger
}

// NewHotConfig creates a new hot-reloadable configuration for a limiter.
// It starts watching the configuration file immediately.
//
// Example configuration file (YAML):
//
//	limiter:
//	  window: "10s"
//	  max_entries: 100000
//
// Supported configuration keys:
//   - limiter.window (duration string): Suppression window (e.g., "10s", "10m")
//   - limiter.max_entries (int): Upper bound on tracked messages
//
// Note: Changes to the window are applied dynamically through SetWindow.
// Changes to max_entries require limiter reconstruction and are recorded in
// the returned configuration only.
func NewHotConfig(limiter Limiter, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		limiter:  limiter,
		OnReload: opts.OnReload,
		config:   DefaultConfig(), // Start with defaults
	}

	// Create Argus config with specified PollInterval for fast file change detection
	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	// Use UniversalConfigWatcherWithConfig to pass custom poll interval
	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
// Note: The watcher monitors file changes at the configured PollInterval.
func (hc *HotConfig) Start() error {
	// Check if already running to avoid ARGUS_WATCHER_BUSY error
	if hc.watcher.IsRunning() {
		return nil // Already started
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
// Returns any error from stopping the watcher.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the current configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// handleConfigChange is called by Argus when configuration changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData)
	hc.config = newConfig
	hc.mu.Unlock()

	// Apply dynamic configuration changes
	hc.applyChanges(oldConfig, newConfig)

	// Trigger callback if set
	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseDuration extracts a time.Duration from a string value.
func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil && d > 0 {
			return d, true
		}
	}
	return 0, false
}

// parseConfig extracts limiter configuration from Argus config data.
func (hc *HotConfig) parseConfig(data map[string]interface{}) Config {
	config := DefaultConfig()

	// Extract limiter section - Argus might nest it or provide it directly
	limiterSection, ok := data["limiter"].(map[string]interface{})
	if !ok {
		// Try if the whole data IS the limiter section
		if _, hasWindow := data["window"]; hasWindow {
			limiterSection = data
		} else {
			return config
		}
	}

	// Parse Window (string duration like "10s", "10m")
	if window, ok := parseDuration(limiterSection["window"]); ok {
		config.Window = window
	}

	// Parse MaxEntries
	if maxEntries, ok := parsePositiveInt(limiterSection["max_entries"]); ok {
		config.MaxEntries = maxEntries
	}

	return config
}

// applyChanges applies configuration changes to the running limiter.
// The window is read atomically on every decision, so swapping it takes
// effect immediately. MaxEntries changes require limiter reconstruction
// and are not applied dynamically.
func (hc *HotConfig) applyChanges(old, new Config) {
	if new.Window != old.Window {
		_ = hc.limiter.SetWindow(new.Window)
	}
}
