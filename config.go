// config.go: configuration for Lethe
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe

import (
	"math"
	"time"

	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for the limiter.
type Config struct {
	// Window is the trailing duration during which a repeated message is
	// suppressed. Must be > 0. Default: DefaultWindow (10 seconds).
	//
	// Note: the window is deliberately configuration, not a constant.
	// Deployments that want per-minute dedup set Window to 10*time.Minute.
	Window time.Duration

	// MaxEntries is an optional hard bound on the number of tracked
	// messages. When the bound is exceeded the oldest entry is evicted,
	// which may let a suppressed message through early.
	// If 0, the timeline is bounded only by the number of distinct
	// messages seen within the window. Default: 0 (unbounded).
	MaxEntries int

	// Logger is used for debugging and monitoring.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for window calculations.
	// If nil, a default implementation is used. Default: system time.
	TimeProvider TimeProvider

	// MetricsCollector is used for collecting operation metrics.
	// If nil, NoOpMetricsCollector is used (zero overhead).
	// Use this to integrate with Prometheus, DataDog, StatsD, or other
	// monitoring systems. Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector

	// OnEvict is called when an entry is evicted from the timeline.
	// The callback runs synchronously under the limiter lock: it must be
	// fast, non-blocking, and must not call back into the limiter.
	OnEvict func(content string, lastSeen time.Time)
}

// Validate checks configuration parameters and applies sensible defaults.
// Returns nil (no actual validation errors, only normalization).
//
// This method is automatically called by NewLimiter, so you typically don't
// need to call it manually. However, it's provided as a public API if you
// want to inspect the normalized configuration before creating a limiter.
//
// Default values applied:
//   - Window: DefaultWindow (10s) if <= 0
//   - MaxEntries: 0 (unbounded) if < 0
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}

	if c.MaxEntries < 0 {
		c.MaxEntries = 0
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Window:           DefaultWindow,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// BloomConfig holds configuration parameters for the Bloom filter.
//
// There are two ways to size a filter:
//
//   - Explicit: set Size and HashCount directly. Both must be > 0.
//   - Derived: leave Size and HashCount zero and set ExpectedItems and
//     FalsePositiveRate; optimal parameters are computed from the standard
//     formulas m = -n*ln(p)/ln(2)^2 and k = (m/n)*ln(2).
//
// Mixing the two (one of Size/HashCount set, the other zero) is a
// configuration error.
type BloomConfig struct {
	// Size is the number of bits in the filter. 0 means derive from
	// ExpectedItems and FalsePositiveRate.
	Size int

	// HashCount is the number of derived hash functions (k). 0 means
	// derive from ExpectedItems and FalsePositiveRate.
	HashCount int

	// ExpectedItems is the cardinality the filter is sized for when Size
	// is not set. Default: DefaultBloomExpectedItems.
	ExpectedItems int

	// FalsePositiveRate is the target false-positive rate used to derive
	// parameters when Size is not set. Must be in (0, 1).
	// Default: DefaultBloomFalsePositiveRate.
	FalsePositiveRate float64

	// MetricsCollector receives RecordBloomCheck events.
	// If nil, NoOpMetricsCollector is used. Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector
}

// Validate checks parameters and resolves the effective bit count and hash
// count. Unlike Config.Validate, this can fail: the filter cannot repair a
// contradictory or out-of-range sizing request.
//
// Returned errors:
//   - LETHE_INVALID_BLOOM_SIZE: Size < 0, or Size == 0 while HashCount > 0
//   - LETHE_INVALID_HASH_COUNT: HashCount < 0, or HashCount == 0 while Size > 0
//   - LETHE_INVALID_EXPECTED_ITEMS: ExpectedItems < 0
//   - LETHE_INVALID_FP_RATE: FalsePositiveRate outside (0, 1)
func (c *BloomConfig) Validate() error {
	if c.Size < 0 {
		return NewErrInvalidBloomSize(c.Size)
	}
	if c.HashCount < 0 {
		return NewErrInvalidHashCount(c.HashCount)
	}
	if c.Size > 0 && c.HashCount == 0 {
		return NewErrInvalidHashCount(c.HashCount)
	}
	if c.HashCount > 0 && c.Size == 0 {
		return NewErrInvalidBloomSize(c.Size)
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	if c.Size > 0 {
		return nil
	}

	// Derived sizing path.
	if c.ExpectedItems < 0 {
		return NewErrInvalidExpectedItems(c.ExpectedItems)
	}
	if c.ExpectedItems == 0 {
		c.ExpectedItems = DefaultBloomExpectedItems
	}
	if c.FalsePositiveRate == 0 {
		c.FalsePositiveRate = DefaultBloomFalsePositiveRate
	}
	if c.FalsePositiveRate <= 0 || c.FalsePositiveRate >= 1 {
		return NewErrInvalidFalsePositiveRate(c.FalsePositiveRate)
	}

	c.Size, c.HashCount = optimalBloomParameters(c.ExpectedItems, c.FalsePositiveRate)
	return nil
}

// optimalBloomParameters computes the optimal bit count and hash count for
// n expected items at false-positive rate p:
//
//	m = -n*ln(p) / ln(2)^2
//	k = (m/n) * ln(2)
func optimalBloomParameters(n int, p float64) (size, hashCount int) {
	ln2 := math.Ln2
	m := -float64(n) * math.Log(p) / (ln2 * ln2)
	size = int(math.Ceil(m))
	if size < 64 {
		size = 64
	}

	hashCount = int(math.Ceil(float64(size) / float64(n) * ln2))
	if hashCount < 1 {
		hashCount = 1
	}
	if hashCount > MaxBloomHashCount {
		hashCount = MaxBloomHashCount
	}
	return size, hashCount
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides ~121x faster time access compared to time.Now() with zero allocations.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
