// interfaces.go: public interfaces for Lethe
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe

import "time"

// Limiter decides whether a log message should be emitted, suppressing
// duplicates seen within a trailing time window.
// All methods are safe for concurrent use.
type Limiter interface {
	// ShouldPrint reports whether content should be emitted now.
	// The first sighting of a message always returns true; a repeat within
	// the suppression window returns false. The current time is taken from
	// the configured TimeProvider.
	ShouldPrint(content string) bool

	// ShouldPrintAt is ShouldPrint with an explicit timestamp, for callers
	// that carry their own clock (log shippers, replayers, tests).
	//
	// Timestamps are expected to be non-decreasing across calls. A timestamp
	// older than the most recent entry is clamped to that entry's timestamp
	// rather than rejected; see the package documentation.
	ShouldPrintAt(content string, at time.Time) bool

	// ExpireNow evicts every entry whose last sighting is older than the
	// suppression window and returns the number of entries removed.
	// Eviction otherwise happens incrementally as messages arrive, so this
	// is only needed to reclaim memory for messages that never repeat.
	ExpireNow() int

	// Len returns the current number of tracked messages.
	Len() int

	// Window returns the current suppression window.
	Window() time.Duration

	// SetWindow replaces the suppression window at runtime.
	// Returns LETHE_INVALID_WINDOW if d is not positive.
	SetWindow(d time.Duration) error

	// Clear removes all tracked messages and resets statistics.
	Clear()

	// Stats returns limiter statistics.
	Stats() LimiterStats

	// Close gracefully shuts down the limiter and releases resources.
	Close() error
}

// LimiterStats provides statistics about limiter behavior.
type LimiterStats struct {
	// Allowed is the number of messages that were emitted
	Allowed uint64

	// Suppressed is the number of messages suppressed as duplicates
	Suppressed uint64

	// Evictions is the number of entries evicted from the timeline
	Evictions uint64

	// Size is the current number of tracked messages
	Size int

	// Window is the current suppression window
	Window time.Duration
}

// SuppressionRatio returns the share of decisions that suppressed a message,
// as a percentage (0-100). Returns 0.0 before any decision has been made.
func (s LimiterStats) SuppressionRatio() float64 {
	total := s.Allowed + s.Suppressed
	if total == 0 {
		return 0
	}
	return float64(s.Suppressed) / float64(total) * 100
}

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
// This interface allows injecting optimized time implementations.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector defines an interface for collecting limiter and filter metrics.
// Implementations can send metrics to Prometheus, DataDog, StatsD, or other
// monitoring systems. This interface is designed for zero overhead when nil -
// no metrics are collected.
//
// Performance requirements:
//   - All methods must be lock-free or use minimal locking
//   - All methods must be allocation-free
//   - All methods must complete in < 100ns for production use
//
// Thread-safety:
//   - All methods must be safe for concurrent use
//   - Multiple goroutines will call these methods simultaneously
type MetricsCollector interface {
	// RecordDecision records a ShouldPrint decision with its latency.
	// latencyNs is the duration of the decision in nanoseconds.
	// allowed indicates whether the message was emitted (true) or suppressed (false).
	RecordDecision(latencyNs int64, allowed bool)

	// RecordEviction records a timeline eviction event.
	// Called once per entry removed from the timeline.
	RecordEviction()

	// RecordBloomCheck records a Bloom filter membership test.
	// positive indicates whether the filter reported "maybe present".
	RecordBloomCheck(positive bool)
}

// NoOpMetricsCollector is a metrics collector that does nothing.
// Used as default to avoid nil checks and ensure zero overhead.
// All methods are inlined by the compiler for maximum performance.
type NoOpMetricsCollector struct{}

// RecordDecision does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordDecision(latencyNs int64, allowed bool) {}

// RecordEviction does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordEviction() {}

// RecordBloomCheck does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordBloomCheck(positive bool) {}
