// limiter.go: windowed log-deduplication limiter
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe

import (
	"sync"
	"sync/atomic"
	"time"
)

// logEntry is a single sighting of a message on the timeline.
// Entries form a singly linked chain in arrival order: each entry is owned
// exclusively by its predecessor through next, starting at the sentinel head.
type logEntry struct {
	content   string
	timestamp int64 // unix nanoseconds
	next      *logEntry
}

// windowLimiter implements Limiter with a timeline chain plus a content index.
//
// The index maps content to the entry for its most recent sighting. It never
// outlives the chain: eviction advances the head and deletes the index keys
// of exactly the entries dropped in that step, so every index key always
// refers to an entry reachable from the head. Because each entry is appended
// once and evicted once, eviction cost is amortized O(1) per decision with no
// separate sweep on the hot path.
type windowLimiter struct {
	mu    sync.Mutex
	head  *logEntry // sentinel; head.next is the oldest live entry
	tail  *logEntry // most recent entry; == head when empty
	index map[string]*logEntry

	window     atomic.Int64 // window in nanoseconds, swappable at runtime
	maxEntries int

	logger           Logger
	timeProvider     TimeProvider
	metricsCollector MetricsCollector
	onEvict          func(content string, lastSeen time.Time)

	// Atomic statistics counters
	allowed    atomic.Uint64
	suppressed atomic.Uint64
	evictions  atomic.Uint64
	size       atomic.Int64
}

// NewLimiter creates a new windowed deduplication limiter.
func NewLimiter(config Config) Limiter {
	_ = config.Validate()

	l := &windowLimiter{
		head:             &logEntry{},
		index:            make(map[string]*logEntry),
		maxEntries:       config.MaxEntries,
		logger:           config.Logger,
		timeProvider:     config.TimeProvider,
		metricsCollector: config.MetricsCollector,
		onEvict:          config.OnEvict,
	}
	l.tail = l.head
	l.window.Store(int64(config.Window))

	return l
}

// ShouldPrint reports whether content should be emitted now.
func (l *windowLimiter) ShouldPrint(content string) bool {
	return l.shouldPrint(content, l.timeProvider.Now())
}

// ShouldPrintAt is ShouldPrint with an explicit timestamp.
func (l *windowLimiter) ShouldPrintAt(content string, at time.Time) bool {
	return l.shouldPrint(content, at.UnixNano())
}

func (l *windowLimiter) shouldPrint(content string, now int64) bool {
	start := l.timeProvider.Now()
	window := l.window.Load()

	l.mu.Lock()

	// Arrival order is assumed to track timestamp order. A timestamp behind
	// the chain tail is clamped to the tail rather than rejected, so the
	// chain stays non-decreasing.
	if l.tail != l.head && now < l.tail.timestamp {
		now = l.tail.timestamp
	}

	if e, ok := l.index[content]; ok {
		if now-e.timestamp < window {
			l.mu.Unlock()
			l.suppressed.Add(1)
			l.metricsCollector.RecordDecision(l.timeProvider.Now()-start, false)
			return false
		}
		// The located entry expired, and everything before it on the chain
		// is at least as old: drop the whole prefix in one step.
		l.evictThrough(e)
	}

	l.append(content, now)
	l.mu.Unlock()

	l.allowed.Add(1)
	l.metricsCollector.RecordDecision(l.timeProvider.Now()-start, true)
	return true
}

// append adds a fresh entry at the tail and indexes it.
// Caller must hold l.mu.
func (l *windowLimiter) append(content string, now int64) {
	e := &logEntry{content: content, timestamp: now}
	l.tail.next = e
	l.tail = e
	l.index[content] = e
	l.size.Add(1)

	if l.maxEntries > 0 && l.size.Load() > int64(l.maxEntries) {
		l.evictThrough(l.head.next)
	}
}

// evictThrough advances the head past target, removing every entry from the
// oldest up to and including target, together with the index keys that still
// point at the removed entries. Caller must hold l.mu, and target must be
// reachable from l.head.
func (l *windowLimiter) evictThrough(target *logEntry) {
	after := target.next

	n := l.head.next
	for {
		next := n.next
		if cur, ok := l.index[n.content]; ok && cur == n {
			delete(l.index, n.content)
		}
		n.next = nil
		l.size.Add(-1)
		l.evictions.Add(1)
		l.metricsCollector.RecordEviction()
		if l.onEvict != nil {
			l.onEvict(n.content, time.Unix(0, n.timestamp))
		}
		if n == target {
			break
		}
		n = next
	}

	l.head.next = after
	if after == nil {
		l.tail = l.head
	}
}

// ExpireNow evicts every entry older than the suppression window.
func (l *windowLimiter) ExpireNow() int {
	now := l.timeProvider.Now()
	window := l.window.Load()

	l.mu.Lock()
	defer l.mu.Unlock()

	expired := 0
	for l.head.next != nil && now-l.head.next.timestamp >= window {
		l.evictThrough(l.head.next)
		expired++
	}
	return expired
}

// Len returns the current number of tracked messages.
func (l *windowLimiter) Len() int {
	return int(l.size.Load())
}

// Window returns the current suppression window.
func (l *windowLimiter) Window() time.Duration {
	return time.Duration(l.window.Load())
}

// SetWindow replaces the suppression window at runtime.
// Entries already on the timeline are re-judged against the new window on
// their next sighting; no retroactive eviction happens here.
func (l *windowLimiter) SetWindow(d time.Duration) error {
	if d <= 0 {
		return NewErrInvalidWindow(d.String())
	}
	old := l.window.Swap(int64(d))
	if old != int64(d) {
		l.logger.Info("suppression window changed", "old", time.Duration(old), "new", d)
	}
	return nil
}

// Clear removes all tracked messages and resets statistics.
func (l *windowLimiter) Clear() {
	l.mu.Lock()
	l.head.next = nil
	l.tail = l.head
	l.index = make(map[string]*logEntry)
	l.size.Store(0)
	l.mu.Unlock()

	l.allowed.Store(0)
	l.suppressed.Store(0)
	l.evictions.Store(0)
}

// Stats returns limiter statistics.
func (l *windowLimiter) Stats() LimiterStats {
	return LimiterStats{
		Allowed:    l.allowed.Load(),
		Suppressed: l.suppressed.Load(),
		Evictions:  l.evictions.Load(),
		Size:       int(l.size.Load()),
		Window:     time.Duration(l.window.Load()),
	}
}

// Close gracefully shuts down the limiter.
func (l *windowLimiter) Close() error {
	l.Clear()
	return nil
}
