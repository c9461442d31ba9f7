// Package lethe provides a windowed log-deduplication limiter and a
// lock-free Bloom filter for cheap membership pre-checks.
//
// # Overview
//
// Lethe solves a narrow, common problem: a hot code path that logs the same
// message thousands of times per second. The limiter answers one question -
// "should this message be printed now?" - suppressing repeats seen within a
// trailing time window while keeping memory bounded through incremental,
// amortized O(1) eviction. No background goroutines, no periodic sweeps.
//
// The Bloom filter is the companion structure for the other half of the
// problem: deciding cheaply whether an expensive authoritative check (a
// database lookup, a disk read) can be skipped entirely.
//
// # Features
//
//   - Windowed Deduplication: repeats inside the window are suppressed, the
//     first sighting and any re-sighting outside the window always print
//   - Incremental Eviction: stale entries are dropped as a side effect of
//     decisions, amortized O(1) per call, never a blocking O(n) sweep
//   - Lock-Free Bloom Filter: atomic word-level bit updates, zero false
//     negatives, false-positive rate bounded by the standard formula
//   - Hot Reload: the suppression window can be swapped at runtime from a
//     watched configuration file (Argus integration)
//   - Structured Errors: rich error context with error codes
//   - Metrics Collection: MetricsCollector interface for observability,
//     with an OpenTelemetry implementation in the optional otel submodule
//
// # Quick Start
//
//	import "github.com/agilira/lethe"
//
//	func main() {
//	    limiter := lethe.NewLimiter(lethe.Config{
//	        Window: 10 * time.Second,
//	    })
//	    defer limiter.Close()
//
//	    for _, line := range lines {
//	        if limiter.ShouldPrint(line) {
//	            fmt.Println(line)
//	        }
//	    }
//	}
//
// # How Suppression Works
//
// The limiter keeps two structures that are always mutated together:
//
//   - Timeline: a singly linked chain of entries in arrival order, owned
//     from a sentinel head
//   - Index: a map from message content to the entry for its most recent
//     sighting
//
// A decision is a single index lookup. On a miss the message is new (or
// expired and already evicted): it is appended to the tail, indexed, and
// printed. On a hit within the window it is suppressed with no mutation at
// all. On a hit outside the window, every entry from the head up to and
// including the located one is at least as stale, so the whole prefix is
// dropped in one pointer move plus one index delete per dropped entry -
// each entry is appended once and evicted once, which is what makes the
// eviction cost amortized O(1).
//
// Messages that never repeat are not revisited by this scheme; call
// ExpireNow to reclaim them, or set Config.MaxEntries for a hard bound.
//
// # Timestamps
//
// ShouldPrint reads the configured TimeProvider (go-timecache by default).
// ShouldPrintAt accepts an explicit timestamp for callers with their own
// clock. Arrival order is assumed to track timestamp order; a timestamp
// behind the chain tail is clamped to the tail timestamp rather than
// rejected, keeping the chain non-decreasing. Callers that want to fail on
// clock regressions instead should validate before calling and use
// NewErrInvalidTimestamp to report the violation.
//
// # Window Choice
//
// The suppression window defaults to 10 seconds (DefaultWindow) and is an
// explicit configuration knob, never a hidden constant. Deployments that
// deduplicate on a per-minute scale simply set Window to 10*time.Minute.
//
// # Bloom Filter
//
//	filter, err := lethe.NewBloomFilter(lethe.BloomConfig{
//	    ExpectedItems:     100_000,
//	    FalsePositiveRate: 0.01,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	filter.Add([]byte("seen-before"))
//	if !filter.MightContain(key) {
//	    return nil // definitely unknown, skip the expensive check
//	}
//	return authoritativeLookup(key)
//
// The filter derives its k indices from two FNV hashes via double hashing
// (h1 + i*h2 mod m), so membership tests cost O(k) with no per-hash setup.
// Sizing is the caller's decision: either give Size and HashCount directly,
// or give the expected cardinality and target false-positive rate and let
// the optimal parameters be computed. There is no removal operation;
// supporting one would require a counting variant or accepting false
// negatives, both out of scope.
//
// # Concurrency Model
//
//   - Limiter: a single mutex guards the timeline and index as one unit,
//     since they must stay consistent with each other; statistics are
//     atomic counters read without the lock
//   - Bloom filter: fully lock-free, bits are set with atomic OR and read
//     with atomic loads, so concurrent Add calls never lose writes
//
// # Error Handling
//
// Constructors validate configuration and return structured errors from the
// go-errors library with LETHE_* error codes. Decisions themselves are total:
// ShouldPrint, Add and MightContain never fail for well-formed input.
//
//	_, err := lethe.NewBloomFilter(lethe.BloomConfig{Size: -1, HashCount: 2})
//	if lethe.IsConfigError(err) {
//	    log.Fatalf("bad filter config: %v", err)
//	}
//
// # Observability
//
// Wire a MetricsCollector to observe decisions, evictions and filter checks.
// The otel submodule provides an OpenTelemetry-backed implementation with
// latency histograms and counters; the default NoOpMetricsCollector costs
// nothing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lethe
