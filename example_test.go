// example_test.go: godoc examples for Lethe
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lethe_test

import (
	"fmt"
	"time"

	"github.com/agilira/lethe"
)

// ExampleNewLimiter demonstrates deduplicating a stream of log messages.
func ExampleNewLimiter() {
	limiter := lethe.NewLimiter(lethe.Config{
		Window: 10 * time.Second,
	})
	defer limiter.Close()

	base := time.Unix(1700000000, 0)
	stream := []struct {
		message string
		offset  time.Duration
	}{
		{"disk full", 0},
		{"disk full", 5 * time.Second},  // repeat inside the window
		{"disk full", 11 * time.Second}, // outside the window, prints again
		{"link down", 11 * time.Second},
	}

	for _, event := range stream {
		if limiter.ShouldPrintAt(event.message, base.Add(event.offset)) {
			fmt.Println(event.message)
		}
	}

	// Output:
	// disk full
	// disk full
	// link down
}

// ExampleNewBloomFilter demonstrates using the filter as a cheap pre-check.
func ExampleNewBloomFilter() {
	filter, err := lethe.NewBloomFilter(lethe.BloomConfig{
		ExpectedItems:     100_000,
		FalsePositiveRate: 0.01,
	})
	if err != nil {
		fmt.Println("config error:", err)
		return
	}

	filter.AddString("user:123")

	if filter.MightContainString("user:123") {
		fmt.Println("maybe present, run the authoritative check")
	}
	if !filter.MightContainString("user:456") {
		fmt.Println("definitely absent, skip the expensive lookup")
	}

	// Output:
	// maybe present, run the authoritative check
	// definitely absent, skip the expensive lookup
}

// ExampleLimiter_stats demonstrates reading suppression statistics.
func ExampleLimiter_stats() {
	limiter := lethe.NewLimiter(lethe.Config{Window: time.Minute})
	defer limiter.Close()

	base := time.Unix(1700000000, 0)
	limiter.ShouldPrintAt("noisy message", base)
	limiter.ShouldPrintAt("noisy message", base.Add(time.Second))
	limiter.ShouldPrintAt("noisy message", base.Add(2*time.Second))
	limiter.ShouldPrintAt("noisy message", base.Add(3*time.Second))

	stats := limiter.Stats()
	fmt.Printf("allowed=%d suppressed=%d ratio=%.0f%%\n",
		stats.Allowed, stats.Suppressed, stats.SuppressionRatio())

	// Output: allowed=1 suppressed=3 ratio=75%
}
