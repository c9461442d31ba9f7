// lethe.go: version and default parameters
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lethe

import "time"

const (
	// Version of the Lethe library
	Version = "v0.1.0-dev"

	// DefaultWindow is the default suppression window for the limiter.
	// A message repeated within this trailing window is suppressed.
	DefaultWindow = 10 * time.Second

	// DefaultBloomExpectedItems is the default cardinality the Bloom filter
	// is sized for when no explicit size is configured.
	DefaultBloomExpectedItems = 10_000

	// DefaultBloomFalsePositiveRate is the default target false-positive
	// rate used to derive Bloom filter parameters.
	DefaultBloomFalsePositiveRate = 0.01

	// MaxBloomHashCount caps the number of derived hash functions to avoid
	// excessive hashing for very aggressive false-positive targets.
	MaxBloomHashCount = 30
)
