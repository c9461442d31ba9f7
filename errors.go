// errors.go: structured error handling for lethe operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for limiter and Bloom filter operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lethe

import (
	goerrors "errors"
	"strconv"

	"github.com/agilira/go-errors"
)

// Error codes for Lethe operations
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidConfig        errors.ErrorCode = "LETHE_INVALID_CONFIG"
	ErrCodeInvalidWindow        errors.ErrorCode = "LETHE_INVALID_WINDOW"
	ErrCodeInvalidMaxEntries    errors.ErrorCode = "LETHE_INVALID_MAX_ENTRIES"
	ErrCodeInvalidBloomSize     errors.ErrorCode = "LETHE_INVALID_BLOOM_SIZE"
	ErrCodeInvalidHashCount     errors.ErrorCode = "LETHE_INVALID_HASH_COUNT"
	ErrCodeInvalidExpectedItems errors.ErrorCode = "LETHE_INVALID_EXPECTED_ITEMS"
	ErrCodeInvalidFPRate        errors.ErrorCode = "LETHE_INVALID_FP_RATE"

	// Operation errors (2xxx)
	ErrCodeInvalidTimestamp errors.ErrorCode = "LETHE_INVALID_TIMESTAMP"
)

// Common error messages
const (
	msgInvalidWindow        = "invalid window: must be greater than 0"
	msgInvalidMaxEntries    = "invalid max entries: must be non-negative"
	msgInvalidBloomSize     = "invalid bloom filter size: must be greater than 0"
	msgInvalidHashCount     = "invalid hash count: must be greater than 0"
	msgInvalidExpectedItems = "invalid expected items: must be non-negative"
	msgInvalidFPRate        = "invalid false positive rate: must be between 0.0 and 1.0 exclusive"
	msgInvalidTimestamp     = "timestamp regresses relative to the most recent entry"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidWindow creates an error for a non-positive suppression window
func NewErrInvalidWindow(window interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidWindow, msgInvalidWindow, map[string]interface{}{
		"provided_window": window,
	})
}

// NewErrInvalidMaxEntries creates an error for a negative entry bound
func NewErrInvalidMaxEntries(maxEntries int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxEntries, msgInvalidMaxEntries, map[string]interface{}{
		"provided_max_entries": maxEntries,
	})
}

// NewErrInvalidBloomSize creates an error for an invalid Bloom filter bit count
func NewErrInvalidBloomSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidBloomSize, msgInvalidBloomSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidHashCount creates an error for an invalid Bloom hash count
func NewErrInvalidHashCount(hashCount int) error {
	return errors.NewWithContext(ErrCodeInvalidHashCount, msgInvalidHashCount, map[string]interface{}{
		"provided_hash_count": hashCount,
		"minimum_required":    1,
	})
}

// NewErrInvalidExpectedItems creates an error for a negative expected cardinality
func NewErrInvalidExpectedItems(items int) error {
	return errors.NewWithField(ErrCodeInvalidExpectedItems, msgInvalidExpectedItems, "provided_items", strconv.Itoa(items))
}

// NewErrInvalidFalsePositiveRate creates an error for an out-of-range target rate
func NewErrInvalidFalsePositiveRate(rate float64) error {
	return errors.NewWithContext(ErrCodeInvalidFPRate, msgInvalidFPRate, map[string]interface{}{
		"provided_rate": rate,
		"valid_range":   "0.0 < rate < 1.0",
	})
}

// =============================================================================
// OPERATION ERRORS
// =============================================================================

// NewErrInvalidTimestamp creates an error for a timestamp that moves backward
// relative to the most recent timeline entry. The limiter itself clamps
// regressing timestamps rather than failing; this constructor is for callers
// that validate their clock source externally before feeding the limiter.
func NewErrInvalidTimestamp(timestamp, latest int64) error {
	return errors.NewWithContext(ErrCodeInvalidTimestamp, msgInvalidTimestamp, map[string]interface{}{
		"provided_timestamp": timestamp,
		"latest_timestamp":   latest,
	})
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsConfigError checks if error is a configuration error
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidConfig || code == ErrCodeInvalidWindow ||
			code == ErrCodeInvalidMaxEntries || code == ErrCodeInvalidBloomSize ||
			code == ErrCodeInvalidHashCount || code == ErrCodeInvalidExpectedItems ||
			code == ErrCodeInvalidFPRate
	}
	return false
}

// IsInvalidTimestamp checks if error is a timestamp regression error
func IsInvalidTimestamp(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidTimestamp)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	// Type assert to *errors.Error to access Context field
	var letheErr *errors.Error
	if goerrors.As(err, &letheErr) {
		return letheErr.Context
	}
	return nil
}
