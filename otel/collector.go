// collector.go: OpenTelemetry implementation of lethe.MetricsCollector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements lethe.MetricsCollector using OpenTelemetry.
//
// This collector records limiter decisions, evictions and Bloom filter checks
// to OpenTelemetry metrics, enabling enterprise-grade observability with
// automatic percentile calculation and multi-backend support.
//
// Thread-safety: Safe for concurrent use by multiple goroutines.
// The underlying OTEL instruments are thread-safe and lock-free.
//
// Performance: Minimal overhead (<100ns per operation), allocation-free after initialization.
type OTelMetricsCollector struct {
	// OTEL instruments for recording metrics
	decisionLatency metric.Int64Histogram // ShouldPrint decision latency histogram
	allowed         metric.Int64Counter   // Emitted messages counter
	suppressed      metric.Int64Counter   // Suppressed duplicates counter
	evictions       metric.Int64Counter   // Timeline evictions counter
	bloomPositive   metric.Int64Counter   // Bloom "maybe present" results counter
	bloomNegative   metric.Int64Counter   // Bloom "definitely absent" results counter
}

// Options for configuring OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/lethe"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name.
// This is useful for distinguishing metrics from multiple limiter instances
// or integrating with existing OTEL instrumentation.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector.
//
// Parameters:
//   - provider: OpenTelemetry MeterProvider. Must not be nil.
//   - opts: Optional configuration options (meter name, etc.)
//
// Metrics exposed:
//   - lethe_decision_latency_ns: Histogram of ShouldPrint latencies in nanoseconds
//   - lethe_allowed_total: Counter of emitted messages
//   - lethe_suppressed_total: Counter of suppressed duplicates
//   - lethe_evictions_total: Counter of timeline evictions
//   - lethe_bloom_positive_total: Counter of "maybe present" filter results
//   - lethe_bloom_negative_total: Counter of "definitely absent" filter results
//
// Example:
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	collector, err := NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	// Apply options
	options := Options{
		MeterName: "github.com/agilira/lethe",
	}
	for _, opt := range opts {
		opt(&options)
	}

	// Create meter
	meter := provider.Meter(options.MeterName)

	// Create collector
	collector := &OTelMetricsCollector{}

	// Create decision latency histogram
	var err error
	collector.decisionLatency, err = meter.Int64Histogram(
		"lethe_decision_latency_ns",
		metric.WithDescription("Latency of ShouldPrint decisions in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	// Create allowed counter
	collector.allowed, err = meter.Int64Counter(
		"lethe_allowed_total",
		metric.WithDescription("Total number of emitted messages"),
	)
	if err != nil {
		return nil, err
	}

	// Create suppressed counter
	collector.suppressed, err = meter.Int64Counter(
		"lethe_suppressed_total",
		metric.WithDescription("Total number of suppressed duplicates"),
	)
	if err != nil {
		return nil, err
	}

	// Create evictions counter
	collector.evictions, err = meter.Int64Counter(
		"lethe_evictions_total",
		metric.WithDescription("Total number of timeline evictions"),
	)
	if err != nil {
		return nil, err
	}

	// Create bloom result counters
	collector.bloomPositive, err = meter.Int64Counter(
		"lethe_bloom_positive_total",
		metric.WithDescription("Total number of 'maybe present' Bloom filter results"),
	)
	if err != nil {
		return nil, err
	}

	collector.bloomNegative, err = meter.Int64Counter(
		"lethe_bloom_negative_total",
		metric.WithDescription("Total number of 'definitely absent' Bloom filter results"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordDecision records a ShouldPrint decision.
//
// Parameters:
//   - latencyNs: Decision latency in nanoseconds. Must be >= 0.
//   - allowed: Whether the message was emitted (true) or suppressed (false).
//
// This method:
//   - Records latency to the decision histogram (used for percentile calculation)
//   - Increments either the allowed or the suppressed counter
//
// Thread-safety: Safe for concurrent use.
// Performance: ~50-100ns overhead, allocation-free.
func (c *OTelMetricsCollector) RecordDecision(latencyNs int64, allowed bool) {
	ctx := context.Background()

	// Record latency histogram
	c.decisionLatency.Record(ctx, latencyNs)

	// Increment decision counter
	if allowed {
		c.allowed.Add(ctx, 1)
	} else {
		c.suppressed.Add(ctx, 1)
	}
}

// RecordEviction records a timeline eviction event.
//
// This method increments the evictions counter.
//
// Thread-safety: Safe for concurrent use.
// Performance: ~50-100ns overhead, allocation-free.
func (c *OTelMetricsCollector) RecordEviction() {
	c.evictions.Add(context.Background(), 1)
}

// RecordBloomCheck records a Bloom filter membership test result.
//
// Parameters:
//   - positive: Whether the filter reported "maybe present".
//
// Thread-safety: Safe for concurrent use.
// Performance: ~50-100ns overhead, allocation-free.
func (c *OTelMetricsCollector) RecordBloomCheck(positive bool) {
	ctx := context.Background()
	if positive {
		c.bloomPositive.Add(ctx, 1)
	} else {
		c.bloomNegative.Add(ctx, 1)
	}
}
