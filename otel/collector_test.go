// collector_test.go: tests for the OpenTelemetry metrics collector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"testing"

	"github.com/agilira/lethe"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestOTelMetricsCollector_Interface verifies OTelMetricsCollector implements lethe.MetricsCollector
func TestOTelMetricsCollector_Interface(t *testing.T) {
	var _ lethe.MetricsCollector = (*OTelMetricsCollector)(nil)
}

// TestNewOTelMetricsCollector tests constructor with valid meter provider
func TestNewOTelMetricsCollector(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Errorf("Failed to shutdown provider: %v", err)
		}
	}()

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}

// TestNewOTelMetricsCollector_NilProvider tests error handling with nil provider
func TestNewOTelMetricsCollector_NilProvider(t *testing.T) {
	collector, err := NewOTelMetricsCollector(nil)
	if err == nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return error")
	}
	if collector != nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return nil collector")
	}
}

// collectMetrics gathers sums and histogram counts by metric name.
func collectMetrics(t *testing.T, reader *metric.ManualReader) (sums map[string]int64, histCounts map[string]uint64) {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	sums = make(map[string]int64)
	histCounts = make(map[string]uint64)

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					histCounts[m.Name] += dp.Count
				}
			}
		}
	}
	return sums, histCounts
}

// TestOTelMetricsCollector_RecordDecision tests decision metrics
func TestOTelMetricsCollector_RecordDecision(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	// Record decisions
	collector.RecordDecision(1000, true)  // 1μs allowed
	collector.RecordDecision(2000, false) // 2μs suppressed
	collector.RecordDecision(1500, true)  // 1.5μs allowed

	sums, histCounts := collectMetrics(t, reader)

	if got := histCounts["lethe_decision_latency_ns"]; got != 3 {
		t.Errorf("Expected 3 latency samples, got %d", got)
	}
	if got := sums["lethe_allowed_total"]; got != 2 {
		t.Errorf("Expected 2 allowed, got %d", got)
	}
	if got := sums["lethe_suppressed_total"]; got != 1 {
		t.Errorf("Expected 1 suppressed, got %d", got)
	}
}

// TestOTelMetricsCollector_RecordEviction tests eviction metrics
func TestOTelMetricsCollector_RecordEviction(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordEviction()
	collector.RecordEviction()

	sums, _ := collectMetrics(t, reader)

	if got := sums["lethe_evictions_total"]; got != 2 {
		t.Errorf("Expected 2 evictions, got %d", got)
	}
}

// TestOTelMetricsCollector_RecordBloomCheck tests Bloom filter metrics
func TestOTelMetricsCollector_RecordBloomCheck(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	collector.RecordBloomCheck(true)
	collector.RecordBloomCheck(false)
	collector.RecordBloomCheck(false)

	sums, _ := collectMetrics(t, reader)

	if got := sums["lethe_bloom_positive_total"]; got != 1 {
		t.Errorf("Expected 1 positive, got %d", got)
	}
	if got := sums["lethe_bloom_negative_total"]; got != 2 {
		t.Errorf("Expected 2 negatives, got %d", got)
	}
}

// TestOTelMetricsCollector_WithLimiter exercises the collector end to end
func TestOTelMetricsCollector_WithLimiter(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}

	limiter := lethe.NewLimiter(lethe.Config{
		MetricsCollector: collector,
	})
	defer limiter.Close()

	limiter.ShouldPrint("msg") // allowed
	limiter.ShouldPrint("msg") // suppressed

	sums, histCounts := collectMetrics(t, reader)

	if got := sums["lethe_allowed_total"]; got != 1 {
		t.Errorf("Expected 1 allowed, got %d", got)
	}
	if got := sums["lethe_suppressed_total"]; got != 1 {
		t.Errorf("Expected 1 suppressed, got %d", got)
	}
	if got := histCounts["lethe_decision_latency_ns"]; got != 2 {
		t.Errorf("Expected 2 latency samples, got %d", got)
	}
}

// TestWithMeterName tests the functional option
func TestWithMeterName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider, WithMeterName("custom/meter"))
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	if collector == nil {
		t.Fatal("NewOTelMetricsCollector() returned nil")
	}
}
