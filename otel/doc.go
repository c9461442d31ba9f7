// Package otel provides OpenTelemetry integration for lethe metrics.
//
// # Overview
//
// This package implements the lethe.MetricsCollector interface using OpenTelemetry,
// enabling enterprise-grade observability with automatic percentile calculation and
// multi-backend support (Prometheus, Jaeger, DataDog, Grafana).
//
// The package is a separate module to keep the lethe core lightweight.
// Applications that don't need metrics collection don't pay for the OTEL dependencies.
//
// # Features
//
//   - Automatic Percentiles: OTEL Histograms calculate p50, p95, p99, p99.9 latencies
//   - Multi-Backend Support: Works with Prometheus, Jaeger, DataDog, any OTEL-compatible backend
//   - Suppression Tracking: Real-time allowed/suppressed decision monitoring
//   - Eviction Monitoring: Track timeline pressure and evictions
//   - Bloom Filter Results: positive/negative membership check counters
//   - Thread-Safe: Lock-free, safe for concurrent use
//   - Low Overhead: ~50-100ns per operation
//   - Industry Standard: Uses OpenTelemetry (CNCF standard)
//
// # Installation
//
//	go get github.com/agilira/lethe/otel
//
// # Quick Start
//
// Basic setup with Prometheus exporter:
//
//	import (
//	    "github.com/agilira/lethe"
//	    letheotel "github.com/agilira/lethe/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	// Setup Prometheus exporter
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create OTEL MeterProvider
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	// Create metrics collector
//	metricsCollector, err := letheotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configure limiter with metrics
//	limiter := lethe.NewLimiter(lethe.Config{
//	    Window:           10 * time.Second,
//	    MetricsCollector: metricsCollector,
//	})
//
//	// Use limiter normally - metrics are automatically collected
//	limiter.ShouldPrint("message")
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":2112", nil))
//
// # Metrics Exposed
//
// Histograms (with automatic percentiles):
//   - lethe_decision_latency_ns: ShouldPrint decision latency in nanoseconds
//
// Counters:
//   - lethe_allowed_total: emitted messages
//   - lethe_suppressed_total: suppressed duplicates
//   - lethe_evictions_total: timeline evictions
//   - lethe_bloom_positive_total: "maybe present" Bloom filter results
//   - lethe_bloom_negative_total: "definitely absent" Bloom filter results
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel
