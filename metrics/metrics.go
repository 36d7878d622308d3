// Copyright (c) 2024 The VeChainThor developers, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes Counter/Gauge/Histogram meters (and their
// labeled Vec variants) that start as no-ops and become real
// Prometheus collectors once InitializePrometheusMetrics is called.
// cmd/ldb calls it during "ldb serve" startup; the LazyLoad* thunks let
// a caller set up meters at package-init time without caring whether
// Prometheus is wired up yet.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricNamePrefix distinguishes ldb's own metrics from anything else
// sharing a process-wide default Prometheus registry.
const metricNamePrefix = "ldb_metrics_"

// Counter is a monotonically increasing value.
type Counter interface {
	Add(int64)
}

// CounterVec is a Counter family keyed by label values.
type CounterVec interface {
	AddWithLabel(int64, map[string]string)
}

// Gauge is a value that can move up or down.
type Gauge interface {
	Add(int64)
}

// GaugeVec is a Gauge family keyed by label values.
type GaugeVec interface {
	AddWithLabel(int64, map[string]string)
}

// Histogram records a distribution of observed values.
type Histogram interface {
	Observe(int64)
}

// HistogramVec is a Histogram family keyed by label values.
type HistogramVec interface {
	ObserveWithLabels(int64, map[string]string)
}

type metricsBackend interface {
	counter(name string) Counter
	counterVec(name string, labels []string) CounterVec
	gauge(name string) Gauge
	gaugeVec(name string, labels []string) GaugeVec
	histogram(name string, buckets []float64) Histogram
	histogramVec(name string, labels []string, buckets []float64) HistogramVec
}

var (
	metricsMu sync.Mutex
	metrics   metricsBackend = defaultNoopMetrics()

	lazyMu    sync.Mutex
	lazyFuncs []func()
)

// InitializePrometheusMetrics switches the backend so that every meter
// requested from here on (including through a LazyLoad* thunk) is a
// real Prometheus collector registered on prometheus.DefaultRegisterer.
// A meter obtained before this call stays a no-op.
func InitializePrometheusMetrics() {
	metricsMu.Lock()
	metrics = newPromMetrics()
	metricsMu.Unlock()

	lazyMu.Lock()
	fns := lazyFuncs
	lazyFuncs = nil
	lazyMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func current() metricsBackend {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	return metrics
}

// Counter returns (creating if necessary) a named Counter.
func Counter(name string) Counter { return current().counter(name) }

// CounterVec returns a named, labeled Counter family.
func CounterVec(name string, labels []string) CounterVec { return current().counterVec(name, labels) }

// Gauge returns a named Gauge.
func Gauge(name string) Gauge { return current().gauge(name) }

// GaugeVec returns a named, labeled Gauge family.
func GaugeVec(name string, labels []string) GaugeVec { return current().gaugeVec(name, labels) }

// Histogram returns a named Histogram. A nil buckets slice uses
// Prometheus's default bucket boundaries once a real backend is live.
func Histogram(name string, buckets []float64) Histogram { return current().histogram(name, buckets) }

// HistogramVec returns a named, labeled Histogram family.
func HistogramVec(name string, labels []string, buckets []float64) HistogramVec {
	return current().histogramVec(name, labels, buckets)
}

// LazyLoadCounter returns a thunk that resolves to the real Counter
// once InitializePrometheusMetrics runs, even if called beforehand —
// useful for package-level vars initialized before main() decides
// whether metrics are enabled.
func LazyLoadCounter(name string) func() Counter {
	return func() Counter { return Counter(name) }
}

func LazyLoadCounterVec(name string, labels []string) func() CounterVec {
	return func() CounterVec { return CounterVec(name, labels) }
}

func LazyLoadGauge(name string) func() Gauge {
	return func() Gauge { return Gauge(name) }
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVec {
	return func() GaugeVec { return GaugeVec(name, labels) }
}

func LazyLoadHistogram(name string, buckets []float64) func() Histogram {
	return func() Histogram { return Histogram(name, buckets) }
}

func LazyLoadHistogramVec(name string, labels []string, buckets []float64) func() HistogramVec {
	return func() HistogramVec { return HistogramVec(name, labels, buckets) }
}

// HTTPHandler exposes the Prometheus default registry's gathered
// metrics, for admin to mount at /admin/metrics. When metrics haven't
// been initialized, it answers every request with 404.
func HTTPHandler() http.Handler {
	if _, ok := current().(*noopBackend); ok {
		return http.NotFoundHandler()
	}
	return promhttp.Handler()
}
