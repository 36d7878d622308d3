// Copyright (c) 2024 The VeChainThor developers, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type promCountMeter struct{ c prometheus.Counter }

func (m *promCountMeter) Add(v int64) { m.c.Add(float64(v)) }

type promCountVecMeter struct{ v *prometheus.CounterVec }

func (m *promCountVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(labels).Add(float64(v))
}

type promGaugeMeter struct{ g prometheus.Gauge }

func (m *promGaugeMeter) Add(v int64) { m.g.Add(float64(v)) }

type promGaugeVecMeter struct{ v *prometheus.GaugeVec }

func (m *promGaugeVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.v.With(labels).Add(float64(v))
}

type promHistogramMeter struct{ h prometheus.Histogram }

func (m *promHistogramMeter) Observe(v int64) { m.h.Observe(float64(v)) }

type promHistogramVecMeter struct{ v *prometheus.HistogramVec }

func (m *promHistogramVecMeter) ObserveWithLabels(v int64, labels map[string]string) {
	m.v.With(labels).Observe(float64(v))
}

// promMetrics registers every meter on prometheus.DefaultRegisterer
// the first time it's asked for by name, and returns the cached meter
// on subsequent calls (Prometheus panics on double-registration).
type promMetrics struct {
	mu         sync.Mutex
	counters   map[string]*promCountMeter
	counterVecs map[string]*promCountVecMeter
	gauges     map[string]*promGaugeMeter
	gaugeVecs  map[string]*promGaugeVecMeter
	hists      map[string]*promHistogramMeter
	histVecs   map[string]*promHistogramVecMeter
}

func newPromMetrics() *promMetrics {
	return &promMetrics{
		counters:    make(map[string]*promCountMeter),
		counterVecs: make(map[string]*promCountVecMeter),
		gauges:      make(map[string]*promGaugeMeter),
		gaugeVecs:   make(map[string]*promGaugeVecMeter),
		hists:       make(map[string]*promHistogramMeter),
		histVecs:    make(map[string]*promHistogramVecMeter),
	}
}

func (p *promMetrics) counter(name string) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counters[name]; ok {
		return m
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: metricNamePrefix + name})
	prometheus.MustRegister(c)
	m := &promCountMeter{c: c}
	p.counters[name] = m
	return m
}

func (p *promMetrics) counterVec(name string, labels []string) CounterVec {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.counterVecs[name]; ok {
		return m
	}
	v := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metricNamePrefix + name}, labels)
	prometheus.MustRegister(v)
	m := &promCountVecMeter{v: v}
	p.counterVecs[name] = m
	return m
}

func (p *promMetrics) gauge(name string) Gauge {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gauges[name]; ok {
		return m
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: metricNamePrefix + name})
	prometheus.MustRegister(g)
	m := &promGaugeMeter{g: g}
	p.gauges[name] = m
	return m
}

func (p *promMetrics) gaugeVec(name string, labels []string) GaugeVec {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.gaugeVecs[name]; ok {
		return m
	}
	v := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metricNamePrefix + name}, labels)
	prometheus.MustRegister(v)
	m := &promGaugeVecMeter{v: v}
	p.gaugeVecs[name] = m
	return m
}

func (p *promMetrics) histogram(name string, buckets []float64) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.hists[name]; ok {
		return m
	}
	opts := prometheus.HistogramOpts{Name: metricNamePrefix + name}
	if buckets != nil {
		opts.Buckets = buckets
	}
	h := prometheus.NewHistogram(opts)
	prometheus.MustRegister(h)
	m := &promHistogramMeter{h: h}
	p.hists[name] = m
	return m
}

func (p *promMetrics) histogramVec(name string, labels []string, buckets []float64) HistogramVec {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.histVecs[name]; ok {
		return m
	}
	opts := prometheus.HistogramOpts{Name: metricNamePrefix + name}
	if buckets != nil {
		opts.Buckets = buckets
	}
	v := prometheus.NewHistogramVec(opts, labels)
	prometheus.MustRegister(v)
	m := &promHistogramVecMeter{v: v}
	p.histVecs[name] = m
	return m
}
