// Copyright (c) 2024 The VeChainThor developers, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

// noopMeters implements every meter interface as a discard, the
// default backend before InitializePrometheusMetrics runs.
type noopMeters struct{}

func (*noopMeters) Add(int64)                            {}
func (*noopMeters) AddWithLabel(int64, map[string]string) {}
func (*noopMeters) Observe(int64)                         {}
func (*noopMeters) ObserveWithLabels(int64, map[string]string) {}

type noopBackend struct{ singleton *noopMeters }

func defaultNoopMetrics() metricsBackend { return &noopBackend{singleton: &noopMeters{}} }

func (b *noopBackend) counter(string) Counter                                     { return b.singleton }
func (b *noopBackend) counterVec(string, []string) CounterVec                     { return b.singleton }
func (b *noopBackend) gauge(string) Gauge                                         { return b.singleton }
func (b *noopBackend) gaugeVec(string, []string) GaugeVec                         { return b.singleton }
func (b *noopBackend) histogram(string, []float64) Histogram                      { return b.singleton }
func (b *noopBackend) histogramVec(string, []string, []float64) HistogramVec      { return b.singleton }
