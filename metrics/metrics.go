/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exposes Prometheus counters for naming and resolution.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mrx"

// Metrics holds the registry counters.
type Metrics struct {
	builds      *prometheus.CounterVec
	crashes     *prometheus.CounterVec
	failures    *prometheus.CounterVec
	resolves    *prometheus.CounterVec
	cacheMisses prometheus.Counter
}

// New creates the counters and registers them with reg.
// A nil reg uses a fresh private registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "name_builds_total",
			Help:      "Name build requests by outcome.",
		}, []string{"outcome"}),
		crashes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheme_crashes_total",
			Help:      "Naming scheme panics caught while building names, by shape.",
		}, []string{"shape"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheme_failures_total",
			Help:      "Naming scheme failures while building names, by shape.",
		}, []string{"shape"}),
		resolves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "name_resolves_total",
			Help:      "Name resolutions by outcome.",
		}, []string{"outcome"}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effective_cache_misses_total",
			Help:      "Effective scheme lists computed for a model type.",
		}),
	}
}

// Build counts a build request. found reports whether a name was produced.
func (m *Metrics) Build(found bool) {
	if m == nil {
		return
	}
	if found {
		m.builds.WithLabelValues("found").Inc()
	} else {
		m.builds.WithLabelValues("missing").Inc()
	}
}

// Crash counts a scheme panic.
func (m *Metrics) Crash(shape string) {
	if m == nil {
		return
	}
	m.crashes.WithLabelValues(shape).Inc()
}

// Failure counts a scheme failure.
func (m *Metrics) Failure(shape string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(shape).Inc()
}

// Resolve counts a resolution. err is the resolution error, if any.
func (m *Metrics) Resolve(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.resolves.WithLabelValues("error").Inc()
	} else {
		m.resolves.WithLabelValues("ok").Inc()
	}
}

// CacheMiss counts a computed effective scheme list.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
