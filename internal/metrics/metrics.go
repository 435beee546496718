// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the proxy's Prometheus counters, gauges, and
// histograms: global metric vars, MustRegister in init(), harmless if
// /metrics is never mounted.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sparql_proxy_requests_total",
		Help: "Total /sparql requests that passed normalization, labeled by outcome (hit, miss, error).",
	}, []string{"outcome"})

	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparql_proxy_cache_hits_total",
		Help: "Total cache hits served without enqueueing a job.",
	})

	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparql_proxy_cache_misses_total",
		Help: "Total cache misses that required enqueueing a job.",
	})

	QueueWaiting = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sparql_proxy_queue_waiting",
		Help: "Current number of jobs waiting for a worker slot.",
	})

	QueueRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sparql_proxy_queue_running",
		Help: "Current number of jobs running.",
	})

	JobDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sparql_proxy_job_duration_seconds",
		Help:    "Job execution time from running to terminal, labeled by outcome.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	BackendErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparql_proxy_backend_errors_total",
		Help: "Total job failures attributable to a non-2xx upstream response.",
	})

	ShardsIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparql_proxy_shards_issued_total",
		Help: "Total chunk-executor shard requests issued to the backend.",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		QueueWaiting,
		QueueRunning,
		JobDurationSeconds,
		BackendErrorsTotal,
		ShardsIssuedTotal,
	)
}

// Handler returns the promhttp handler to mount at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
