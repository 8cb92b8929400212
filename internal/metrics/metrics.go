/*
Copyright 2024 Alexandre Mahdhaoui

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

// Package metrics records per-run Prometheus metrics. A run is short-lived, so metrics are written to a
// node-exporter textfile instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	EndpointTicket = "ticket"
	EndpointNodes  = "nodes"
	EndpointQemu   = "qemu"
)

// Recorder holds the metrics of a single run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	inventoryHosts  *prometheus.GaugeVec
	runDuration     prometheus.Gauge
	lastRunSuccess  prometheus.Gauge
	lastRunUnixTime prometheus.Gauge
}

// New returns a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proxmox_inventory_api_requests_total",
			Help: "Total number of Proxmox API requests",
		}, []string{"endpoint", "result"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proxmox_inventory_api_request_duration_seconds",
			Help:    "Duration of Proxmox API requests",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		}, []string{"endpoint"}),
		inventoryHosts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "proxmox_inventory_hosts",
			Help: "Number of hosts emitted per inventory group",
		}, []string{"group"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proxmox_inventory_run_duration_seconds",
			Help: "Duration of the last inventory run",
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proxmox_inventory_last_run_success",
			Help: "1 if the last inventory run succeeded, 0 otherwise",
		}),
		lastRunUnixTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proxmox_inventory_last_run_timestamp_seconds",
			Help: "Unix time of the last inventory run",
		}),
	}

	r.registry.MustRegister(
		r.apiRequests,
		r.apiDuration,
		r.inventoryHosts,
		r.runDuration,
		r.lastRunSuccess,
		r.lastRunUnixTime,
	)

	return r
}

// RecordRequest records one API request.
func (r *Recorder) RecordRequest(endpoint string, err error, duration time.Duration) {
	if r == nil {
		return
	}

	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}

	r.RequestCounter(endpoint, result).Inc()
	r.apiDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordGroup records the number of hosts in an inventory group.
func (r *Recorder) RecordGroup(group string, hosts int) {
	if r == nil {
		return
	}

	r.inventoryHosts.WithLabelValues(group).Set(float64(hosts))
}

// RecordRun records the outcome of the whole run.
func (r *Recorder) RecordRun(err error, start time.Time) {
	if r == nil {
		return
	}

	success := 1.0
	if err != nil {
		success = 0
	}

	r.runDuration.Set(time.Since(start).Seconds())
	r.lastRunSuccess.Set(success)
	r.lastRunUnixTime.Set(float64(start.Unix()))
}

// RequestCounter returns the request counter for the given endpoint and result.
func (r *Recorder) RequestCounter(endpoint, result string) prometheus.Counter {
	return r.apiRequests.WithLabelValues(endpoint, result)
}

// Registry returns the registry holding the run metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteToTextfile writes the metrics in the Prometheus text format. It is a no-op when path is empty.
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}

	return prometheus.WriteToTextfile(path, r.Registry())
}
