/*
 * Metrics - Prometheus instrumentation for backend API calls.
 *
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics instance
var metrics *OpenMetrics

type OpenMetrics struct {
	registry *prometheus.Registry

	successfulApiCallsTotal *prometheus.CounterVec
	failedApiCallsTotal     *prometheus.CounterVec

	truncatedListingsTotal *prometheus.CounterVec
	staleResultsTotal      prometheus.Counter
	apiDelayHist           *prometheus.HistogramVec
}

// GetOpenMetricsInstance returns the current OpenMetrics instance or creates
// a new one if required.
func GetOpenMetricsInstance() *OpenMetrics {
	if metrics == nil {
		reg := prometheus.NewRegistry()
		metrics = &OpenMetrics{
			registry: reg,
			successfulApiCallsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "successful_api_calls_total",
					Help: "The number of successful backend API calls",
				},
				[]string{"action"},
			),
			failedApiCallsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "failed_api_calls_total",
					Help: "The number of backend API calls that returned an error",
				},
				[]string{"action"},
			),
			truncatedListingsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "truncated_listings_total",
					Help: "The number of listing drains cut off at the page ceiling",
				},
				[]string{"listing"},
			),
			staleResultsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stale_results_total",
				Help: "The number of listing results discarded because the selection changed mid-flight",
			}),
			apiDelayHist: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "api_delay_hist",
					Help:    "Histogram of the delay in milliseconds when calling the backend API",
					Buckets: []float64{10, 100, 250, 500, 1000, 1500, 2000},
				},
				[]string{"action"},
			),
		}
		reg.MustRegister(metrics.successfulApiCallsTotal)
		reg.MustRegister(metrics.failedApiCallsTotal)
		reg.MustRegister(metrics.truncatedListingsTotal)
		reg.MustRegister(metrics.staleResultsTotal)
		reg.MustRegister(metrics.apiDelayHist)
	}
	return metrics
}

// getLabels builds the label map.
func getLabels(action string) prometheus.Labels {
	return prometheus.Labels{"action": action}
}

func (m OpenMetrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

// IncSuccessfulApiCallsTotal increments the successful_api_calls_total counter.
func (m *OpenMetrics) IncSuccessfulApiCallsTotal(action string) {
	m.successfulApiCallsTotal.With(getLabels(action)).Inc()
}

// IncFailedApiCallsTotal increments the failed_api_calls_total counter.
func (m *OpenMetrics) IncFailedApiCallsTotal(action string) {
	m.failedApiCallsTotal.With(getLabels(action)).Inc()
}

// IncTruncatedListingsTotal increments the truncated_listings_total counter.
func (m *OpenMetrics) IncTruncatedListingsTotal(listing string) {
	m.truncatedListingsTotal.With(prometheus.Labels{"listing": listing}).Inc()
}

// IncStaleResultsTotal increments the stale_results_total counter.
func (m *OpenMetrics) IncStaleResultsTotal() {
	m.staleResultsTotal.Inc()
}

// AddApiDelayHist registers a sample in the API delay histogram.
func (m *OpenMetrics) AddApiDelayHist(action string, delay int64) {
	m.apiDelayHist.With(getLabels(action)).Observe(float64(delay))
}
