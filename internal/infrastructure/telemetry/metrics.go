package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels a planning calculation result
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeInvalidInput Outcome = "invalid_input"
)

// MetricsConfig holds configuration for the Prometheus planning metrics.
type MetricsConfig struct {
	// Namespace prefixes every metric name, e.g. "finplan"
	Namespace string

	// HistogramBuckets are the latency buckets in seconds.
	// Default: prometheus.DefBuckets
	HistogramBuckets []float64

	// RuntimeCollectors registers the Go runtime and process collectors
	RuntimeCollectors bool
}

// PlanningMetrics exposes planning calculation and HTTP metrics on a private registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines. A nil
// *PlanningMetrics is valid and records nothing.
type PlanningMetrics struct {
	registry *prometheus.Registry

	calculationsTotal    *prometheus.CounterVec
	calculationDuration  *prometheus.HistogramVec
	liquidityStatusTotal *prometheus.CounterVec
	riskAlertsTotal      *prometheus.CounterVec
	strategyNetBenefit   *prometheus.GaugeVec
	forecastLowestCash   prometheus.Gauge
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// NewPlanningMetrics creates and registers the planning metrics.
func NewPlanningMetrics(cfg MetricsConfig) *PlanningMetrics {
	if len(cfg.HistogramBuckets) == 0 {
		cfg.HistogramBuckets = prometheus.DefBuckets
	}

	m := &PlanningMetrics{
		registry: prometheus.NewRegistry(),
		calculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "calculations_total",
			Help:      "Total number of planning calculations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		calculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Duration of planning calculations in seconds.",
			Buckets:   cfg.HistogramBuckets,
		}, []string{"operation"}),
		liquidityStatusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "stress_scenarios_total",
			Help:      "Stress-tested scenarios by liquidity status.",
		}, []string{"status"}),
		riskAlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "risk_alerts_total",
			Help:      "Risk alerts raised by severity.",
		}, []string{"severity"}),
		strategyNetBenefit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "strategy_net_cash_benefit",
			Help:      "Net cash benefit of the most recent simulation per strategy.",
		}, []string{"strategy"}),
		forecastLowestCash: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "forecast_lowest_cash",
			Help:      "Lowest closing cash of the most recent rolling forecast.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   cfg.HistogramBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.calculationsTotal,
		m.calculationDuration,
		m.liquidityStatusTotal,
		m.riskAlertsTotal,
		m.strategyNetBenefit,
		m.forecastLowestCash,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	if cfg.RuntimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// Registry returns the private registry backing the metrics
func (m *PlanningMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape handler for the registry
func (m *PlanningMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCalculation counts one calculation and records its latency
func (m *PlanningMetrics) ObserveCalculation(operation string, outcome Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculationsTotal.WithLabelValues(operation, string(outcome)).Inc()
	m.calculationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordLiquidityStatus counts one stress-tested scenario
func (m *PlanningMetrics) RecordLiquidityStatus(status string) {
	if m == nil {
		return
	}
	m.liquidityStatusTotal.WithLabelValues(status).Inc()
}

// RecordRiskAlert counts one raised alert
func (m *PlanningMetrics) RecordRiskAlert(severity string) {
	if m == nil {
		return
	}
	m.riskAlertsTotal.WithLabelValues(severity).Inc()
}

// SetStrategyNetBenefit stores the latest net cash benefit for a strategy label
func (m *PlanningMetrics) SetStrategyNetBenefit(strategy string, value float64) {
	if m == nil {
		return
	}
	m.strategyNetBenefit.WithLabelValues(strategy).Set(value)
}

// SetForecastLowestCash stores the lowest closing cash of the latest forecast
func (m *PlanningMetrics) SetForecastLowestCash(value float64) {
	if m == nil {
		return
	}
	m.forecastLowestCash.Set(value)
}

// ObserveHTTPRequest counts one HTTP request and records its latency
func (m *PlanningMetrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
