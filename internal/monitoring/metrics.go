// Package monitoring exposes Prometheus metrics for the tool surface. The
// /metrics endpoint is only mounted in HTTP transport mode.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alpacamcp_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool"},
	)

	toolErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alpacamcp_tool_errors_total",
			Help: "Total number of tool invocations that returned an error text",
		},
		[]string{"tool"},
	)

	orderRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alpacamcp_order_rejections_total",
			Help: "Total number of orders refused by the risk gate",
		},
		[]string{"reason"},
	)

	portfolioValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alpacamcp_portfolio_value_dollars",
			Help: "Total market value of open positions at the last analysis",
		},
	)
)

func init() {
	prometheus.MustRegister(toolCallsTotal)
	prometheus.MustRegister(toolErrorsTotal)
	prometheus.MustRegister(orderRejectionsTotal)
	prometheus.MustRegister(portfolioValue)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordToolCall records one invocation of the named tool.
func RecordToolCall(tool string) {
	toolCallsTotal.WithLabelValues(tool).Inc()
}

// RecordToolError records a tool invocation that produced an error text.
func RecordToolError(tool string) {
	toolErrorsTotal.WithLabelValues(tool).Inc()
}

// RecordOrderRejection records a risk-gate refusal by reason.
func RecordOrderRejection(reason string) {
	orderRejectionsTotal.WithLabelValues(reason).Inc()
}

// UpdatePortfolioValue updates the portfolio value gauge.
func UpdatePortfolioValue(v float64) {
	portfolioValue.Set(v)
}
