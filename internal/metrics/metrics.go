// Package metrics provides Prometheus metrics for the settlement service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequestsTotal tracks RPC calls by procedure and result code
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPC calls by procedure and code",
		},
		[]string{"procedure", "code"},
	)

	// RPCRequestDuration tracks RPC handling time
	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitesettle",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPC calls in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"procedure"},
	)

	// SettlementsGenerated tracks stored settlements by kind
	SettlementsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "settlement",
			Name:      "generated_total",
			Help:      "Total number of settlements generated by kind",
		},
		[]string{"kind"},
	)

	// NetOffsetsRecorded tracks reciprocal pairs settled by netting
	NetOffsetsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "settlement",
			Name:      "net_offsets_total",
			Help:      "Total number of reciprocal pairs netted",
		},
	)

	// SettlementRejections tracks refused generation or payment attempts
	SettlementRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "settlement",
			Name:      "rejections_total",
			Help:      "Total number of refused settlement operations by reason",
		},
		[]string{"reason"},
	)

	// PaymentsApplied tracks accepted payments
	PaymentsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "payment",
			Name:      "applied_total",
			Help:      "Total number of payments applied to settlements",
		},
	)

	// OffsetAmountTotal tracks money cancelled by netting
	OffsetAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitesettle",
			Subsystem: "settlement",
			Name:      "offset_amount_total",
			Help:      "Sum of amounts cancelled by netting",
		},
	)
)

// RecordRPC records one handled RPC
func RecordRPC(procedure, code string, durationSeconds float64) {
	RPCRequestsTotal.WithLabelValues(procedure, code).Inc()
	RPCRequestDuration.WithLabelValues(procedure).Observe(durationSeconds)
}

// RecordSettlement records a stored settlement
func RecordSettlement(kind string) {
	SettlementsGenerated.WithLabelValues(kind).Inc()
}

// RecordNetOffset records a netted pair and the amount it cancelled
func RecordNetOffset(offsetAmount float64) {
	NetOffsetsRecorded.Inc()
	OffsetAmountTotal.Add(offsetAmount)
}

// RecordRejection records a refused operation
func RecordRejection(reason string) {
	SettlementRejections.WithLabelValues(reason).Inc()
}
