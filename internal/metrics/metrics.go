// Package metrics exposes Prometheus instrumentation for the claim services.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition results recorded by ObserveTransition.
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
)

// Metrics holds the collectors registered for one server.
type Metrics struct {
	gatherer prometheus.Gatherer

	rpcRequests      *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
	stageTransitions *prometheus.CounterVec
}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors with reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claimtrack",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "claimtrack",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		stageTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claimtrack",
			Name:      "stage_transitions_total",
			Help:      "Claim stage change attempts by target stage and result.",
		}, []string{"to", "result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Interceptor counts and times every RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				} else {
					code = connect.CodeUnknown.String()
				}
			}
			m.rpcRequests.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// ObserveTransition records one stage change attempt. A nil Metrics is a no-op.
func (m *Metrics) ObserveTransition(to, result string) {
	if m == nil {
		return
	}
	m.stageTransitions.WithLabelValues(to, result).Inc()
}
