package hub

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"qshield/internal/domain"
	"qshield/internal/state"
)

const namespace = "qshield"

// Metrics collects hub and console metrics.
type Metrics struct {
	actions       *prometheus.CounterVec
	mockCalls     *prometheus.CounterVec
	mockLatency   *prometheus.HistogramVec
	trainProgress prometheus.Gauge
	ledgerEntries prometheus.Gauge
	requests      *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "State actions dispatched, by type.",
		}, []string{"type"}),
		mockCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mock_calls_total",
			Help:      "Simulated backend calls, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		mockLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mock_call_duration_seconds",
			Help:      "Time spent waiting on simulated backend calls.",
			Buckets:   []float64{.01, .1, .5, 1, 1.5, 2, 2.5, 5},
		}, []string{"operation"}),
		trainProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "training_progress_percent",
			Help:      "Progress of the local training run.",
		}),
		ledgerEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_entries",
			Help:      "Entries in the audit ledger.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}

	for _, c := range []prometheus.Collector{
		m.actions, m.mockCalls, m.mockLatency, m.trainProgress, m.ledgerEntries, m.requests,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records an applied action. It has the shape of a state.Listener.
func (m *Metrics) Observe(a state.Action, next domain.State) {
	m.actions.WithLabelValues(a.Type()).Inc()
	m.trainProgress.Set(float64(next.Training.Progress))
	m.ledgerEntries.Set(float64(len(next.Ledger)))
}

// WrapSimulator returns sim instrumented with call counts and latencies.
func (m *Metrics) WrapSimulator(sim domain.Simulator) domain.Simulator {
	return &instrumentedSimulator{sim: sim, m: m}
}

type instrumentedSimulator struct {
	sim domain.Simulator
	m   *Metrics
}

func (s *instrumentedSimulator) Call(ctx context.Context, req domain.Request) (domain.Response, error) {
	start := time.Now()
	resp, err := s.sim.Call(ctx, req)

	op := operationLabel(req.Operation)
	outcome := "ok"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "cancelled"
	case err != nil:
		outcome = "error"
	}
	s.m.mockCalls.WithLabelValues(op, outcome).Inc()
	s.m.mockLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return resp, err
}

// otherOperation labels calls to operations the backend does not know, so
// client-chosen names cannot grow the series count.
const otherOperation = "other"

func operationLabel(op domain.Operation) string {
	switch op {
	case domain.OpGenerateCert, domain.OpRegisterBlockchain, domain.OpStartTraining,
		domain.OpTriggerAggregation, domain.OpDownloadModel:
		return op.String()
	default:
		return otherOperation
	}
}

// Compile-time assertion that instrumentedSimulator implements domain.Simulator.
var _ domain.Simulator = (*instrumentedSimulator)(nil)
