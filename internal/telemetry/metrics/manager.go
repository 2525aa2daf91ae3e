package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterNewRecords          *prometheus.CounterVec
	CounterRecordPersistFails  prometheus.Counter
	CounterChallengeCompleted  *prometheus.CounterVec
	CounterProgressCache       *prometheus.CounterVec
	CounterOutboxDelivered     prometheus.Counter
	CounterOutboxFailed        prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistOutboxBatchDuration  prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("kluska", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("kluska", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterNewRecords := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "personal_records_set",
		Help:      "Personal records created or improved, by record kind",
	}, []string{"kind"})
	counterRecordPersistFails := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "personal_record_persist_failures",
		Help:      "Record candidates that failed to persist",
	})
	counterChallengeCompleted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "challenges_completed",
		Help:      "Challenges transitioned to completed, by outcome (winner / no_winner)",
	}, []string{"outcome"})
	counterProgressCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "progress_cache",
		Help:      "Progress report cache lookups, by result (hit / miss)",
	}, []string{"result"})
	counterOutboxDelivered := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "outbox_events_delivered",
		Help:      "Outbox events published to kafka",
	})
	counterOutboxFailed := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "outbox_events_failed",
		Help:      "Outbox events that failed to publish and will be retried",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histOutboxBatchDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "outbox_batch_duration_seconds",
		Help:      "Time spent claiming, publishing and marking one outbox batch",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterNewRecords:          counterNewRecords,
		CounterRecordPersistFails:  counterRecordPersistFails,
		CounterChallengeCompleted:  counterChallengeCompleted,
		CounterProgressCache:       counterProgressCache,
		CounterOutboxDelivered:     counterOutboxDelivered,
		CounterOutboxFailed:        counterOutboxFailed,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
		HistOutboxBatchDuration:    histOutboxBatchDuration,
	}
}
