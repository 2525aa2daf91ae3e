package outbox

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=dispatcher_mocks_test.go -package=outbox_test

type messageStore interface {
	Claim(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
	MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// Dispatcher drains the outbox table and publishes the events to kafka.
type Dispatcher struct {
	store          messageStore
	producer       messageWriter
	metricsManager *metrics.Manager
	pollInterval   time.Duration
	batchSize      int
	done           chan struct{}
}

func NewDispatcher(
	store messageStore,
	producer messageWriter,
	metricsManager *metrics.Manager,
	pollInterval time.Duration,
	batchSize int,
) *Dispatcher {
	return &Dispatcher{
		store:          store,
		producer:       producer,
		metricsManager: metricsManager,
		pollInterval:   pollInterval,
		batchSize:      batchSize,
		done:           make(chan struct{}),
	}
}

// Run polls until ctx is cancelled. Meant to be started in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.done)
	}()

	log.Debugf("outbox dispatcher started, polling every %s", d.pollInterval)
	for {
		if _, err := d.ProcessBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("outbox dispatcher: %s", err)
		}

		select {
		case <-ctx.Done():
			log.Debugln("outbox dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until Run returns.
func (d *Dispatcher) Wait() {
	<-d.done
}

// ProcessBatch claims one batch and publishes it, grouped by topic. Messages of a topic
// that failed to publish are released for retry; the others are marked published.
// Returns the number of published messages.
func (d *Dispatcher) ProcessBatch(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalOutboxTracer.Start(ctx, "outbox.dispatcher.processBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	messages, err := d.store.Claim(ctx, d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}
	defer func() {
		d.metricsManager.HistOutboxBatchDuration.Observe(time.Since(start).Seconds())
	}()
	span.SetAttributes(attribute.Int("batch.size", len(messages)))

	var topics []string
	byTopic := make(map[string][]Message)
	for _, m := range messages {
		if _, ok := byTopic[m.Topic]; !ok {
			topics = append(topics, m.Topic)
		}
		byTopic[m.Topic] = append(byTopic[m.Topic], m)
	}

	var published []uuid.UUID
	for _, topic := range topics {
		topicMessages := byTopic[topic]
		records := make([]kafka.Message, 0, len(topicMessages))
		ids := make([]uuid.UUID, 0, len(topicMessages))
		for _, m := range topicMessages {
			records = append(records, kafka.Message{
				Key:   []byte(m.Key),
				Value: m.Payload,
				Time:  m.CreatedAt.UTC(),
				Headers: []kafka.Header{
					{Key: "event_type", Value: []byte(m.EventType)},
					{Key: "event_id", Value: []byte(m.ID.String())},
				},
			})
			ids = append(ids, m.ID)
		}

		if writeErr := d.producer.WriteMessages(ctx, topic, records...); writeErr != nil {
			log.Errorf("outbox: publish %d messages to [%s]: %s", len(records), topic, writeErr)
			d.metricsManager.CounterOutboxFailed.Add(float64(len(records)))
			if err := d.store.MarkFailed(ctx, ids, writeErr.Error()); err != nil {
				return 0, err
			}
			continue
		}
		published = append(published, ids...)
	}

	if len(published) == 0 {
		return 0, nil
	}
	if err := d.store.MarkPublished(ctx, published); err != nil {
		return 0, err
	}
	d.metricsManager.CounterOutboxDelivered.Add(float64(len(published)))

	return len(published), nil
}
