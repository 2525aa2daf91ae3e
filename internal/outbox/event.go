// Package outbox stores domain events in the same transaction as the state change
// that produced them and delivers them to kafka from a background dispatcher.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	TopicPersonalRecords = "training.personal-records"
	TopicChallenges      = "training.challenges"

	EventPersonalRecordUpdated = "personal_record.updated"
	EventChallengeCompleted    = "challenge.completed"
)

type Event struct {
	Topic string
	Type  string
	// Key is used as the kafka partition key, e.g. the athlete id.
	Key     string
	Payload any
}

// Message is an outbox row claimed for delivery.
type Message struct {
	ID        uuid.UUID
	Topic     string
	EventType string
	Key       string
	Payload   json.RawMessage
	Attempts  int
	CreatedAt time.Time
}

// Execer is satisfied by pgx.Tx, so events are written within the caller's transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Insert writes ev into the outbox table using tx.
func Insert(ctx context.Context, tx Execer, ev Event) (uuid.UUID, error) {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal outbox payload [%s]: %w", ev.Type, err)
	}

	id := uuid.New()
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO outbox (id, topic, event_type, event_key, payload) VALUES ($1, $2, $3, $4, $5)`,
		id, ev.Topic, ev.Type, ev.Key, payload,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert outbox event [%s]: %w", ev.Type, err)
	}

	return id, nil
}
