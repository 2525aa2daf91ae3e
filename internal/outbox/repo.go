package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
)

// MaxAttempts after which a message is left in the table for manual inspection.
const MaxAttempts = 10

// ClaimTimeout after which a claimed but unpublished message is picked up again,
// e.g. when the dispatcher crashed mid-batch.
const ClaimTimeout = time.Minute

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Claim locks up to limit pending messages, marks them claimed and returns them.
func (r *Repo) Claim(ctx context.Context, limit int) (_ []Message, err error) {
	ctx, span := tracing.GlobalOutboxTracer.Start(ctx, "repo.outbox.claim")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rows, err := tx.Query(
		ctx,
		`
			SELECT id, topic, event_type, event_key, payload, attempts, created_at
			FROM outbox
			WHERE published_at IS NULL
				AND attempts < $2
				AND (claimed_at IS NULL OR claimed_at < now() - $3::int * interval '1 second')
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		`,
		limit, MaxAttempts, int(ClaimTimeout.Seconds()),
	)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}

	var messages []Message
	var ids []uuid.UUID
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Topic, &m.EventType, &m.Key, &m.Payload, &m.Attempts, &m.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		messages = append(messages, m)
		ids = append(ids, m.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}

	if len(ids) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE outbox SET claimed_at = now() WHERE id = ANY($1)`, ids); err != nil {
			return nil, fmt.Errorf("mark claimed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}

	return messages, nil
}

func (r *Repo) MarkPublished(ctx context.Context, ids []uuid.UUID) (err error) {
	ctx, span := tracing.GlobalOutboxTracer.Start(ctx, "repo.outbox.markPublished")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}

// MarkFailed releases the claim so the messages are retried on a later poll.
func (r *Repo) MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) (err error) {
	ctx, span := tracing.GlobalOutboxTracer.Start(ctx, "repo.outbox.markFailed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(
		ctx,
		`UPDATE outbox SET attempts = attempts + 1, last_error = $2, claimed_at = NULL WHERE id = ANY($1)`,
		ids, reason,
	); err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}
