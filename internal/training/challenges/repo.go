package challenges

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/outbox"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/pkg"
)

var (
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrActiveChallengeExists = errors.New("active challenge already exists for this pair")
	ErrChallengeRejected     = errors.New("challenge rejected by db constraint")
	// ErrStatusChanged means a concurrent writer moved the challenge first.
	ErrStatusChanged = errors.New("challenge status changed")
)

var _ Store = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const challengeColumns = `id::text, challenger_id, challenged_id, target_distance_km, status, start_date, end_date,
	challenger_progress_km, challenged_progress_km, winner_id, created_at, updated_at`

type CompletedEvent struct {
	Challenge Challenge `json:"challenge"`
}

func (r *Repo) Create(ctx context.Context, c *Challenge) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("challenger.id", c.ChallengerID),
		attribute.String("challenged.id", c.ChallengedID),
	)

	row := r.db.QueryRow(
		ctx,
		`
			INSERT INTO challenge (id, challenger_id, challenged_id, target_distance_km, status, end_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+challengeColumns,
		uuid.New(), c.ChallengerID, c.ChallengedID, c.TargetDistanceKm, string(StatusPending), c.EndDate,
	)
	created, err := scanChallenge(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrActiveChallengeExists
		}
		if pkg.IsCheckViolationError(err) {
			return nil, fmt.Errorf("%w: %w", ErrChallengeRejected, err)
		}
		return nil, fmt.Errorf("insert challenge: %w", err)
	}

	return created, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrChallengeNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+challengeColumns+` FROM challenge WHERE id = $1`, id)
	c, err := scanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	return c, nil
}

// ListForAthlete returns the challenges the athlete takes part in, newest first.
func (r *Repo) ListForAthlete(ctx context.Context, athleteID string) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.listForAthlete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+challengeColumns+`
			FROM challenge
			WHERE challenger_id = $1 OR challenged_id = $1
			ORDER BY created_at DESC, id
		`,
		athleteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := make([]Challenge, 0)
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		challenges = append(challenges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}

// UpdateIfStatus writes status, dates, progress and winner only while the stored status
// is still expected. A transition into completed also stores a challenge.completed
// outbox event in the same transaction.
func (r *Repo) UpdateIfStatus(ctx context.Context, c *Challenge, expected Status) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.updateIfStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("challenge.id", c.ID),
		attribute.String("status.expected", string(expected)),
		attribute.String("status.new", string(c.Status)),
	)

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(
		ctx,
		`
			UPDATE challenge SET
				status = $3,
				start_date = $4,
				challenger_progress_km = $5,
				challenged_progress_km = $6,
				winner_id = $7,
				updated_at = now()
			WHERE id = $1 AND status = $2
			RETURNING `+challengeColumns,
		c.ID, string(expected), string(c.Status), c.StartDate,
		c.ChallengerProgressKm, c.ChallengedProgressKm, c.WinnerID,
	)
	updated, err := scanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("update challenge: %w", err)
	}

	if expected != StatusCompleted && updated.Status == StatusCompleted {
		if _, err := outbox.Insert(ctx, tx, outbox.Event{
			Topic:   outbox.TopicChallenges,
			Type:    outbox.EventChallengeCompleted,
			Key:     updated.ID,
			Payload: CompletedEvent{Challenge: *updated},
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return updated, nil
}

func scanChallenge(row pgx.Row) (*Challenge, error) {
	var (
		c         Challenge
		status    string
		startDate *time.Time
	)
	if err := row.Scan(
		&c.ID,
		&c.ChallengerID,
		&c.ChallengedID,
		&c.TargetDistanceKm,
		&status,
		&startDate,
		&c.EndDate,
		&c.ChallengerProgressKm,
		&c.ChallengedProgressKm,
		&c.WinnerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Status = Status(status)
	c.StartDate = startDate
	return &c, nil
}
