// Package sessions stores training sessions and runs record tracking when they complete.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotInProgress is returned when completing a session someone else completed first.
	ErrNotInProgress = errors.New("session is not in progress")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const sessionColumns = `id::text, athlete_id, name, status, exercises, started_at, completed_at`

func (r *Repo) Create(ctx context.Context, s *training.TrainingSession) (_ *training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", s.AthleteID))

	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	row := r.db.QueryRow(
		ctx,
		`
			INSERT INTO training_session (id, athlete_id, name, status, exercises, started_at, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+sessionColumns,
		uuid.New(), s.AthleteID, s.Name, string(s.Status), exercises, s.StartedAt, s.CompletedAt,
	)
	created, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return created, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM training_session WHERE id = $1`, id)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// Complete moves an in-progress session to completed. Exercises are replaced when given.
func (r *Repo) Complete(
	ctx context.Context,
	id string,
	completedAt time.Time,
	exercises []training.ExercisePerformance,
) (_ *training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	var exercisesJSON []byte
	if exercises != nil {
		if exercisesJSON, err = json.Marshal(exercises); err != nil {
			return nil, fmt.Errorf("marshal exercises: %w", err)
		}
	}

	row := r.db.QueryRow(
		ctx,
		`
			UPDATE training_session SET
				status = $2,
				completed_at = $3,
				exercises = COALESCE($4::jsonb, exercises),
				updated_at = now()
			WHERE id = $1 AND status = $5
			RETURNING `+sessionColumns,
		id, string(training.SessionStatusCompleted), completedAt, exercisesJSON,
		string(training.SessionStatusInProgress),
	)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	return s, nil
}

// List returns the athlete's sessions ordered by their completion (or start) time.
// Nil bounds are open.
func (r *Repo) List(ctx context.Context, athleteID string, from, to *time.Time) (_ []training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	return r.query(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM training_session
			WHERE athlete_id = $1
				AND ($2::timestamptz IS NULL OR COALESCE(completed_at, started_at, created_at) >= $2)
				AND ($3::timestamptz IS NULL OR COALESCE(completed_at, started_at, created_at) <= $3)
			ORDER BY COALESCE(completed_at, started_at, created_at) DESC, id
		`,
		athleteID, from, to,
	)
}

// ListCompleted returns completed sessions with completed_at in [from, to], oldest first.
func (r *Repo) ListCompleted(ctx context.Context, athleteID string, from, to time.Time) (_ []training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	return r.query(
		ctx,
		`
			SELECT `+sessionColumns+`
			FROM training_session
			WHERE athlete_id = $1
				AND status = $2
				AND completed_at IS NOT NULL
				AND completed_at BETWEEN $3 AND $4
			ORDER BY completed_at ASC, id
		`,
		athleteID, string(training.SessionStatusCompleted), from, to,
	)
}

func (r *Repo) query(ctx context.Context, sql string, args ...any) ([]training.TrainingSession, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]training.TrainingSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func scanSession(row pgx.Row) (*training.TrainingSession, error) {
	var (
		s         training.TrainingSession
		status    string
		exercises []byte
	)
	if err := row.Scan(
		&s.ID,
		&s.AthleteID,
		&s.Name,
		&status,
		&exercises,
		&s.StartedAt,
		&s.CompletedAt,
	); err != nil {
		return nil, err
	}
	s.Status = training.SessionStatus(status)
	if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises of [%s]: %w", s.ID, err)
	}
	return &s, nil
}
