package sessions

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
	"github.com/ikrystian/kluska/internal/training/records"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

type Store interface {
	Create(ctx context.Context, s *training.TrainingSession) (*training.TrainingSession, error)
	Get(ctx context.Context, id string) (*training.TrainingSession, error)
	Complete(ctx context.Context, id string, completedAt time.Time, exercises []training.ExercisePerformance) (*training.TrainingSession, error)
	List(ctx context.Context, athleteID string, from, to *time.Time) ([]training.TrainingSession, error)
}

type RecordTracker interface {
	TrackSession(ctx context.Context, session training.TrainingSession) (*records.PersistReport, error)
}

// ProgressInvalidator drops cached progress after an athlete's data changed.
type ProgressInvalidator interface {
	Invalidate(athleteID string)
}

// Result is a stored session with the outcome of its record check.
type Result struct {
	Session    training.TrainingSession   `json:"session"`
	NewRecords []records.PersonalRecord   `json:"newRecords"`
	Failures   []records.CandidateFailure `json:"failures,omitempty"`
	// RecordCheckFailed is set when the records could not be checked at all; the
	// check can be retried with POST /sessions/{id}/records.
	RecordCheckFailed bool `json:"recordCheckFailed,omitempty"`
}

type Service struct {
	store       Store
	tracker     RecordTracker
	invalidator ProgressInvalidator
	now         func() time.Time
}

func NewService(store Store, tracker RecordTracker, invalidator ProgressInvalidator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:       store,
		tracker:     tracker,
		invalidator: invalidator,
		now:         now,
	}
}

// Create stores the session for athleteID and, when it is already completed, tracks its records.
func (s *Service) Create(ctx context.Context, athleteID string, session training.TrainingSession) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("athlete.id", athleteID))

	session.AthleteID = athleteID
	if session.Status == "" {
		session.Status = training.SessionStatusInProgress
	}
	if err := session.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	created, err := s.store.Create(ctx, &session)
	if err != nil {
		return nil, apperr.Persistence("create session", err)
	}

	return s.afterWrite(ctx, created), nil
}

// Complete finishes an in-progress session of actor and tracks its records.
func (s *Service) Complete(
	ctx context.Context,
	id, actor string,
	completedAt *time.Time,
	exercises []training.ExercisePerformance,
) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	existing, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if existing.Status != training.SessionStatusInProgress {
		return nil, apperr.InvalidState("session is already completed")
	}
	for _, e := range exercises {
		if err := e.Validate(); err != nil {
			return nil, apperr.Validation(err.Error())
		}
	}

	at := s.now()
	if completedAt != nil {
		at = *completedAt
	}
	if existing.StartedAt != nil && at.Before(*existing.StartedAt) {
		return nil, apperr.Validation("completion time is before the start time")
	}

	completed, err := s.store.Complete(ctx, id, at, exercises)
	if errors.Is(err, ErrNotInProgress) {
		return nil, apperr.InvalidState("session is already completed")
	}
	if err != nil {
		return nil, apperr.Persistence("complete session", err)
	}

	return s.afterWrite(ctx, completed), nil
}

// TrackRecords re-runs record tracking for a stored completed session. Safe to repeat.
func (s *Service) TrackRecords(ctx context.Context, id, actor string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.trackRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !session.IsCompleted() {
		return nil, apperr.InvalidState("session is not completed")
	}

	report, err := s.tracker.TrackSession(ctx, *session)
	if report == nil {
		return nil, apperr.Persistence("track records", err)
	}
	// partial failures are part of the result
	return resultOf(session, report), nil
}

func (s *Service) List(ctx context.Context, athleteID string, from, to *time.Time) (_ []training.TrainingSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.store.List(ctx, athleteID, from, to)
	if err != nil {
		return nil, apperr.Persistence("list sessions", err)
	}
	return sessions, nil
}

func (s *Service) load(ctx context.Context, id, actor string) (*training.TrainingSession, error) {
	session, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.NotFound("session not found")
	}
	if err != nil {
		return nil, apperr.Persistence("get session", err)
	}
	if session.AthleteID != actor {
		return nil, apperr.Forbidden("session belongs to another athlete")
	}
	return session, nil
}

// afterWrite invalidates the progress cache and tracks records of completed sessions.
// The session is stored at this point, so tracking problems only show up in the result.
func (s *Service) afterWrite(ctx context.Context, session *training.TrainingSession) *Result {
	s.invalidator.Invalidate(session.AthleteID)

	if !session.IsCompleted() {
		return resultOf(session, nil)
	}

	report, err := s.tracker.TrackSession(ctx, *session)
	if err != nil {
		log.Errorf("track records of session [%s]: %s", session.ID, err)
	}
	result := resultOf(session, report)
	result.RecordCheckFailed = report == nil
	return result
}

func resultOf(session *training.TrainingSession, report *records.PersistReport) *Result {
	result := &Result{
		Session:    *session,
		NewRecords: []records.PersonalRecord{},
	}
	if report != nil {
		result.NewRecords = report.Persisted
		result.Failures = report.Failures
	}
	return result
}
