package challenges

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=challenges_test

type Store interface {
	Create(ctx context.Context, c *Challenge) (*Challenge, error)
	Get(ctx context.Context, id string) (*Challenge, error)
	ListForAthlete(ctx context.Context, athleteID string) ([]Challenge, error)
	UpdateIfStatus(ctx context.Context, c *Challenge, expected Status) (*Challenge, error)
}

type ActivityStore interface {
	// ListDistanceActivities returns the manual and synced activities of the owners
	// that happened within [from, to].
	ListDistanceActivities(ctx context.Context, ownerIDs []string, from, to time.Time) ([]training.DistanceActivity, error)
}

type CreateParams struct {
	ChallengedID     string    `json:"challengedId"`
	TargetDistanceKm float64   `json:"targetDistanceKm"`
	EndDate          time.Time `json:"endDate"`
}

type Service struct {
	store          Store
	activities     ActivityStore
	resolver       *Resolver
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	store Store,
	activities ActivityStore,
	metricsManager *metrics.Manager,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:          store,
		activities:     activities,
		resolver:       NewResolver(now),
		metricsManager: metricsManager,
		now:            now,
	}
}

func (s *Service) Create(ctx context.Context, challengerID string, params CreateParams) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.service.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	switch {
	case params.TargetDistanceKm <= 0:
		return nil, apperr.Validation("target distance must be positive")
	case params.ChallengedID == "":
		return nil, apperr.Validation("challenged athlete missing")
	case params.ChallengedID == challengerID:
		return nil, apperr.Validation("cannot challenge yourself")
	case !params.EndDate.After(s.now()):
		return nil, apperr.Validation("end date must be in the future")
	}

	created, err := s.store.Create(ctx, &Challenge{
		ChallengerID:     challengerID,
		ChallengedID:     params.ChallengedID,
		TargetDistanceKm: params.TargetDistanceKm,
		Status:           StatusPending,
		EndDate:          params.EndDate,
	})
	if errors.Is(err, ErrActiveChallengeExists) {
		return nil, apperr.Conflict("an active challenge already exists between these athletes")
	}
	if errors.Is(err, ErrChallengeRejected) {
		return nil, apperr.Validation("invalid challenge")
	}
	if err != nil {
		return nil, apperr.Persistence("create challenge", err)
	}

	log.Debugf("challenge [%s] created: %s -> %s", created.ID, challengerID, params.ChallengedID)
	return created, nil
}

func (s *Service) load(ctx context.Context, id, actor string) (*Challenge, error) {
	c, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrChallengeNotFound) {
		return nil, apperr.NotFound("challenge not found")
	}
	if err != nil {
		return nil, apperr.Persistence("get challenge", err)
	}
	if !c.IsParticipant(actor) {
		return nil, apperr.Forbidden("not a participant of this challenge")
	}
	return c, nil
}

// Get returns the challenge with freshly recomputed progress.
func (s *Service) Get(ctx context.Context, id, actor string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.service.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", id))

	c, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return s.Recompute(ctx, c)
}

// List returns the actor's challenges, newest first. A failed recompute keeps the stored
// progress of that challenge so one bad row never hides the rest.
func (s *Service) List(ctx context.Context, actor string) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.service.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	challenges, err := s.store.ListForAthlete(ctx, actor)
	if err != nil {
		return nil, apperr.Persistence("list challenges", err)
	}

	for i := range challenges {
		recomputed, err := s.Recompute(ctx, &challenges[i])
		if err != nil {
			log.Errorf("recompute challenge [%s]: %s", challenges[i].ID, err)
			continue
		}
		challenges[i] = *recomputed
	}
	return challenges, nil
}

// Respond applies accept, decline or cancel on behalf of actor.
func (s *Service) Respond(ctx context.Context, id, actor string, action Action) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.service.respond")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("challenge.id", id),
		attribute.String("action", string(action)),
	)

	if !action.Valid() {
		return nil, apperr.Validation("action must be one of accept, decline, cancel")
	}

	c, err := s.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	previous := c.Status
	if err := s.resolver.Apply(c, actor, action); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateIfStatus(ctx, c, previous)
	if errors.Is(err, ErrStatusChanged) {
		return nil, apperr.InvalidState("challenge was changed concurrently")
	}
	if err != nil {
		return nil, apperr.Persistence("update challenge", err)
	}

	return updated, nil
}

// Recompute refreshes an accepted challenge from the participants' activities and
// persists it when something changed. Other statuses are returned as they are.
func (s *Service) Recompute(ctx context.Context, c *Challenge) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.service.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", c.ID))

	now := s.now()
	from, to, ok := ProgressWindow(c, now)
	if c.Status != StatusAccepted || !ok {
		return c, nil
	}

	activities, err := s.activities.ListDistanceActivities(ctx, []string{c.ChallengerID, c.ChallengedID}, from, to)
	if err != nil {
		return nil, apperr.Persistence("list activities", err)
	}

	recomputed := *c
	if !s.resolver.RecomputeProgressAt(&recomputed, activities, now) {
		return c, nil
	}

	updated, err := s.store.UpdateIfStatus(ctx, &recomputed, StatusAccepted)
	if errors.Is(err, ErrStatusChanged) {
		// a concurrent recompute got there first; its row is the truth
		current, err := s.store.Get(ctx, c.ID)
		if err != nil {
			return nil, apperr.Persistence("reload challenge", err)
		}
		return current, nil
	}
	if err != nil {
		return nil, apperr.Persistence("update challenge progress", err)
	}

	if updated.Status == StatusCompleted {
		outcome := "no_winner"
		if updated.WinnerID != nil {
			outcome = "winner"
		}
		s.metricsManager.CounterChallengeCompleted.WithLabelValues(outcome).Inc()
		log.Printf("challenge [%s] completed: %s", updated.ID, outcome)
	}

	return updated, nil
}
