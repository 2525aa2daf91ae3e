package records

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
)

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=records_test

type Store interface {
	// UpsertIfGreater inserts the candidate, or overwrites the stored record only when
	// the stored value is lower. Returns false when nothing was written.
	UpsertIfGreater(ctx context.Context, ref SessionRef, c Candidate) (*PersonalRecord, bool, error)
	List(ctx context.Context, params ListParams) ([]PersonalRecord, error)
}

// SessionRef identifies the session the candidates come from.
type SessionRef struct {
	SessionID  string
	AthleteID  string
	AchievedAt time.Time
}

type CandidateFailure struct {
	Candidate Candidate `json:"candidate"`
	Reason    string    `json:"reason"`
}

type PersistReport struct {
	Persisted []PersonalRecord `json:"persisted"`
	// Superseded candidates were already matched or beaten by the stored record at write time.
	Superseded []Candidate        `json:"superseded,omitempty"`
	Failures   []CandidateFailure `json:"failures,omitempty"`
}

type Tracker struct {
	store          Store
	metricsManager *metrics.Manager
}

func NewTracker(store Store, metricsManager *metrics.Manager) *Tracker {
	return &Tracker{
		store:          store,
		metricsManager: metricsManager,
	}
}

// PersistRecords writes every candidate independently. A failing candidate is logged and
// reported, its siblings are still written. The returned error combines all failures.
func (t *Tracker) PersistRecords(ctx context.Context, ref SessionRef, candidates []Candidate) (_ *PersistReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("athlete.id", ref.AthleteID),
		attribute.String("session.id", ref.SessionID),
		attribute.Int("candidates", len(candidates)),
	)

	report := &PersistReport{
		Persisted: []PersonalRecord{},
	}
	var errs error
	for _, c := range candidates {
		record, applied, upsertErr := t.store.UpsertIfGreater(ctx, ref, c)
		if upsertErr != nil {
			log.Errorf("persist record [%s/%s/%s]: %s", ref.AthleteID, c.ExerciseID, c.Kind, upsertErr)
			t.metricsManager.CounterRecordPersistFails.Inc()
			report.Failures = append(report.Failures, CandidateFailure{
				Candidate: c,
				Reason:    upsertErr.Error(),
			})
			errs = multierr.Append(errs, apperr.Persistence(
				fmt.Sprintf("%s/%s", c.ExerciseID, c.Kind),
				upsertErr,
			))
			continue
		}
		if !applied {
			report.Superseded = append(report.Superseded, c)
			continue
		}
		t.metricsManager.CounterNewRecords.WithLabelValues(string(c.Kind)).Inc()
		report.Persisted = append(report.Persisted, *record)
	}

	return report, errs
}

// TrackSession runs the record check for a completed session against the athlete's
// stored records and persists the new ones.
func (t *Tracker) TrackSession(ctx context.Context, session training.TrainingSession) (_ *PersistReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.trackSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !session.IsCompleted() {
		return nil, apperr.Validation("session is not completed")
	}

	existing, err := t.store.List(ctx, ListParams{AthleteID: session.AthleteID})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	candidates := CheckForNewRecords(session.Exercises, existing)
	log.Debugf("session [%s]: %d record candidates", session.ID, len(candidates))

	return t.PersistRecords(ctx, SessionRef{
		SessionID:  session.ID,
		AthleteID:  session.AthleteID,
		AchievedAt: *session.CompletedAt,
	}, candidates)
}
