package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ikrystian/kluska/internal/cache"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=trends_test

type SessionStore interface {
	ListCompleted(ctx context.Context, athleteID string, from, to time.Time) ([]training.TrainingSession, error)
}

type MeasurementStore interface {
	ListInRange(ctx context.Context, athleteID string, from, to time.Time) ([]training.BodyMeasurementSample, error)
}

type ServiceParams struct {
	Sessions       SessionStore
	Measurements   MeasurementStore
	Cache          cache.Cache
	CacheTTL       time.Duration
	FanOutLimit    int
	MetricsManager *metrics.Manager
	Now            func() time.Time
}

type Service struct {
	sessions       SessionStore
	measurements   MeasurementStore
	cache          cache.Cache
	cacheTTL       time.Duration
	fanOutLimit    int
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(params ServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	fanOutLimit := params.FanOutLimit
	if fanOutLimit <= 0 {
		fanOutLimit = 1
	}
	return &Service{
		sessions:       params.Sessions,
		measurements:   params.Measurements,
		cache:          params.Cache,
		cacheTTL:       params.CacheTTL,
		fanOutLimit:    fanOutLimit,
		metricsManager: params.MetricsManager,
		now:            now,
	}
}

func cacheKey(athleteID string, period Period) string {
	return fmt.Sprintf("progress||%s||%s", athleteID, period)
}

// Progress returns the athlete's report for the period, served from cache when fresh.
func (s *Service) Progress(ctx context.Context, athleteID string, period Period) (_ *ProgressReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trends.service.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("athlete.id", athleteID),
		attribute.String("period", string(period)),
	)

	key := cacheKey(athleteID, period)
	if cached, found := s.cache.Get(key); found {
		var report ProgressReport
		if err := json.Unmarshal(cached, &report); err == nil {
			s.metricsManager.CounterProgressCache.WithLabelValues("hit").Inc()
			return &report, nil
		}
		log.Warnf("progress cache [%s]: dropping undecodable entry", key)
		s.cache.Delete(key)
	}
	s.metricsManager.CounterProgressCache.WithLabelValues("miss").Inc()

	start, end := period.Window(s.now())
	sessions, err := s.sessions.ListCompleted(ctx, athleteID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	measurements, err := s.measurements.ListInRange(ctx, athleteID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}

	report := ComputeProgress(sessions, measurements, start, end)

	if encoded, err := json.Marshal(report); err != nil {
		log.Errorf("progress cache [%s]: marshal report: %s", key, err)
	} else if err := s.cache.Set(key, encoded, s.cacheTTL); err != nil {
		log.Errorf("progress cache [%s]: %s", key, err)
	}

	return &report, nil
}

// Invalidate drops every cached period of the athlete. Called after session or measurement writes.
func (s *Service) Invalidate(athleteID string) {
	for _, p := range Periods {
		s.cache.Delete(cacheKey(athleteID, p))
	}
}

type AthleteSummary struct {
	AthleteID string   `json:"athleteId"`
	Summary   *Summary `json:"summary,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ProgressForAthletes computes the summaries of several athletes with at most
// fanOutLimit reports in flight. A failing athlete is reported in its entry and
// does not fail the others; a done context does.
func (s *Service) ProgressForAthletes(ctx context.Context, athleteIDs []string, period Period) (_ []AthleteSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trends.service.progressForAthletes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("athletes", len(athleteIDs)))

	summaries := make([]AthleteSummary, len(athleteIDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOutLimit)

	for i, athleteID := range athleteIDs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			summaries[i].AthleteID = athleteID
			report, err := s.Progress(gCtx, athleteID, period)
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Errorf("progress for athlete [%s]: %s", athleteID, err)
				summaries[i].Error = err.Error()
				return nil
			}
			summaries[i].Summary = &report.Summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("progress fan-out: %w", err)
	}
	return summaries, nil
}
