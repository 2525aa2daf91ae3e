package internal

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikrystian/kluska/internal/cache"
	"github.com/ikrystian/kluska/internal/telemetry/metrics"
	"github.com/ikrystian/kluska/internal/training/activities"
	"github.com/ikrystian/kluska/internal/training/challenges"
	"github.com/ikrystian/kluska/internal/training/measurements"
	"github.com/ikrystian/kluska/internal/training/records"
	"github.com/ikrystian/kluska/internal/training/sessions"
	"github.com/ikrystian/kluska/internal/training/trends"
)

// TrainingServices is the training core wired to postgres. Shared by the HTTP
// service and the stdio MCP server.
type TrainingServices struct {
	Sessions     *sessions.Service
	Measurements *measurements.Repo
	Activities   *activities.Repo
	Records      *records.Repo
	Tracker      *records.Tracker
	Progress     *trends.Service
	Challenges   *challenges.Service
}

type TrainingServicesParams struct {
	DB                  *pgxpool.Pool
	ProgressCache       cache.Cache
	ProgressCacheTTL    time.Duration
	ProgressFanOutLimit int
	MetricsManager      *metrics.Manager
}

func NewTrainingServices(params TrainingServicesParams) *TrainingServices {
	sessionsRepo := sessions.NewRepo(params.DB)
	measurementsRepo := measurements.NewRepo(params.DB)
	activitiesRepo := activities.NewRepo(params.DB)
	recordsRepo := records.NewRepo(params.DB)

	progress := trends.NewService(trends.ServiceParams{
		Sessions:       sessionsRepo,
		Measurements:   measurementsRepo,
		Cache:          params.ProgressCache,
		CacheTTL:       params.ProgressCacheTTL,
		FanOutLimit:    params.ProgressFanOutLimit,
		MetricsManager: params.MetricsManager,
	})
	tracker := records.NewTracker(recordsRepo, params.MetricsManager)

	return &TrainingServices{
		Sessions:     sessions.NewService(sessionsRepo, tracker, progress, time.Now),
		Measurements: measurementsRepo,
		Activities:   activitiesRepo,
		Records:      recordsRepo,
		Tracker:      tracker,
		Progress:     progress,
		Challenges: challenges.NewService(
			challenges.NewRepo(params.DB),
			activitiesRepo,
			params.MetricsManager,
			time.Now,
		),
	}
}
