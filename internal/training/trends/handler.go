package trends

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/pkg"
)

const MaxSummaryAthletes = 50

type progressService interface {
	Progress(ctx context.Context, athleteID string, period Period) (*ProgressReport, error)
	ProgressForAthletes(ctx context.Context, athleteIDs []string, period Period) ([]AthleteSummary, error)
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	r.HandleFunc("/progress/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("progress-summary")
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trends.progress")
	defer span.End()

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	athleteID := auth.AthleteID(ctx)
	report, err := handler.service.Progress(ctx, athleteID, period)
	if err != nil {
		log.Errorf("progress for [%s]: %s", athleteID, err)
		http.Error(w, "error, failed to compute progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, report)
}

// HandleSummary serves ?athlete_ids=a,b,c&period=30d for the trainer overview.
func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trends.summary")
	defer span.End()

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	var athleteIDs []string
	for _, id := range strings.Split(r.URL.Query().Get("athlete_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			athleteIDs = append(athleteIDs, id)
		}
	}
	if len(athleteIDs) == 0 || len(athleteIDs) > MaxSummaryAthletes {
		apperr.WriteHTTP(w, apperr.Validation("athlete_ids must list between 1 and 50 ids"))
		return
	}

	summaries, err := handler.service.ProgressForAthletes(ctx, athleteIDs, period)
	if err != nil {
		log.Errorf("progress summary: %s", err)
		http.Error(w, "error, failed to compute progress summary", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, summaries)
}
