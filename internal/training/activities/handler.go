package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/internal/training"
	"github.com/ikrystian/kluska/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activities_test

type activitiesStore interface {
	AddRun(ctx context.Context, run *RunningSession) (*RunningSession, error)
	UpsertSynced(ctx context.Context, a *SyncedActivity) (*SyncedActivity, error)
	List(ctx context.Context, athleteID string, from, to *time.Time) ([]training.DistanceActivity, error)
}

type ListResponse struct {
	Activities []training.DistanceActivity `json:"activities"`
	TotalKm    float64                     `json:"totalKm"`
}

type Handler struct {
	store activitiesStore
}

func NewHandler(store activitiesStore) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/activities", handler.HandleList).Methods("GET", "OPTIONS").Name("list-activities")
	r.HandleFunc("/activities/runs", handler.HandleAddRun).Methods("POST", "OPTIONS").Name("add-run")
	r.HandleFunc("/activities/synced", handler.HandleImportSynced).Methods("POST", "OPTIONS").Name("import-synced-activity")
}

func (handler *Handler) HandleAddRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.addRun")
	defer span.End()

	var run RunningSession
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		apperr.WriteHTTP(w, apperr.Validation("invalid running session json"))
		return
	}
	if err := run.Validate(); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	run.AthleteID = auth.AthleteID(ctx)

	added, err := handler.store.AddRun(ctx, &run)
	if err != nil {
		log.Errorf("add run for [%s]: %s", run.AthleteID, err)
		http.Error(w, "error, failed to add running session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (handler *Handler) HandleImportSynced(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.importSynced")
	defer span.End()

	var activity SyncedActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		apperr.WriteHTTP(w, apperr.Validation("invalid activity json"))
		return
	}
	if err := activity.Validate(); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	activity.AthleteID = auth.AthleteID(ctx)

	upserted, err := handler.store.UpsertSynced(ctx, &activity)
	if err != nil {
		log.Errorf("import activity [%s] for [%s]: %s", activity.ExternalID, activity.AthleteID, err)
		http.Error(w, "error, failed to import activity", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, upserted)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	from, to, err := pkg.TimeRangeFromQuery(r.URL.Query())
	if err != nil {
		apperr.WriteHTTP(w, apperr.Validation(err.Error()))
		return
	}

	athleteID := auth.AthleteID(ctx)
	activities, err := handler.store.List(ctx, athleteID, from, to)
	if err != nil {
		log.Errorf("list activities for [%s]: %s", athleteID, err)
		http.Error(w, "error, failed to list activities", http.StatusInternalServerError)
		return
	}

	resp := ListResponse{Activities: activities}
	for _, a := range activities {
		if training.IsRunningActivity(a.ActivityType) {
			resp.TotalKm += a.DistanceKm
		}
	}
	pkg.WriteJSONResponseOK(w, resp)
}
