package records

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/pkg"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type ListResponse struct {
	Records []PersonalRecord `json:"records"`
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/records", handler.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	r.HandleFunc("/athletes/{athleteId}/records", handler.HandleAthleteRecent).Methods("GET", "OPTIONS").Name("athlete-recent-records")
}

// HandleList returns the caller's records, optionally filtered by exercise_id and kind.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	kind := Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		apperr.WriteHTTP(w, apperr.Validation("unknown record kind"))
		return
	}

	records, err := handler.store.List(ctx, ListParams{
		AthleteID:  auth.AthleteID(ctx),
		ExerciseID: r.URL.Query().Get("exercise_id"),
		Kind:       kind,
	})
	if err != nil {
		log.Errorf("list records: %s", err)
		http.Error(w, "error, failed to list records", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, ListResponse{Records: records})
}

// HandleAthleteRecent returns the latest records of any athlete, for profile pages.
func (handler *Handler) HandleAthleteRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.athleteRecent")
	defer span.End()

	athleteID := mux.Vars(r)["athleteId"]
	if athleteID == "" {
		apperr.WriteHTTP(w, apperr.Validation("athlete id missing"))
		return
	}

	limit := defaultRecentLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 || parsed > maxRecentLimit {
			apperr.WriteHTTP(w, apperr.Validation("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	records, err := handler.store.List(ctx, ListParams{
		AthleteID: athleteID,
		Limit:     limit,
	})
	if err != nil {
		log.Errorf("list recent records for [%s]: %s", athleteID, err)
		http.Error(w, "error, failed to list records", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, ListResponse{Records: records})
}
