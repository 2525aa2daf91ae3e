package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

type sessionService interface {
	Create(ctx context.Context, athleteID string, session training.TrainingSession) (*Result, error)
	Complete(ctx context.Context, id, actor string, completedAt *time.Time, exercises []training.ExercisePerformance) (*Result, error)
	TrackRecords(ctx context.Context, id, actor string) (*Result, error)
	List(ctx context.Context, athleteID string, from, to *time.Time) ([]training.TrainingSession, error)
}

type CompleteRequest struct {
	CompletedAt *time.Time                     `json:"completedAt,omitempty"`
	Exercises   []training.ExercisePerformance `json:"exercises,omitempty"`
}

type ListResponse struct {
	Sessions []training.TrainingSession `json:"sessions"`
}

type Handler struct {
	service sessionService
}

func NewHandler(service sessionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", handler.HandleCreate).Methods("POST", "OPTIONS").Name("create-session")
	r.HandleFunc("/sessions", handler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}/complete", handler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-session")
	r.HandleFunc("/sessions/{id}/records", handler.HandleTrackRecords).Methods("POST", "OPTIONS").Name("track-session-records")
}

func writeError(w http.ResponseWriter, op string, err error) {
	if kind := apperr.KindOf(err); kind == apperr.KindPersistence || kind == apperr.KindInternal {
		log.Errorf("%s: %s", op, err)
	}
	apperr.WriteHTTP(w, err)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.create")
	defer span.End()

	var session training.TrainingSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		apperr.WriteHTTP(w, apperr.Validation("invalid session json"))
		return
	}

	result, err := handler.service.Create(ctx, auth.AthleteID(ctx), session)
	if err != nil {
		writeError(w, "create session", err)
		return
	}

	pkg.WriteJSONResponse(w, result, http.StatusCreated)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	var req CompleteRequest
	// an empty body completes the session now with the stored exercises
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apperr.WriteHTTP(w, apperr.Validation("invalid completion json"))
		return
	}

	result, err := handler.service.Complete(ctx, mux.Vars(r)["id"], auth.AthleteID(ctx), req.CompletedAt, req.Exercises)
	if err != nil {
		writeError(w, "complete session", err)
		return
	}

	pkg.WriteJSONResponseOK(w, result)
}

func (handler *Handler) HandleTrackRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.trackRecords")
	defer span.End()

	result, err := handler.service.TrackRecords(ctx, mux.Vars(r)["id"], auth.AthleteID(ctx))
	if err != nil {
		writeError(w, "track session records", err)
		return
	}

	pkg.WriteJSONResponseOK(w, result)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	from, to, err := pkg.TimeRangeFromQuery(r.URL.Query())
	if err != nil {
		apperr.WriteHTTP(w, apperr.Validation(err.Error()))
		return
	}

	sessions, err := handler.service.List(ctx, auth.AthleteID(ctx), from, to)
	if err != nil {
		writeError(w, "list sessions", err)
		return
	}

	pkg.WriteJSONResponseOK(w, ListResponse{Sessions: sessions})
}
