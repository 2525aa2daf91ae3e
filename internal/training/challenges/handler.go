package challenges

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/apperr"
	"github.com/ikrystian/kluska/internal/auth"
	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/pkg"
)

type challengeService interface {
	Create(ctx context.Context, challengerID string, params CreateParams) (*Challenge, error)
	Get(ctx context.Context, id, actor string) (*Challenge, error)
	List(ctx context.Context, actor string) ([]Challenge, error)
	Respond(ctx context.Context, id, actor string, action Action) (*Challenge, error)
}

type ListResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type RespondRequest struct {
	Action Action `json:"action"`
}

type Handler struct {
	service challengeService
}

func NewHandler(service challengeService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/challenges", handler.HandleList).Methods("GET", "OPTIONS").Name("list-challenges")
	r.HandleFunc("/challenges", handler.HandleCreate).Methods("POST", "OPTIONS").Name("create-challenge")
	r.HandleFunc("/challenges/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-challenge")
	r.HandleFunc("/challenges/{id}", handler.HandleRespond).Methods("PATCH", "OPTIONS").Name("respond-challenge")
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindPersistence, apperr.KindInternal:
		log.Errorf("%s: %s", op, err)
	default:
		log.Debugf("%s: %s", op, err)
	}
	apperr.WriteHTTP(w, err)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.list")
	defer span.End()

	challenges, err := handler.service.List(ctx, auth.AthleteID(ctx))
	if err != nil {
		writeError(w, "list challenges", err)
		return
	}

	pkg.WriteJSONResponseOK(w, ListResponse{Challenges: challenges})
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.create")
	defer span.End()

	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Debugf("create challenge, decode: %s", err)
		apperr.WriteHTTP(w, apperr.Validation("invalid challenge json"))
		return
	}

	created, err := handler.service.Create(ctx, auth.AthleteID(ctx), params)
	if err != nil {
		writeError(w, "create challenge", err)
		return
	}

	pkg.WriteJSONResponse(w, created, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.get")
	defer span.End()

	c, err := handler.service.Get(ctx, mux.Vars(r)["id"], auth.AthleteID(ctx))
	if err != nil {
		writeError(w, "get challenge", err)
		return
	}

	pkg.WriteJSONResponseOK(w, c)
}

func (handler *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.respond")
	defer span.End()

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteHTTP(w, apperr.Validation("invalid action json"))
		return
	}

	updated, err := handler.service.Respond(ctx, mux.Vars(r)["id"], auth.AthleteID(ctx), req.Action)
	if err != nil {
		writeError(w, "respond to challenge", err)
		return
	}

	pkg.WriteJSONResponseOK(w, updated)
}
