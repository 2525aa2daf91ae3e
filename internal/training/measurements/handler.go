package measurements

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=measurements_test

type measurementsStore interface {
	Add(ctx context.Context, sample *training.BodyMeasurementSample) (*training.BodyMeasurementSample, error)
	List(ctx context.Context, athleteID string, from, to *time.Time) ([]training.BodyMeasurementSample, error)
}

type progressInvalidator interface {
	Invalidate(athleteID string)
}

type AddRequest struct {
	Date           *time.Time         `json:"date,omitempty"`
	Weight         *float64           `json:"weight,omitempty"`
	Circumferences map[string]float64 `json:"circumferences,omitempty"`
}

type ListResponse struct {
	Measurements []training.BodyMeasurementSample `json:"measurements"`
}

type Handler struct {
	store       measurementsStore
	invalidator progressInvalidator
	now         func() time.Time
}

func NewHandler(store measurementsStore, invalidator progressInvalidator) *Handler {
	return &Handler{
		store:       store,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/measurements", handler.HandleAdd).Methods("POST", "OPTIONS").Name("add-measurement")
	r.HandleFunc("/measurements", handler.HandleList).Methods("GET", "OPTIONS").Name("list-measurements")
}

func (req AddRequest) validate() error {
	if req.Weight == nil && len(req.Circumferences) == 0 {
		return apperr.Validation("measurement needs a weight or circumferences")
	}
	if req.Weight != nil && *req.Weight <= 0 {
		return apperr.Validation("weight must be positive")
	}
	for name, v := range req.Circumferences {
		if name == "" || name == "date" || v <= 0 {
			return apperr.Validation("circumferences must be positive and named")
		}
	}
	return nil
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.add")
	defer span.End()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteHTTP(w, apperr.Validation("invalid measurement json"))
		return
	}
	if err := req.validate(); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	athleteID := auth.AthleteID(ctx)
	date := handler.now()
	if req.Date != nil {
		date = *req.Date
	}

	added, err := handler.store.Add(ctx, &training.BodyMeasurementSample{
		AthleteID:      athleteID,
		Date:           date,
		Weight:         req.Weight,
		Circumferences: req.Circumferences,
	})
	if err != nil {
		log.Errorf("add measurement for [%s]: %s", athleteID, err)
		http.Error(w, "error, failed to add measurement", http.StatusInternalServerError)
		return
	}
	handler.invalidator.Invalidate(athleteID)

	pkg.WriteJSONResponse(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.list")
	defer span.End()

	from, to, err := pkg.TimeRangeFromQuery(r.URL.Query())
	if err != nil {
		apperr.WriteHTTP(w, apperr.Validation(err.Error()))
		return
	}

	athleteID := auth.AthleteID(ctx)
	samples, err := handler.store.List(ctx, athleteID, from, to)
	if err != nil {
		log.Errorf("list measurements for [%s]: %s", athleteID, err)
		http.Error(w, "error, failed to list measurements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, ListResponse{Measurements: samples})
}
