package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ikrystian/kluska/internal/telemetry/tracing"
	"github.com/ikrystian/kluska/pkg"
)

type revoker interface {
	Revoke(ctx context.Context, claims *Claims) error
}

type Handler struct {
	revocations revoker
}

func NewHandler(revocations revoker) *Handler {
	return &Handler{
		revocations: revocations,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/auth/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
}

// HandleLogout revokes the token the request was authenticated with.
func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	claims, ok := FromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.revocations.Revoke(ctx, claims); err != nil {
		log.Errorf("logout [%s]: %s", claims.AthleteID, err)
		http.Error(w, "error, failed to logout", http.StatusInternalServerError)
		return
	}

	log.Debugf("athlete [%s] logged out", claims.AthleteID)
	pkg.WriteTextResponseOK(w, "logged-out")
}
