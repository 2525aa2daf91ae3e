package apperr

import (
	"net/http"

	"github.com/ikrystian/kluska/pkg"
)

type problem struct {
	Type   Kind   `json:"type"`
	Detail string `json:"detail,omitempty"`
}

// WriteHTTP writes err as {"type": kind, "detail": reason}. Internal and
// persistence failures never leak their cause to the client.
func WriteHTTP(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	detail := ReasonOf(err)
	if kind == KindInternal {
		detail = "internal error"
	}
	pkg.WriteJSONResponse(w, problem{Type: kind, Detail: detail}, HTTPStatus(err))
}
