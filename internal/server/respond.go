package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

// errorResponse is the JSON body for every failure.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto HTTP status codes. Storage
// failures and anything unrecognized become an opaque 500; the message is
// logged server-side and not leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var kind string

	switch {
	case errors.Is(err, timeclock.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, timeclock.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, timeclock.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, timeclock.ErrDenied):
		status, kind = http.StatusForbidden, "denied"
	case errors.Is(err, timeclock.ErrClockSkew):
		status, kind = http.StatusConflict, "clock_skew"
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal error",
			Kind:  "internal",
		})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
