package server

import (
	"net/http"

	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

// WorkServer exposes a worker's own clock operations. Every handler targets
// the authenticated caller; managers act on other workers through the manager
// endpoints, not these.
type WorkServer struct {
	clock *timeclock.Service
}

// NewWorkServer creates the worker-facing session handlers.
func NewWorkServer(clock *timeclock.Service) *WorkServer {
	return &WorkServer{clock: clock}
}

// Start handles POST /api/work/start.
func (s *WorkServer) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	session, err := s.clock.Start(r.Context(), identity, identity.WorkerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// Stop handles POST /api/work/stop.
func (s *WorkServer) Stop(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	session, err := s.clock.Stop(r.Context(), identity, identity.WorkerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// List handles GET /api/work.
func (s *WorkServer) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	sessions, err := s.clock.List(r.Context(), identity, identity.WorkerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponses(sessions))
}

// Active handles GET /api/work/active. An idle worker gets a JSON null, not
// an error, so clients can poll clock state without special-casing.
func (s *WorkServer) Active(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	session, err := s.clock.Active(r.Context(), identity, identity.WorkerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if session == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}
