package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

// ManagerServer exposes the manager-only surface: worker administration,
// organization-wide session listings, and earnings reports.
type ManagerServer struct {
	clock *timeclock.Service
}

// NewManagerServer creates the manager endpoint handlers.
func NewManagerServer(clock *timeclock.Service) *ManagerServer {
	return &ManagerServer{clock: clock}
}

func callerAndTarget(r *http.Request) (auth.Identity, uuid.UUID, error) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return auth.Identity{}, uuid.Nil, timeclock.ErrDenied
	}

	workerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return auth.Identity{}, uuid.Nil, fmt.Errorf("%w: invalid worker id", timeclock.ErrValidation)
	}

	return identity, workerID, nil
}

// Workers handles GET /api/manager/workers.
func (s *ManagerServer) Workers(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	workers, err := s.clock.ListWorkers(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]workerResponse, 0, len(workers))
	for _, worker := range workers {
		out = append(out, toWorkerResponse(worker))
	}

	writeJSON(w, http.StatusOK, out)
}

// Sessions handles GET /api/manager/sessions.
func (s *ManagerServer) Sessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	sessions, err := s.clock.ListOrgSessions(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrgSessionResponses(sessions))
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PUT /api/manager/workers/{id}/role.
func (s *ManagerServer) UpdateRole(w http.ResponseWriter, r *http.Request) {
	identity, workerID, err := callerAndTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", timeclock.ErrValidation))
		return
	}

	worker, err := s.clock.UpdateRole(r.Context(), identity, workerID, models.Role(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(worker))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/manager/workers/{id}/status.
func (s *ManagerServer) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, workerID, err := callerAndTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", timeclock.ErrValidation))
		return
	}

	worker, err := s.clock.UpdateStatus(r.Context(), identity, workerID, models.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(worker))
}

type updateRateRequest struct {
	HourlyRate float64 `json:"hourlyRate"`
}

// UpdateRate handles PUT /api/manager/workers/{id}/rate.
func (s *ManagerServer) UpdateRate(w http.ResponseWriter, r *http.Request) {
	identity, workerID, err := callerAndTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", timeclock.ErrValidation))
		return
	}

	worker, err := s.clock.UpdateHourlyRate(r.Context(), identity, workerID, req.HourlyRate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(worker))
}

// Report handles GET /api/manager/workers/{id}/report?from=...&to=...
// The period bounds are RFC 3339 timestamps or plain dates (YYYY-MM-DD); a
// plain "to" date extends to the end of that day so the range stays inclusive.
func (s *ManagerServer) Report(w http.ResponseWriter, r *http.Request) {
	identity, workerID, err := callerAndTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	from, err := parsePeriodBound(r.URL.Query().Get("from"), false)
	if err != nil {
		writeError(w, r, err)
		return
	}

	to, err := parsePeriodBound(r.URL.Query().Get("to"), true)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.clock.GenerateReport(r.Context(), identity, workerID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func parsePeriodBound(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: from and to are required", timeclock.ErrValidation)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid period bound %q", timeclock.ErrValidation, value)
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}

	return t, nil
}
