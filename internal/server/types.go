package server

import (
	"time"

	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

// workerResponse is a worker record shaped for the API; the credential secret
// never leaves the server.
type workerResponse struct {
	WorkerID   string  `json:"workerId"`
	OrgID      string  `json:"orgId"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	HourlyRate float64 `json:"hourlyRate"`
}

func toWorkerResponse(w *models.Worker) workerResponse {
	return workerResponse{
		WorkerID:   w.WorkerID.String(),
		OrgID:      w.OrgID.String(),
		Username:   w.Username,
		Role:       string(w.Role),
		Status:     string(w.Status),
		HourlyRate: w.HourlyRate,
	}
}

type sessionResponse struct {
	SessionID  string     `json:"sessionId"`
	WorkerID   string     `json:"workerId"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	DurationMs int64      `json:"durationMs"`
	Open       bool       `json:"open"`
}

func toSessionResponse(s *models.WorkSession) sessionResponse {
	return sessionResponse{
		SessionID:  s.SessionID.String(),
		WorkerID:   s.WorkerID.String(),
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		DurationMs: s.DurationMillis,
		Open:       s.Open(),
	}
}

func toSessionResponses(sessions []*models.WorkSession) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

type orgSessionResponse struct {
	sessionResponse
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toOrgSessionResponses(items []*store.SessionWithWorker) []orgSessionResponse {
	out := make([]orgSessionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, orgSessionResponse{
			sessionResponse: toSessionResponse(item.Session),
			Username:        item.Username,
			Role:            string(item.Role),
		})
	}
	return out
}

type organizationResponse struct {
	OrgID string `json:"orgId"`
	Name  string `json:"name"`
}

func toOrganizationResponses(orgs []*models.Organization) []organizationResponse {
	out := make([]organizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, organizationResponse{
			OrgID: org.OrgID.String(),
			Name:  org.Name,
		})
	}
	return out
}
