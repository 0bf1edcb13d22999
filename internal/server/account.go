package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shiftclock/shiftclock/internal/account"
	"github.com/shiftclock/shiftclock/internal/auth"
	httpx "github.com/shiftclock/shiftclock/internal/http"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

// AccountServer exposes registration, login, and identity endpoints.
type AccountServer struct {
	accounts *account.Service
}

// NewAccountServer creates the account endpoint handlers.
func NewAccountServer(accounts *account.Service) *AccountServer {
	return &AccountServer{accounts: accounts}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Type     string `json:"type"` // "create" or "join"
	OrgName  string `json:"orgName,omitempty"`
	OrgID    string `json:"orgId,omitempty"`
}

type authResponse struct {
	Token  string         `json:"token"`
	Worker workerResponse `json:"worker"`
}

// Register handles POST /api/auth/register.
func (s *AccountServer) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", timeclock.ErrValidation))
		return
	}

	params := account.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Type:     account.RegistrationType(req.Type),
		OrgName:  req.OrgName,
	}

	if req.OrgID != "" {
		orgID, err := uuid.Parse(req.OrgID)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid organization id", timeclock.ErrValidation))
			return
		}
		params.OrgID = orgID
	}

	result, err := s.accounts.Register(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:  result.Token,
		Worker: toWorkerResponse(result.Worker),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (s *AccountServer) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body", timeclock.ErrValidation))
		return
	}

	result, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().
			Str("username", req.Username).
			Str("client_ip", httpx.ClientIPFromContext(r.Context())).
			Msg("Login failed")
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:  result.Token,
		Worker: toWorkerResponse(result.Worker),
	})
}

// Me handles GET /api/auth/me.
func (s *AccountServer) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, timeclock.ErrDenied)
		return
	}

	worker, err := s.accounts.Me(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkerResponse(worker))
}

// Organizations handles GET /api/organizations. Public: feeds the
// join-an-organization picker during registration.
func (s *AccountServer) Organizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.accounts.Organizations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrganizationResponses(orgs))
}
