package server

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/shiftclock/shiftclock/internal/account"
	"github.com/shiftclock/shiftclock/internal/auth"
	httpx "github.com/shiftclock/shiftclock/internal/http"
	"github.com/shiftclock/shiftclock/internal/logger"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

// Server wires the HTTP handlers, auth middleware, and CORS into one handler.
type Server struct {
	accountServer *AccountServer
	workServer    *WorkServer
	managerServer *ManagerServer

	tokens  *auth.TokenManager
	workers store.WorkerStore
}

// NewServer creates a server over the given services.
func NewServer(accounts *account.Service, clock *timeclock.Service, tokens *auth.TokenManager, workers store.WorkerStore) *Server {
	return &Server{
		accountServer: NewAccountServer(accounts),
		workServer:    NewWorkServer(clock),
		managerServer: NewManagerServer(clock),
		tokens:        tokens,
		workers:       workers,
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler(log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint for load balancer
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Public endpoints
	mux.HandleFunc("POST /api/auth/register", s.accountServer.Register)
	mux.HandleFunc("POST /api/auth/login", s.accountServer.Login)
	mux.HandleFunc("GET /api/organizations", s.accountServer.Organizations)

	// Authenticated endpoints
	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/auth/me", s.accountServer.Me)
	authed.HandleFunc("POST /api/work/start", s.workServer.Start)
	authed.HandleFunc("POST /api/work/stop", s.workServer.Stop)
	authed.HandleFunc("GET /api/work", s.workServer.List)
	authed.HandleFunc("GET /api/work/active", s.workServer.Active)
	authed.HandleFunc("GET /api/manager/workers", s.managerServer.Workers)
	authed.HandleFunc("GET /api/manager/sessions", s.managerServer.Sessions)
	authed.HandleFunc("PUT /api/manager/workers/{id}/role", s.managerServer.UpdateRole)
	authed.HandleFunc("PUT /api/manager/workers/{id}/status", s.managerServer.UpdateStatus)
	authed.HandleFunc("PUT /api/manager/workers/{id}/rate", s.managerServer.UpdateRate)
	authed.HandleFunc("GET /api/manager/workers/{id}/report", s.managerServer.Report)

	authMiddleware := auth.Middleware(s.tokens, s.workers)
	mux.Handle("/api/auth/me", authMiddleware(authed))
	mux.Handle("/api/work", authMiddleware(authed))
	mux.Handle("/api/work/", authMiddleware(authed))
	mux.Handle("/api/manager/", authMiddleware(authed))

	handler := logger.RequestLogger(log)(httpx.ClientIPMiddleware()(mux))

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(handler)
}
