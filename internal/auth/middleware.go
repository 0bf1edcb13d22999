package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/store"
)

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}

	return token, true
}

// Middleware verifies the bearer token and resolves the caller's current
// worker record into an Identity on the request context. Handlers behind it
// can assume IdentityFromContext succeeds.
//
// The worker record is loaded on every request rather than trusted from the
// token claims, so role and status changes apply to already-issued tokens.
func Middleware(tokens *TokenManager, workers store.WorkerStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := BearerToken(r)
			if !ok {
				deny(w)
				return
			}

			workerID, err := tokens.Verify(tokenStr)
			if err != nil {
				log.Debug().Err(err).Msg("Token verification failed")
				deny(w)
				return
			}

			worker, err := workers.Get(r.Context(), workerID)
			if err != nil {
				log.Debug().Err(err).Str("worker_id", workerID.String()).Msg("Token subject no longer exists")
				deny(w)
				return
			}

			identity := Identity{
				WorkerID: worker.WorkerID,
				OrgID:    worker.OrgID,
				Role:     worker.Role,
				Status:   worker.Status,
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// deny reports a generic authentication failure. Unauthenticated and
// unauthorized are deliberately indistinguishable beyond the status code.
func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}
