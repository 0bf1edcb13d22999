package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shiftclock/shiftclock/internal/store/memory"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer ", "", false},
		{"scheme only", "Bearer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, ok := BearerToken(r)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, token)
		})
	}
}

func TestMiddleware(t *testing.T) {
	tokens, err := NewTokenManager(testSecret)
	require.NoError(t, err)

	workers := memory.NewWorkerStore()
	worker := testWorker()
	require.NoError(t, workers.Create(context.Background(), worker))

	var seen Identity
	handler := Middleware(tokens, workers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token resolves the identity", func(t *testing.T) {
		token, err := tokens.Issue(worker)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, worker.WorkerID, seen.WorkerID)
		require.Equal(t, worker.OrgID, seen.OrgID)
		require.Equal(t, worker.Role, seen.Role)
		require.Equal(t, worker.Status, seen.Status)
	})

	t.Run("identity reflects the stored record, not the claims", func(t *testing.T) {
		// Token was issued while the worker was a member; a later promotion
		// must be visible without reissuing.
		token, err := tokens.Issue(worker)
		require.NoError(t, err)

		_, err = workers.UpdateRole(context.Background(), worker.OrgID, worker.WorkerID, "manager")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "manager", string(seen.Role))
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for a deleted worker is unauthorized", func(t *testing.T) {
		ghost := testWorker()
		token, err := tokens.Issue(ghost)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
