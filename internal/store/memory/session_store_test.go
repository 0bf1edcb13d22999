package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/stretchr/testify/require"
)

func newOpenSession(workerID uuid.UUID, at time.Time) *models.WorkSession {
	return &models.WorkSession{
		SessionID: uuid.Must(uuid.NewV7()),
		WorkerID:  workerID,
		StartedAt: at,
	}
}

func TestSessionStoreStart(t *testing.T) {
	t.Run("start persists an open session", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		session := newOpenSession(workerID, time.Now())
		require.NoError(t, s.StartSession(ctx, session))

		open, err := s.GetOpenSession(ctx, workerID)
		require.NoError(t, err)
		require.Equal(t, session.SessionID, open.SessionID)
	})

	t.Run("second open session for the same worker is rejected", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, time.Now())))

		err := s.StartSession(ctx, newOpenSession(workerID, time.Now()))
		require.ErrorIs(t, err, store.ErrSessionActive)
	})

	t.Run("different workers can be open at once", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()

		require.NoError(t, s.StartSession(ctx, newOpenSession(uuid.Must(uuid.NewV7()), time.Now())))
		require.NoError(t, s.StartSession(ctx, newOpenSession(uuid.Must(uuid.NewV7()), time.Now())))
	})

	t.Run("mutating the passed session does not affect the store", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		session := newOpenSession(workerID, time.Now())
		require.NoError(t, s.StartSession(ctx, session))

		session.DurationMillis = 999

		open, err := s.GetOpenSession(ctx, workerID)
		require.NoError(t, err)
		require.Zero(t, open.DurationMillis)
	})
}

func TestSessionStoreClose(t *testing.T) {
	t.Run("close computes duration from the recorded start", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, start)))

		closed, err := s.CloseOpenSession(ctx, workerID, start.Add(45*time.Minute))
		require.NoError(t, err)
		require.Equal(t, int64(45*60*1000), closed.DurationMillis)
		require.NotNil(t, closed.EndedAt)

		_, err = s.GetOpenSession(ctx, workerID)
		require.ErrorIs(t, err, store.ErrNoOpenSession)
	})

	t.Run("close without an open session", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()

		_, err := s.CloseOpenSession(ctx, uuid.Must(uuid.NewV7()), time.Now())
		require.ErrorIs(t, err, store.ErrNoOpenSession)
	})

	t.Run("end before start is clock skew and leaves the session open", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, start)))

		_, err := s.CloseOpenSession(ctx, workerID, start.Add(-time.Second))
		require.ErrorIs(t, err, store.ErrClockSkew)

		open, err := s.GetOpenSession(ctx, workerID)
		require.NoError(t, err)
		require.True(t, open.Open())
	})

	t.Run("a new session can start after close", func(t *testing.T) {
		s := NewSessionStore()
		ctx := context.Background()
		workerID := uuid.Must(uuid.NewV7())

		start := time.Now()
		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, start)))
		_, err := s.CloseOpenSession(ctx, workerID, start.Add(time.Hour))
		require.NoError(t, err)

		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, start.Add(2*time.Hour))))
	})
}

func TestSessionStoreListClosedInRange(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	workerID := uuid.Must(uuid.NewV7())

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 9, 0, 0, 0, time.UTC)
	}

	for _, d := range []int{5, 1, 9} {
		require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, day(d))))
		_, err := s.CloseOpenSession(ctx, workerID, day(d).Add(time.Hour))
		require.NoError(t, err)
	}

	// One open session inside the range.
	require.NoError(t, s.StartSession(ctx, newOpenSession(workerID, day(6))))

	t.Run("closed sessions inside the range, ascending", func(t *testing.T) {
		sessions, err := s.ListClosedInRange(ctx, workerID, day(1), day(31))
		require.NoError(t, err)
		require.Len(t, sessions, 3)
		require.Equal(t, day(1), sessions[0].StartedAt)
		require.Equal(t, day(5), sessions[1].StartedAt)
		require.Equal(t, day(9), sessions[2].StartedAt)
	})

	t.Run("range bounds are inclusive on the start instant", func(t *testing.T) {
		sessions, err := s.ListClosedInRange(ctx, workerID, day(5), day(5))
		require.NoError(t, err)
		require.Len(t, sessions, 1)
	})

	t.Run("narrow range excludes everything", func(t *testing.T) {
		sessions, err := s.ListClosedInRange(ctx, workerID, day(20), day(25))
		require.NoError(t, err)
		require.Empty(t, sessions)
	})
}

func TestSessionStoreListInOrg(t *testing.T) {
	workers := NewWorkerStore()
	s := NewSessionStore()
	s.Workers = workers
	ctx := context.Background()

	orgID := uuid.Must(uuid.NewV7())
	alice := &models.Worker{
		WorkerID: uuid.Must(uuid.NewV7()),
		OrgID:    orgID,
		Username: "alice",
		Role:     models.RoleMember,
		Status:   models.StatusActive,
	}
	require.NoError(t, workers.Create(ctx, alice))

	outsider := &models.Worker{
		WorkerID: uuid.Must(uuid.NewV7()),
		OrgID:    uuid.Must(uuid.NewV7()),
		Username: "outsider",
		Role:     models.RoleMember,
		Status:   models.StatusActive,
	}
	require.NoError(t, workers.Create(ctx, outsider))

	require.NoError(t, s.StartSession(ctx, newOpenSession(alice.WorkerID, time.Now())))
	require.NoError(t, s.StartSession(ctx, newOpenSession(outsider.WorkerID, time.Now())))

	sessions, err := s.ListInOrg(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "alice", sessions[0].Username)
	require.Equal(t, models.RoleMember, sessions[0].Role)
}
