package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// workDay drives a start/stop pair through the service at fixed instants.
func workDay(t *testing.T, f *fixture, at time.Time, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	caller := identityOf(f.member)

	now := at
	f.service.WithClock(func() time.Time { return now })

	_, err := f.service.Start(ctx, caller, f.member.WorkerID)
	require.NoError(t, err)

	now = at.Add(d)
	_, err = f.service.Stop(ctx, caller, f.member.WorkerID)
	require.NoError(t, err)
}

func TestGenerateReport(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("rows and totals reconcile to the penny", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		// Rate 20/h: sessions of 1h, 30m, and 15m.
		workDay(t, f, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), time.Hour)
		workDay(t, f, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC), 30*time.Minute)
		workDay(t, f, time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC), 15*time.Minute)

		report, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, from, to)
		require.NoError(t, err)
		require.Equal(t, "alice", report.Username)
		require.Len(t, report.Rows, 3)

		require.Equal(t, int64(1), report.Rows[0].Hours)
		require.Equal(t, int64(0), report.Rows[0].Minutes)
		require.Equal(t, 20.0, report.Rows[0].Earnings)

		require.Equal(t, int64(0), report.Rows[1].Hours)
		require.Equal(t, int64(30), report.Rows[1].Minutes)
		require.Equal(t, 10.0, report.Rows[1].Earnings)

		require.Equal(t, int64(0), report.Rows[2].Hours)
		require.Equal(t, int64(15), report.Rows[2].Minutes)
		require.Equal(t, 5.0, report.Rows[2].Earnings)

		require.Equal(t, int64(6300000), report.TotalDurationMillis)
		require.Equal(t, 1.75, report.TotalHours)
		require.Equal(t, 35.0, report.TotalEarnings)
	})

	t.Run("rows are ordered by start ascending", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		workDay(t, f, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), time.Hour)
		workDay(t, f, time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), time.Hour)
		workDay(t, f, time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), time.Hour)

		report, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 3)
		require.Equal(t, "2025-03-02", report.Rows[0].Date)
		require.Equal(t, "2025-03-06", report.Rows[1].Date)
		require.Equal(t, "2025-03-10", report.Rows[2].Date)
	})

	t.Run("open sessions are excluded", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		workDay(t, f, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), time.Hour)

		// Leave a session open inside the period.
		f.service.WithClock(func() time.Time {
			return time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
		})
		_, err := f.service.Start(ctx, identityOf(f.member), f.member.WorkerID)
		require.NoError(t, err)

		report, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		require.Equal(t, int64(3600000), report.TotalDurationMillis)
	})

	t.Run("sessions outside the period are excluded", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		workDay(t, f, time.Date(2025, 2, 27, 9, 0, 0, 0, time.UTC), time.Hour)
		workDay(t, f, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), time.Hour)
		workDay(t, f, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), time.Hour)

		report, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, from, to)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		require.Equal(t, "2025-03-03", report.Rows[0].Date)
	})

	t.Run("empty period yields zero totals", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		report, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, from, to)
		require.NoError(t, err)
		require.Empty(t, report.Rows)
		require.Zero(t, report.TotalDurationMillis)
		require.Zero(t, report.TotalHours)
		require.Zero(t, report.TotalEarnings)
	})

	t.Run("member cannot generate a report, even their own", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.service.GenerateReport(ctx, identityOf(f.member), f.member.WorkerID, from, to)
		require.ErrorIs(t, err, ErrDenied)
	})

	t.Run("inverted period is a validation error", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.service.GenerateReport(ctx, identityOf(f.manager), f.member.WorkerID, to, from)
		require.ErrorIs(t, err, ErrInvalidPeriod)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown worker is not found", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.service.GenerateReport(ctx, identityOf(f.manager), uuid.Must(uuid.NewV7()), from, to)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRound2(t *testing.T) {
	require.Equal(t, 1.75, round2(1.75))
	require.Equal(t, 0.33, round2(1.0/3.0))
	require.Equal(t, 16.67, round2(float64(3000000)/millisPerHour*20))
	require.Equal(t, 0.0, round2(0))
}
