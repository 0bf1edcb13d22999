package timeclock

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/telemetry"
)

const millisPerHour = 60 * 60 * 1000

// ReportRow is one closed session shaped for an earnings statement. Hours and
// Minutes are the floored display split of the duration; Earnings is computed
// from the precise duration, then rounded for display.
type ReportRow struct {
	SessionID      uuid.UUID `json:"sessionId"`
	Date           string    `json:"date"`      // calendar date of the start, UTC
	StartTime      string    `json:"startTime"` // time of day, UTC
	EndTime        string    `json:"endTime"`
	Hours          int64     `json:"hours"`
	Minutes        int64     `json:"minutes"`
	DurationMillis int64     `json:"durationMs"`
	Earnings       float64   `json:"earnings"`
}

// Report is the per-period earnings statement for one worker: ordered rows
// plus totals. Rendering to any document format is someone else's problem.
type Report struct {
	WorkerID    uuid.UUID `json:"workerId"`
	Username    string    `json:"username"`
	HourlyRate  float64   `json:"hourlyRate"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	Rows []ReportRow `json:"rows"`

	TotalDurationMillis int64   `json:"totalDurationMs"`
	TotalHours          float64 `json:"totalHours"`
	TotalEarnings       float64 `json:"totalEarnings"`
}

// GenerateReport builds the earnings statement for a worker over the
// inclusive period [from, to]. Manager-only; the worker lookup is scoped to
// the caller's organization, so a worker elsewhere reports as not found.
//
// Only closed sessions whose start falls inside the period are included,
// ordered by start ascending. Totals are a reduction over the raw millisecond
// durations, independent of per-row rounding, so they reconcile exactly with
// a reference computation rather than drifting with the display values.
func (s *Service) GenerateReport(ctx context.Context, caller auth.Identity, workerID uuid.UUID, from, to time.Time) (*Report, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	worker, err := s.workers.GetInOrg(ctx, caller.OrgID, workerID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	sessions, err := s.sessions.ListClosedInRange(ctx, worker.WorkerID, from, to)
	if err != nil {
		return nil, mapStoreError(err)
	}

	report := &Report{
		WorkerID:    worker.WorkerID,
		Username:    worker.Username,
		HourlyRate:  worker.HourlyRate,
		PeriodStart: from,
		PeriodEnd:   to,
		Rows:        make([]ReportRow, 0, len(sessions)),
	}

	var totalMillis int64
	for _, session := range sessions {
		report.Rows = append(report.Rows, buildRow(session, worker.HourlyRate))
		totalMillis += session.DurationMillis
	}

	// Totals from the unrounded aggregate, not from summing rounded rows.
	totalHours := float64(totalMillis) / millisPerHour
	report.TotalDurationMillis = totalMillis
	report.TotalHours = round2(totalHours)
	report.TotalEarnings = round2(totalHours * worker.HourlyRate)

	telemetry.GetMetrics().ReportsGeneratedTotal.Add(ctx, 1)

	return report, nil
}

func buildRow(session *models.WorkSession, hourlyRate float64) ReportRow {
	start := session.StartedAt.UTC()
	end := session.EndedAt.UTC()

	durationMinutes := session.DurationMillis / (60 * 1000)
	preciseHours := float64(session.DurationMillis) / millisPerHour

	return ReportRow{
		SessionID:      session.SessionID,
		Date:           start.Format("2006-01-02"),
		StartTime:      start.Format("15:04"),
		EndTime:        end.Format("15:04"),
		Hours:          durationMinutes / 60,
		Minutes:        durationMinutes % 60,
		DurationMillis: session.DurationMillis,
		Earnings:       round2(preciseHours * hourlyRate),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
