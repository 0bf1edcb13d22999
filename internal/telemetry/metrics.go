package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/shiftclock/shiftclock"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Session lifecycle metrics
	SessionsStartedTotal     metric.Int64Counter
	SessionsStoppedTotal     metric.Int64Counter
	ClockSkewRejectionsTotal metric.Int64Counter
	SessionDuration          metric.Float64Histogram

	// Report metrics
	ReportsGeneratedTotal metric.Int64Counter

	// Account metrics
	RegistrationsTotal metric.Int64Counter
	LoginsTotal        metric.Int64Counter
	LoginFailuresTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.SessionsStartedTotal, _ = meter.Int64Counter(
		"shiftclock.sessions.started.total",
		metric.WithDescription("Total number of work sessions started"),
		metric.WithUnit("{session}"),
	)

	m.SessionsStoppedTotal, _ = meter.Int64Counter(
		"shiftclock.sessions.stopped.total",
		metric.WithDescription("Total number of work sessions stopped"),
		metric.WithUnit("{session}"),
	)

	m.ClockSkewRejectionsTotal, _ = meter.Int64Counter(
		"shiftclock.sessions.clock_skew_rejections.total",
		metric.WithDescription("Total number of stops rejected because the end instant was before the start"),
		metric.WithUnit("{stop}"),
	)

	m.SessionDuration, _ = meter.Float64Histogram(
		"shiftclock.sessions.duration",
		metric.WithDescription("Duration of closed work sessions"),
		metric.WithUnit("ms"),
	)

	m.ReportsGeneratedTotal, _ = meter.Int64Counter(
		"shiftclock.reports.generated.total",
		metric.WithDescription("Total number of earnings reports generated"),
		metric.WithUnit("{report}"),
	)

	m.RegistrationsTotal, _ = meter.Int64Counter(
		"shiftclock.accounts.registrations.total",
		metric.WithDescription("Total number of workers registered"),
		metric.WithUnit("{worker}"),
	)

	m.LoginsTotal, _ = meter.Int64Counter(
		"shiftclock.accounts.logins.total",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)

	m.LoginFailuresTotal, _ = meter.Int64Counter(
		"shiftclock.accounts.login_failures.total",
		metric.WithDescription("Total number of failed logins"),
		metric.WithUnit("{login}"),
	)

	return m
}
