// Package client is a thin JSON client for the shiftclock HTTP API. Transient
// failures (network errors, 5xx responses) are retried with exponential
// backoff; anything the server rejected outright is returned as an *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

// Error is a non-2xx response from the server.
type Error struct {
	StatusCode int
	Kind       string `json:"kind"`
	Message    string `json:"error"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

type Worker struct {
	WorkerID   string  `json:"workerId"`
	OrgID      string  `json:"orgId"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	HourlyRate float64 `json:"hourlyRate"`
}

type Session struct {
	SessionID  string     `json:"sessionId"`
	WorkerID   string     `json:"workerId"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	DurationMs int64      `json:"durationMs"`
	Open       bool       `json:"open"`
}

type OrgSession struct {
	Session
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Organization struct {
	OrgID string `json:"orgId"`
	Name  string `json:"name"`
}

type AuthResult struct {
	Token  string `json:"token"`
	Worker Worker `json:"worker"`
}

type ReportRow struct {
	SessionID  string  `json:"sessionId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Hours      int64   `json:"hours"`
	Minutes    int64   `json:"minutes"`
	DurationMs int64   `json:"durationMs"`
	Earnings   float64 `json:"earnings"`
}

type Report struct {
	WorkerID        string      `json:"workerId"`
	Username        string      `json:"username"`
	HourlyRate      float64     `json:"hourlyRate"`
	PeriodStart     time.Time   `json:"periodStart"`
	PeriodEnd       time.Time   `json:"periodEnd"`
	Rows            []ReportRow `json:"rows"`
	TotalDurationMs int64       `json:"totalDurationMs"`
	TotalHours      float64     `json:"totalHours"`
	TotalEarnings   float64     `json:"totalEarnings"`
}

type RegisterParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Type     string `json:"type"`
	OrgName  string `json:"orgName,omitempty"`
	OrgID    string `json:"orgId,omitempty"`
}

// Config holds client configuration.
type Config struct {
	ServerURL string
	Token     string
	Timeout   time.Duration
	MaxTries  uint
}

// Client talks to one shiftclock server, optionally authenticated.
type Client struct {
	baseURL  string
	token    string
	maxTries uint
	http     *http.Client
}

// NewClient validates the server URL and builds a client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.ServerURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", cfg.ServerURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	maxTries := cfg.MaxTries
	if maxTries == 0 {
		maxTries = 4
	}

	return &Client{
		baseURL:  strings.TrimRight(base.String(), "/"),
		token:    cfg.Token,
		maxTries: maxTries,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	return doJSON[AuthResult](ctx, c, http.MethodPost, "/api/auth/register", params)
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	return doJSON[AuthResult](ctx, c, http.MethodPost, "/api/auth/login", body)
}

func (c *Client) Me(ctx context.Context) (*Worker, error) {
	return doJSON[Worker](ctx, c, http.MethodGet, "/api/auth/me", nil)
}

func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	out, err := doJSON[[]Organization](ctx, c, http.MethodGet, "/api/organizations", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) StartWork(ctx context.Context) (*Session, error) {
	return doJSON[Session](ctx, c, http.MethodPost, "/api/work/start", nil)
}

func (c *Client) StopWork(ctx context.Context) (*Session, error) {
	return doJSON[Session](ctx, c, http.MethodPost, "/api/work/stop", nil)
}

// ActiveSession returns nil when the caller has no open session.
func (c *Client) ActiveSession(ctx context.Context) (*Session, error) {
	out, err := doJSON[*Session](ctx, c, http.MethodGet, "/api/work/active", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	out, err := doJSON[[]Session](ctx, c, http.MethodGet, "/api/work", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) Workers(ctx context.Context) ([]Worker, error) {
	out, err := doJSON[[]Worker](ctx, c, http.MethodGet, "/api/manager/workers", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) OrgSessions(ctx context.Context) ([]OrgSession, error) {
	out, err := doJSON[[]OrgSession](ctx, c, http.MethodGet, "/api/manager/sessions", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) UpdateRole(ctx context.Context, workerID, role string) (*Worker, error) {
	path := fmt.Sprintf("/api/manager/workers/%s/role", url.PathEscape(workerID))
	return doJSON[Worker](ctx, c, http.MethodPut, path, map[string]string{"role": role})
}

func (c *Client) UpdateStatus(ctx context.Context, workerID, status string) (*Worker, error) {
	path := fmt.Sprintf("/api/manager/workers/%s/status", url.PathEscape(workerID))
	return doJSON[Worker](ctx, c, http.MethodPut, path, map[string]string{"status": status})
}

func (c *Client) UpdateRate(ctx context.Context, workerID string, rate float64) (*Worker, error) {
	path := fmt.Sprintf("/api/manager/workers/%s/rate", url.PathEscape(workerID))
	return doJSON[Worker](ctx, c, http.MethodPut, path, map[string]float64{"hourlyRate": rate})
}

func (c *Client) WorkerReport(ctx context.Context, workerID, from, to string) (*Report, error) {
	path := fmt.Sprintf("/api/manager/workers/%s/report?from=%s&to=%s",
		url.PathEscape(workerID), url.QueryEscape(from), url.QueryEscape(to))
	return doJSON[Report](ctx, c, http.MethodGet, path, nil)
}

// doJSON performs one API call with retries. The request body is marshaled
// once and replayed on each attempt.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	operation := func() (*T, error) {
		return attempt[T](ctx, c, method, path, payload)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries))
}

func attempt[T any](ctx context.Context, c *Client, method, path string, payload []byte) (*T, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("request failed, will retry")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		// Server-side failures and throttling are worth another try.
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, apiErr
		}
		return nil, backoff.Permanent(error(apiErr))
	}

	out := new(T)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}

	return out, nil
}
