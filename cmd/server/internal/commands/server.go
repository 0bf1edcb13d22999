package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/account"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/logger"
	"github.com/shiftclock/shiftclock/internal/seed"
	"github.com/shiftclock/shiftclock/internal/server"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/shiftclock/shiftclock/internal/store/memory"
	"github.com/shiftclock/shiftclock/internal/store/postgres"
	"github.com/shiftclock/shiftclock/internal/telemetry"
	"github.com/shiftclock/shiftclock/internal/timeclock"
)

type ServerCmd struct {
	Listen      string `help:"Listen address." default:"localhost:8080" env:"LISTEN_ADDR"`
	DatabaseURL string `help:"PostgreSQL connection string. Uses in-memory storage when empty." env:"DATABASE_URL"`
	TokenSecret string `help:"JWT signing secret, at least 32 bytes." env:"TOKEN_SECRET" required:""`
	AutoMigrate bool   `help:"Run database migrations on startup." default:"true" env:"AUTO_MIGRATE"`
	SeedFile    string `help:"YAML seed file with the initial organization and manager." env:"SEED_FILE"`
	Telemetry   bool   `help:"Enable OpenTelemetry OTLP export." env:"TELEMETRY_ENABLED"`
}

func (s *ServerCmd) Run(ctx context.Context, globals *Globals) error {
	appLogger := logger.Setup(globals.Debug)
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if s.Telemetry {
		shutdown, err := telemetry.InitTelemetry(ctx, "shiftclock", globals.Version)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Telemetry shutdown failed")
			}
		}()
	}

	tokens, err := auth.NewTokenManager([]byte(s.TokenSecret))
	if err != nil {
		return err
	}

	orgs, workers, sessions, err := s.buildStores(ctx)
	if err != nil {
		return err
	}

	if s.SeedFile != "" {
		seedFile, err := seed.Load(s.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, seedFile, orgs, workers); err != nil {
			return err
		}
	}

	clock := timeclock.NewService(workers, sessions)
	accounts := account.NewService(workers, orgs, tokens)

	srv := server.NewServer(accounts, clock, tokens, workers)
	httpServer := configureHTTPServer(s.Listen, srv.Handler(appLogger))

	log.Info().
		Str("version", globals.Version).
		Str("listen", s.Listen).
		Msg("Starting server")

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// buildStores creates either the postgres-backed stores or, when no database
// is configured, the in-memory ones for local development.
func (s *ServerCmd) buildStores(ctx context.Context) (store.OrganizationStore, store.WorkerStore, store.SessionStore, error) {
	if s.DatabaseURL == "" {
		log.Warn().Msg("No database configured, using in-memory storage")
		workers := memory.NewWorkerStore()
		sessions := memory.NewSessionStore()
		sessions.Workers = workers
		return memory.NewOrganizationStore(), workers, sessions, nil
	}

	pool, err := postgres.NewPool(ctx, &postgres.PoolConfig{
		ConnString:  s.DatabaseURL,
		AutoMigrate: s.AutoMigrate,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return postgres.NewOrganizationStore(pool), postgres.NewWorkerStore(pool), postgres.NewSessionStore(pool), nil
}
