package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/workers"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var _ Client = (*App)(nil)

type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	monitor  *connectivity.Monitor
	services *service.ClientServices
	logger   *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	logger.Info().Msg("creating sync client...")

	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create remote store adapter: %w", err)
	}

	monitor := connectivity.NewMonitor(remote, cfg.Sync.ConnectivityInterval, logger)

	return &App{
		cfg:      cfg,
		storages: storages,
		monitor:  monitor,
		services: service.NewClientServices(storages, remote, monitor, cfg.Sync, logger),
		logger:   logger,
	}, nil
}

// Run blocks until the one-shot sync finishes or, in daemon mode, until the
// process receives SIGINT, SIGTERM or SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Err(err).Str("func", "App.run").Msg("failed to close local storages")
		}
	}()

	orchestrator := a.services.Orchestrator
	if err := orchestrator.Init(ctx); err != nil {
		return fmt.Errorf("init sync engine: %w", err)
	}

	// first probe before anything decides whether we are offline
	a.monitor.Check(ctx)

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	orchestrator.Start(ctx)
	defer orchestrator.Stop()

	if a.cfg.Run.Once {
		return a.syncOnce(ctx)
	}

	a.pullAfterSignIn(ctx)

	a.logger.Info().Dur("interval", a.cfg.Sync.Interval).Msg("sync daemon started")
	workers.New(
		a.monitor,
		workers.Func(func(ctx context.Context) {
			a.services.SyncJob.Start(ctx, a.cfg.Sync.Interval)
			<-ctx.Done()
			a.services.SyncJob.Stop()
		}),
	).Run(ctx)
	a.logger.Info().Msg("sync daemon stopped")

	return nil
}

// authenticate signs in with the configured credentials, or falls back to
// the saved session. Without either the client keeps working locally.
func (a *App) authenticate(ctx context.Context) error {
	run := a.cfg.Run
	auth := a.services.AuthService

	switch {
	case run.Register:
		if _, err := auth.Register(ctx, run.Login, run.Password); err != nil {
			return fmt.Errorf("register %q: %w", run.Login, err)
		}
	case run.Login != "":
		if _, err := auth.Login(ctx, run.Login, run.Password); err != nil {
			return fmt.Errorf("login %q: %w", run.Login, err)
		}
	default:
		if err := auth.Restore(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
	}

	if !auth.HasValidSession() {
		a.logger.Warn().Msg("no valid session, sync is paused until the next sign-in")
	}
	return nil
}

func (a *App) syncOnce(ctx context.Context) error {
	result, err := a.services.Orchestrator.SyncAll(ctx, models.SyncOptions{
		Direction: a.cfg.Run.Direction,
		Force:     a.cfg.Run.Force,
	})
	a.logResult(result, err)
	return err
}

func (a *App) pullAfterSignIn(ctx context.Context) {
	if !a.services.AuthService.HasValidSession() {
		return
	}

	result, err := a.services.Orchestrator.HandleAuthenticated(ctx)
	if errors.Is(err, service.ErrOffline) {
		a.logger.Info().Msg("offline after sign-in, initial pull deferred")
		return
	}
	a.logResult(result, err)
}

func (a *App) logResult(result models.SyncResult, err error) {
	if err != nil {
		a.logger.Err(err).Str("func", "App.sync").Msg("sync failed")
		return
	}

	event := a.logger.Info()
	if !result.Success {
		event = a.logger.Warn().Strs("errors", result.Errors)
	}
	event.
		Str("direction", string(result.Direction)).
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int("conflicts", result.Conflicts).
		Int("resolved", result.Resolved).
		Int("replayed", result.Replayed).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync finished")
}
