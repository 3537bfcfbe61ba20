package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type clientAuthService struct {
	sessions store.SessionRepository
	remote   adapter.RemoteStore
	now      func() time.Time

	mu      sync.RWMutex
	session *models.Session
	expires *time.Time

	logger *logger.Logger
}

// NewClientAuthService returns the session keeper of the sync client. It is
// also the [AuthProvider] the orchestrator consults before every cycle.
func NewClientAuthService(sessions store.SessionRepository, remote adapter.RemoteStore, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		remote:   remote,
		now:      time.Now,
		logger:   logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, login, password string) (models.Session, error) {
	if login == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	session, err := a.remote.Register(ctx, models.User{Login: login, Password: password})
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Register").Str("login", login).Msg("registration failed")
		return models.Session{}, fmt.Errorf("register on remote store: %w", err)
	}

	return session, a.keep(ctx, session)
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.Session, error) {
	if login == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	session, err := a.remote.Login(ctx, models.User{Login: login, Password: password})
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Str("login", login).Msg("login failed")
		return models.Session{}, fmt.Errorf("login on remote store: %w", err)
	}

	return session, a.keep(ctx, session)
}

// Restore reuses the saved session when its token is still valid. An expired
// session is dropped and nil is returned: the device simply stays signed out.
func (a *clientAuthService) Restore(ctx context.Context) error {
	session, err := a.sessions.Get(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load saved session: %w", err)
	}

	expires, err := tokenExpiry(session.Token)
	if err != nil || (expires != nil && !expires.After(a.now())) {
		a.logger.Info().Err(err).Str("login", session.Login).Msg("saved session is no longer valid")
		return a.Logout(ctx)
	}

	a.set(session, expires)
	a.logger.Debug().Str("login", session.Login).Int64("user_id", session.UserID).Msg("session restored")
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.session = nil
	a.expires = nil
	a.mu.Unlock()
	a.remote.SetToken("")

	if err := a.sessions.Delete(ctx); err != nil {
		return fmt.Errorf("delete saved session: %w", err)
	}
	return nil
}

func (a *clientAuthService) HasValidSession() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.session == nil || a.session.Token == "" {
		return false
	}
	return a.expires == nil || a.expires.After(a.now())
}

func (a *clientAuthService) OwnerID() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.session == nil {
		return 0
	}
	return a.session.UserID
}

func (a *clientAuthService) keep(ctx context.Context, session models.Session) error {
	expires, err := tokenExpiry(session.Token)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if err = a.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.set(session, expires)
	return nil
}

func (a *clientAuthService) set(session models.Session, expires *time.Time) {
	a.mu.Lock()
	a.session = &session
	a.expires = expires
	a.mu.Unlock()
	a.remote.SetToken(session.Token)
}

// tokenExpiry reads the "exp" claim without verifying the signature, which
// only the remote store can do.
func tokenExpiry(token string) (*time.Time, error) {
	parsed, err := utils.ParseUnverifiedToken(token)
	if err != nil {
		return nil, err
	}
	if parsed.ExpiresAt == nil {
		return nil, nil
	}
	expires := parsed.ExpiresAt.Time
	return &expires, nil
}
