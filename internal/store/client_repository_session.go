package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	saveSession = `
		INSERT INTO sessions (id, user_id, login, token, created_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id    = excluded.user_id,
			login      = excluded.login,
			token      = excluded.token,
			created_at = excluded.created_at;`

	getSession = `SELECT user_id, login, token, created_at FROM sessions WHERE id = 1;`

	deleteSession = `DELETE FROM sessions;`
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs the SQLite-backed [SessionRepository].
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{DB: db, logger: logger}
}

func (s *sessionRepository) Save(ctx context.Context, session models.Session) error {
	_, err := s.DB.ExecContext(ctx, saveSession, session.UserID, session.Login, session.Token, session.CreatedAt.UTC())
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Save").Int64("user_id", session.UserID).Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) Get(ctx context.Context) (models.Session, error) {
	var session models.Session
	err := s.DB.QueryRowContext(ctx, getSession).Scan(&session.UserID, &session.Login, &session.Token, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Get").Msg("failed to read session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (s *sessionRepository) Delete(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, deleteSession); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Delete").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
