package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

const (
	getSyncMeta = `SELECT value FROM sync_meta WHERE key = ?;`

	setSyncMeta = `
		INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)

type syncMetaRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncMetaRepository constructs the SQLite-backed [SyncMetaRepository].
func NewSyncMetaRepository(db *DB, logger *logger.Logger) SyncMetaRepository {
	return &syncMetaRepository{DB: db, logger: logger}
}

func (s *syncMetaRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, getSyncMeta, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMetaKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "syncMetaRepository.Get").Str("key", key).Msg("failed to read sync metadata")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *syncMetaRepository) Set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, setSyncMeta, key, value); err != nil {
		s.logger.Err(err).Str("func", "syncMetaRepository.Set").Str("key", key).Msg("failed to write sync metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *syncMetaRepository) GetTime(ctx context.Context, key string) (*time.Time, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrMetaKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return &t, nil
}

func (s *syncMetaRepository) SetTime(ctx context.Context, key string, value time.Time) error {
	return s.Set(ctx, key, value.UTC().Format(time.RFC3339Nano))
}
