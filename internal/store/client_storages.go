package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// ClientStorages groups the client's local repositories.
type ClientStorages struct {
	Records  LocalRecordRepository
	Queue    QueuePersistence
	Meta     SyncMetaRepository
	Sessions SessionRepository

	db *DB
}

// NewClientStorages opens (and creates if needed) the SQLite file named by
// cfg.DB.DSN, applies the schema and wires the repositories. The queue lives
// in the sync_queue table unless cfg.QueueFile names a JSON file.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	var queue QueuePersistence = NewQueueRepository(db, logger)
	if cfg.QueueFile != "" {
		queue = NewFileQueuePersistence(cfg.QueueFile)
	}

	return &ClientStorages{
		Records:  NewLocalRecordRepository(db, logger),
		Queue:    queue,
		Meta:     NewSyncMetaRepository(db, logger),
		Sessions: NewSessionRepository(db, logger),
		db:       db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
