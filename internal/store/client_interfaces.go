package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the client's embedded record store.
type LocalRecordRepository interface {
	// Insert stores a new record. Returns [ErrRecordAlreadyExists] when the
	// local id is taken.
	Insert(ctx context.Context, record models.SyncableRecord) error
	// Get returns the record or [ErrRecordNotFound].
	Get(ctx context.Context, ref models.RecordRef) (models.SyncableRecord, error)
	// GetByRemoteID returns the record mapped to remoteID or [ErrRecordNotFound].
	GetByRemoteID(ctx context.Context, table models.EntityTable, remoteID int64) (models.SyncableRecord, error)
	// Update overwrites every mutable column of an existing record.
	Update(ctx context.Context, record models.SyncableRecord) error
	// ListByStatus returns records of table in any of statuses, oldest
	// modification first.
	ListByStatus(ctx context.Context, table models.EntityTable, statuses ...models.SyncStatus) ([]models.SyncableRecord, error)
	// ListAll returns every record of table, tombstones included.
	ListAll(ctx context.Context, table models.EntityTable) ([]models.SyncableRecord, error)
	// ListUpdatedSince returns records of table modified after since.
	ListUpdatedSince(ctx context.Context, table models.EntityTable, since time.Time) ([]models.SyncableRecord, error)
	// MarkSynced records a successful upload. The update only applies when
	// the record's updated_at still equals expectedUpdatedAt, otherwise
	// [ErrStaleRecord] is returned and the record stays pending.
	MarkSynced(ctx context.Context, ref models.RecordRef, remoteID int64, syncedAt, expectedUpdatedAt time.Time) error
	// MarkConflict flags the record without touching its payload.
	MarkConflict(ctx context.Context, ref models.RecordRef) error
	// Purge physically removes the record.
	Purge(ctx context.Context, ref models.RecordRef) error
}

// QueuePersistence loads and stores the whole pending-operation queue.
type QueuePersistence interface {
	Load(ctx context.Context) ([]models.QueuedOperation, error)
	Save(ctx context.Context, ops []models.QueuedOperation) error
}

// SyncMetaRepository is a small key/value store for sync bookkeeping such as
// the last completed sync time and per-table pull cursors.
type SyncMetaRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// GetTime returns nil when the key was never set.
	GetTime(ctx context.Context, key string) (*time.Time, error)
	SetTime(ctx context.Context, key string, value time.Time) error
}

// SessionRepository keeps the single authenticated session of the device.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	// Get returns [ErrLocalSessionNotFound] when nobody is logged in.
	Get(ctx context.Context) (models.Session, error)
	Delete(ctx context.Context) error
}
