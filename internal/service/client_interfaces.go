package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// ReplayFunc uploads a single queued operation. A nil error acknowledges
// the entry and removes it from the queue.
type ReplayFunc func(ctx context.Context, op models.QueuedOperation) error

// SyncQueue is the durable, deduplicated log of local mutations awaiting
// upload. At most one entry exists per (table, local id).
type SyncQueue interface {
	// Init loads persisted entries. Every other method fails with
	// [ErrQueueNotInitialized] until Init succeeds.
	Init(ctx context.Context) error

	// Add inserts or replaces the entry for the operation's record. A delete
	// arriving after a queued create removes the entry entirely.
	Add(ctx context.Context, op models.QueuedOperation) error
	Remove(ctx context.Context, table models.EntityTable, localID string) error
	GetAll() ([]models.QueuedOperation, error)
	GetByTable(table models.EntityTable) ([]models.QueuedOperation, error)
	Count() (int, error)
	Clear(ctx context.Context) error

	// ProcessQueue replays due entries in table dependency order. A failing
	// entry stays queued with a backoff and never blocks the others.
	ProcessQueue(ctx context.Context, replay ReplayFunc) (models.QueueResult, error)
}

// PushOptions tunes a push pass.
type PushOptions struct {
	// Force uploads every record that is not in conflict, not only pending
	// ones.
	Force bool
}

// Pusher uploads locally pending records to the remote store.
type Pusher interface {
	Push(ctx context.Context, ownerID int64, table models.EntityTable, opts PushOptions) models.PushResult

	// PushRecord uploads one record regardless of its status and marks it
	// synced.
	PushRecord(ctx context.Context, ownerID int64, ref models.RecordRef) (models.RemoteRecord, error)

	// PushTombstone records the deletion of a record that no longer exists
	// locally.
	PushTombstone(ctx context.Context, ref models.RecordRef, deletedAt time.Time) error
}

// Puller downloads remote changes and reconciles them with the local store.
type Puller interface {
	Pull(ctx context.Context, ownerID int64, table models.EntityTable, since *time.Time) models.PullResult
}

// ConflictResolver settles records left in conflict by the puller.
type ConflictResolver interface {
	ResolveConflict(ctx context.Context, ownerID int64, ref models.RecordRef, strategy models.ResolutionStrategy) error
	// ResolveConflicts applies strategy to every conflicted record and
	// returns how many were settled.
	ResolveConflicts(ctx context.Context, ownerID int64, strategy models.ResolutionStrategy) (int, []string)
	MergeVersions(ctx context.Context, ref models.RecordRef, merged models.Payload) (models.SyncableRecord, error)

	KeepLocalVersion(ctx context.Context, ownerID int64, ref models.RecordRef) error
	KeepServerVersion(ctx context.Context, ownerID int64, ref models.RecordRef) error

	// Track remembers the remote side of freshly detected conflicts.
	Track(conflicts ...models.Conflict)
	GetPendingConflicts(ctx context.Context) ([]models.Conflict, error)
	HasConflicts(ctx context.Context) (bool, error)
	GetConflictCount(ctx context.Context) (int, error)
}

// SyncOrchestrator is the public face of the sync engine.
type SyncOrchestrator interface {
	SyncScheduler

	// Init restores the queue and the persisted sync metadata.
	Init(ctx context.Context) error
	// Start subscribes to connectivity changes. Stop undoes it.
	Start(ctx context.Context)
	Stop()

	SyncAll(ctx context.Context, opts models.SyncOptions) (models.SyncResult, error)
	PushToCloud(ctx context.Context) (models.SyncResult, error)
	PullFromCloud(ctx context.Context) (models.SyncResult, error)
	ForceFullSync(ctx context.Context) (models.SyncResult, error)
	FlushQueue(ctx context.Context) (models.QueueResult, error)

	GetSyncStatus() models.SyncState
	GetLastSyncAt() *time.Time

	GetPendingConflicts(ctx context.Context) ([]models.Conflict, error)
	HasConflicts(ctx context.Context) (bool, error)
	GetConflictCount(ctx context.Context) (int, error)
	KeepLocalVersion(ctx context.Context, ref models.RecordRef) error
	KeepServerVersion(ctx context.Context, ref models.RecordRef) error
	MergeVersions(ctx context.Context, ref models.RecordRef, merged models.Payload) error

	HandleConnectivityChange(ctx context.Context, online bool)
	HandleAuthenticated(ctx context.Context) (models.SyncResult, error)
}

// ClientSyncJob runs sync cycles on a timer.
type ClientSyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// ClientAuthService manages the local session against the remote store.
type ClientAuthService interface {
	AuthProvider

	Register(ctx context.Context, login, password string) (models.Session, error)
	Login(ctx context.Context, login, password string) (models.Session, error)
	// Restore loads a previously saved session, if any.
	Restore(ctx context.Context) error
	Logout(ctx context.Context) error
}

// ClientRecordService is the local CRUD surface applications build on. Every
// mutation leaves the record pending and schedules it for sync.
type ClientRecordService interface {
	Create(ctx context.Context, table models.EntityTable, payload models.Payload) (models.SyncableRecord, error)
	Update(ctx context.Context, ref models.RecordRef, payload models.Payload) (models.SyncableRecord, error)
	Delete(ctx context.Context, ref models.RecordRef) error
	Get(ctx context.Context, ref models.RecordRef) (models.SyncableRecord, error)
	// List returns the live (non-deleted) records of table.
	List(ctx context.Context, table models.EntityTable) ([]models.SyncableRecord, error)
	ListChangedSince(ctx context.Context, table models.EntityTable, since time.Time) ([]models.SyncableRecord, error)
}
