// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	metaLastSyncAt     = "last_sync_at"
	metaPullCursorPref = "pull_cursor:"
)

func pullCursorKey(table models.EntityTable) string {
	return metaPullCursorPref + table.String()
}

type syncOrchestrator struct {
	queue    SyncQueue
	pusher   Pusher
	puller   Puller
	resolver ConflictResolver

	records      store.LocalRecordRepository
	meta         store.SyncMetaRepository
	auth         AuthProvider
	connectivity ConnectivitySignal

	cfg config.ClientSync
	now func() time.Time

	mu          sync.Mutex
	state       models.SyncState
	inFlight    bool
	lastSyncAt  *time.Time
	pulledOwner int64
	unsubscribe func()

	logger *logger.Logger
}

// OrchestratorDeps bundles the collaborators of [NewSyncOrchestrator].
type OrchestratorDeps struct {
	Queue        SyncQueue
	Pusher       Pusher
	Puller       Puller
	Resolver     ConflictResolver
	Records      store.LocalRecordRepository
	Meta         store.SyncMetaRepository
	Auth         AuthProvider
	Connectivity ConnectivitySignal
}

// NewSyncOrchestrator returns the sync engine coordinator in idle state.
func NewSyncOrchestrator(deps OrchestratorDeps, cfg config.ClientSync, logger *logger.Logger) SyncOrchestrator {
	return &syncOrchestrator{
		queue:        deps.Queue,
		pusher:       deps.Pusher,
		puller:       deps.Puller,
		resolver:     deps.Resolver,
		records:      deps.Records,
		meta:         deps.Meta,
		auth:         deps.Auth,
		connectivity: deps.Connectivity,
		cfg:          cfg,
		now:          utcNow,
		state:        models.StateIdle,
		logger:       logger,
	}
}

func (o *syncOrchestrator) Init(ctx context.Context) error {
	if err := o.queue.Init(ctx); err != nil {
		return err
	}

	lastSyncAt, err := o.meta.GetTime(ctx, metaLastSyncAt)
	if err != nil {
		o.logger.Err(err).Str("func", "syncOrchestrator.Init").Msg("failed to restore last sync time")
		return fmt.Errorf("restore last sync time: %w", err)
	}

	o.mu.Lock()
	o.lastSyncAt = lastSyncAt
	if !o.connectivity.IsOnline() {
		o.state = models.StateOffline
	}
	o.mu.Unlock()

	return nil
}

func (o *syncOrchestrator) Start(ctx context.Context) {
	unsubscribe := o.connectivity.Subscribe(func(online bool) {
		o.HandleConnectivityChange(ctx, online)
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	o.unsubscribe = unsubscribe
}

func (o *syncOrchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

func (o *syncOrchestrator) ScheduleForSync(ctx context.Context, op models.OperationType, table models.EntityTable, localID string) error {
	return o.queue.Add(ctx, models.QueuedOperation{
		Operation: op,
		Table:     table,
		LocalID:   localID,
		Timestamp: o.now(),
	})
}

// SyncAll runs one cycle: queue replay, push, pull and conflict resolution.
// Guard failures abort before any remote call.
func (o *syncOrchestrator) SyncAll(ctx context.Context, opts models.SyncOptions) (models.SyncResult, error) {
	if !opts.Direction.Valid() {
		return models.SyncResult{}, fmt.Errorf("%w: %q", ErrUnknownDirection, opts.Direction)
	}
	if opts.Direction == "" {
		opts.Direction = models.DirectionBoth
	}
	strategy := o.cfg.DefaultStrategy
	if opts.Strategy != nil {
		strategy = *opts.Strategy
	}
	if !strategy.Valid() {
		return models.SyncResult{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}

	result := models.SyncResult{
		Direction: opts.Direction,
		Force:     opts.Force,
		StartedAt: o.now(),
	}

	ownerID, err := o.begin()
	if err != nil {
		result.Errors = []string{err.Error()}
		result.FinishedAt = o.now()
		return result, err
	}

	log := o.logger.With().
		Str("direction", string(opts.Direction)).
		Bool("force", opts.Force).
		Int64("owner_id", ownerID).
		Logger()
	log.Info().Msg("sync cycle started")

	if opts.Direction.Pushes() {
		o.pushPass(ctx, ownerID, opts.Force, &result)
	}

	var conflicts []models.Conflict
	if opts.Direction.Pulls() {
		conflicts = o.pullPass(ctx, ownerID, opts.Force, &result)
	}

	if len(conflicts) > 0 {
		o.resolver.Track(conflicts...)
		if o.cfg.AutoResolve {
			resolved, errs := o.resolver.ResolveConflicts(ctx, ownerID, strategy)
			result.Resolved = resolved
			result.Errors = append(result.Errors, errs...)
		}
	}

	result.FinishedAt = o.now()
	result.Success = len(result.Errors) == 0

	if err = o.meta.SetTime(ctx, metaLastSyncAt, result.FinishedAt); err != nil {
		log.Err(err).Str("func", "syncOrchestrator.SyncAll").Msg("failed to persist last sync time")
		result.Errors = append(result.Errors, fmt.Sprintf("persist last sync time: %v", err))
		result.Success = false
	}

	o.finish(result)

	log.Info().
		Bool("success", result.Success).
		Int("replayed", result.Replayed).
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int("conflicts", result.Conflicts).
		Int("resolved", result.Resolved).
		Int("errors", len(result.Errors)).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync cycle finished")

	return result, nil
}

func (o *syncOrchestrator) PushToCloud(ctx context.Context) (models.SyncResult, error) {
	return o.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionPush})
}

func (o *syncOrchestrator) PullFromCloud(ctx context.Context) (models.SyncResult, error) {
	return o.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionPull})
}

func (o *syncOrchestrator) ForceFullSync(ctx context.Context) (models.SyncResult, error) {
	return o.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionBoth, Force: true})
}

// FlushQueue replays the pending-operation queue outside of a full cycle.
func (o *syncOrchestrator) FlushQueue(ctx context.Context) (models.QueueResult, error) {
	ownerID, err := o.begin()
	if err != nil {
		return models.QueueResult{}, err
	}

	result, err := o.queue.ProcessQueue(ctx, o.replay(ownerID))

	online := o.connectivity.IsOnline()
	o.mu.Lock()
	o.settle(online, err == nil && len(result.Errors) == 0)
	o.mu.Unlock()

	return result, err
}

func (o *syncOrchestrator) GetSyncStatus() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *syncOrchestrator) GetLastSyncAt() *time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lastSyncAt == nil {
		return nil
	}
	t := *o.lastSyncAt
	return &t
}

func (o *syncOrchestrator) GetPendingConflicts(ctx context.Context) ([]models.Conflict, error) {
	return o.resolver.GetPendingConflicts(ctx)
}

func (o *syncOrchestrator) HasConflicts(ctx context.Context) (bool, error) {
	return o.resolver.HasConflicts(ctx)
}

func (o *syncOrchestrator) GetConflictCount(ctx context.Context) (int, error) {
	return o.resolver.GetConflictCount(ctx)
}

func (o *syncOrchestrator) KeepLocalVersion(ctx context.Context, ref models.RecordRef) error {
	if err := o.canReachRemote(); err != nil {
		return err
	}
	return o.resolver.KeepLocalVersion(ctx, o.auth.OwnerID(), ref)
}

func (o *syncOrchestrator) KeepServerVersion(ctx context.Context, ref models.RecordRef) error {
	if err := o.canReachRemote(); err != nil {
		return err
	}
	return o.resolver.KeepServerVersion(ctx, o.auth.OwnerID(), ref)
}

// MergeVersions stores the merge locally and schedules it, so it is
// uploaded even when the device is offline now.
func (o *syncOrchestrator) MergeVersions(ctx context.Context, ref models.RecordRef, merged models.Payload) error {
	if _, err := o.resolver.MergeVersions(ctx, ref, merged); err != nil {
		return err
	}
	return o.ScheduleForSync(ctx, models.OpUpdate, ref.Table, ref.LocalID)
}

func (o *syncOrchestrator) HandleConnectivityChange(ctx context.Context, online bool) {
	o.mu.Lock()
	switch {
	case !online:
		o.state = models.StateOffline
		o.mu.Unlock()
		o.logger.Info().Msg("remote store went offline")
		return
	case o.inFlight:
		o.state = models.StateSyncing
	case o.state == models.StateOffline:
		o.state = models.StateIdle
	}
	o.mu.Unlock()

	o.logger.Info().Msg("remote store is back online, starting recovery sync")

	if _, err := o.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionBoth}); err != nil && !isQuietSyncError(err) {
		o.logger.Err(err).Str("func", "syncOrchestrator.HandleConnectivityChange").Msg("recovery sync failed")
	}
}

// HandleAuthenticated runs a pull-only pass the first time an owner signs in
// during the life of the orchestrator.
func (o *syncOrchestrator) HandleAuthenticated(ctx context.Context) (models.SyncResult, error) {
	ownerID := o.auth.OwnerID()

	o.mu.Lock()
	done := o.pulledOwner != 0 && o.pulledOwner == ownerID
	o.mu.Unlock()
	if done {
		return models.SyncResult{Success: true, Direction: models.DirectionPull}, nil
	}

	result, err := o.SyncAll(ctx, models.SyncOptions{Direction: models.DirectionPull})
	if err != nil {
		return result, err
	}

	o.mu.Lock()
	o.pulledOwner = ownerID
	o.mu.Unlock()

	return result, nil
}

// begin checks the cycle guards and switches to syncing. The in-flight flag
// is owned by begin and settle only; connectivity changes never touch it.
func (o *syncOrchestrator) begin() (int64, error) {
	online := o.connectivity.IsOnline()
	authenticated := o.auth.HasValidSession()

	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case !online:
		o.state = models.StateOffline
		return 0, ErrOffline
	case !authenticated:
		return 0, ErrNotAuthenticated
	case o.inFlight:
		return 0, ErrSyncInProgress
	}

	o.inFlight = true
	o.state = models.StateSyncing
	return o.auth.OwnerID(), nil
}

func (o *syncOrchestrator) finish(result models.SyncResult) {
	online := o.connectivity.IsOnline()

	o.mu.Lock()
	defer o.mu.Unlock()

	finishedAt := result.FinishedAt
	o.lastSyncAt = &finishedAt
	o.settle(online, result.Success)
}

// settle ends the in-flight cycle. Must be called with mu held.
func (o *syncOrchestrator) settle(online, success bool) {
	o.inFlight = false
	switch {
	case !online:
		o.state = models.StateOffline
	case success:
		o.state = models.StateIdle
	default:
		o.state = models.StateError
	}
}

func (o *syncOrchestrator) canReachRemote() error {
	if !o.connectivity.IsOnline() {
		return ErrOffline
	}
	if !o.auth.HasValidSession() {
		return ErrNotAuthenticated
	}
	return nil
}

func (o *syncOrchestrator) pushPass(ctx context.Context, ownerID int64, force bool, result *models.SyncResult) {
	count, err := o.queue.Count()
	switch {
	case err != nil:
		result.Errors = append(result.Errors, fmt.Sprintf("sync queue: %v", err))
	case count > 0:
		replayed, err := o.queue.ProcessQueue(ctx, o.replay(ownerID))
		result.Replayed = replayed.Processed
		result.Errors = append(result.Errors, replayed.Errors...)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("sync queue: %v", err))
		}
	}

	for _, table := range models.EntityTables() {
		pushed := o.pusher.Push(ctx, ownerID, table, PushOptions{Force: force})
		result.Pushed += pushed.Pushed
		result.Errors = append(result.Errors, pushed.Errors...)
	}
}

func (o *syncOrchestrator) pullPass(ctx context.Context, ownerID int64, force bool, result *models.SyncResult) []models.Conflict {
	var conflicts []models.Conflict

	for _, table := range models.EntityTables() {
		var since *time.Time
		if !force {
			cursor, err := o.meta.GetTime(ctx, pullCursorKey(table))
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: read pull cursor: %v", table, err))
				continue
			}
			since = cursor
		}

		pulled := o.puller.Pull(ctx, ownerID, table, since)
		result.Pulled += pulled.Pulled
		result.Conflicts += len(pulled.Conflicts)
		result.Errors = append(result.Errors, pulled.Errors...)
		conflicts = append(conflicts, pulled.Conflicts...)

		// a failed record must be received again next time
		if pulled.Cursor == nil || len(pulled.Errors) > 0 {
			continue
		}
		if err := o.meta.SetTime(ctx, pullCursorKey(table), *pulled.Cursor); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: persist pull cursor: %v", table, err))
		}
	}

	return conflicts
}

// replay uploads the record behind a queued operation. Records the push pass
// or the resolver own are acknowledged without an upload.
func (o *syncOrchestrator) replay(ownerID int64) ReplayFunc {
	return func(ctx context.Context, op models.QueuedOperation) error {
		record, err := o.records.Get(ctx, op.Ref())
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			if op.Operation == models.OpDelete {
				return o.pusher.PushTombstone(ctx, op.Ref(), op.Timestamp)
			}
			return nil
		case err != nil:
			return err
		case record.SyncStatus != models.StatusPending:
			return nil
		}

		_, err = o.pusher.PushRecord(ctx, ownerID, op.Ref())
		return err
	}
}

// isQuietSyncError reports errors that only mean "not now".
func isQuietSyncError(err error) bool {
	return errors.Is(err, ErrOffline) || errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrSyncInProgress)
}
