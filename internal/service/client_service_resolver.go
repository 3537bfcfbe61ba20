package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type conflictResolver struct {
	records store.LocalRecordRepository
	remote  adapter.RemoteStore
	pusher  Pusher
	now     func() time.Time

	mu      sync.Mutex
	tracked map[models.RecordRef]models.Conflict

	logger *logger.Logger
}

// NewConflictResolver returns a [ConflictResolver]. Local-wins resolution
// uploads through pusher.
func NewConflictResolver(records store.LocalRecordRepository, remote adapter.RemoteStore, pusher Pusher, logger *logger.Logger) ConflictResolver {
	return &conflictResolver{
		records: records,
		remote:  remote,
		pusher:  pusher,
		now:     utcNow,
		tracked: make(map[models.RecordRef]models.Conflict),
		logger:  logger,
	}
}

func (r *conflictResolver) ResolveConflict(ctx context.Context, ownerID int64, ref models.RecordRef, strategy models.ResolutionStrategy) error {
	local, err := r.records.Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("load %s: %w", ref, err)
	}
	if local.SyncStatus != models.StatusConflict {
		return fmt.Errorf("%w: %s is %s", ErrNoConflict, ref, local.SyncStatus)
	}

	switch strategy {
	case models.StrategyLocalWins:
		err = r.keepLocal(ctx, ownerID, local)
	case models.StrategyServerWins:
		err = r.keepServer(ctx, local)
	case models.StrategyManual:
		err = r.holdForManual(ctx, local)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "conflictResolver.ResolveConflict").
			Str("ref", ref.String()).
			Str("strategy", strategy.String()).
			Msg("failed to resolve conflict")
		return err
	}

	r.logger.Info().Str("ref", ref.String()).Str("strategy", strategy.String()).Msg("conflict handled")
	return nil
}

func (r *conflictResolver) ResolveConflicts(ctx context.Context, ownerID int64, strategy models.ResolutionStrategy) (int, []string) {
	var (
		resolved int
		errs     []string
	)

	for _, table := range models.EntityTables() {
		conflicts, err := r.records.ListByStatus(ctx, table, models.StatusConflict)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: list conflicts: %v", table, err))
			continue
		}

		for _, record := range conflicts {
			if err = r.ResolveConflict(ctx, ownerID, record.Ref(), strategy); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", record.Ref(), err))
				continue
			}
			// manual resolution only parks the conflict
			if strategy != models.StrategyManual {
				resolved++
			}
		}
	}

	return resolved, errs
}

func (r *conflictResolver) KeepLocalVersion(ctx context.Context, ownerID int64, ref models.RecordRef) error {
	return r.ResolveConflict(ctx, ownerID, ref, models.StrategyLocalWins)
}

func (r *conflictResolver) KeepServerVersion(ctx context.Context, ownerID int64, ref models.RecordRef) error {
	return r.ResolveConflict(ctx, ownerID, ref, models.StrategyServerWins)
}

// MergeVersions overlays merged onto the local payload and leaves the record
// pending for the next push.
func (r *conflictResolver) MergeVersions(ctx context.Context, ref models.RecordRef, merged models.Payload) (models.SyncableRecord, error) {
	local, err := r.records.Get(ctx, ref)
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("load %s: %w", ref, err)
	}

	payload := local.Payload.Clone()
	if payload == nil {
		payload = models.Payload{}
	}
	if err = mergo.Merge(&payload, merged, mergo.WithOverride); err != nil {
		return models.SyncableRecord{}, fmt.Errorf("merge payload of %s: %w", ref, err)
	}

	local.Payload = payload
	local.UpdatedAt = r.now()
	local.SyncStatus = models.StatusPending

	if err = r.records.Update(ctx, local); err != nil {
		r.logger.Err(err).Str("func", "conflictResolver.MergeVersions").Str("ref", ref.String()).Msg("failed to store merged record")
		return models.SyncableRecord{}, fmt.Errorf("store merged %s: %w", ref, err)
	}

	r.forget(ref)
	return local, nil
}

func (r *conflictResolver) Track(conflicts ...models.Conflict) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range conflicts {
		r.tracked[c.Ref] = c
	}
}

// GetPendingConflicts lists every record in conflict status. Remote payloads
// are filled in from conflicts detected by a pull or parked for manual
// resolution.
func (r *conflictResolver) GetPendingConflicts(ctx context.Context) ([]models.Conflict, error) {
	var (
		pending []models.Conflict
		seen    = make(map[models.RecordRef]struct{})
	)

	for _, table := range models.EntityTables() {
		records, err := r.records.ListByStatus(ctx, table, models.StatusConflict)
		if err != nil {
			r.logger.Err(err).Str("func", "conflictResolver.GetPendingConflicts").Str("table", table.String()).Msg("failed to list conflicts")
			return nil, fmt.Errorf("list conflicts of %s: %w", table, err)
		}

		for _, record := range records {
			seen[record.Ref()] = struct{}{}

			c := models.Conflict{
				Ref:            record.Ref(),
				LocalPayload:   record.Payload,
				LocalUpdatedAt: record.UpdatedAt,
				DetectedAt:     r.now(),
			}
			if known, ok := r.lookup(record.Ref()); ok {
				c.RemotePayload = known.RemotePayload
				c.RemoteUpdatedAt = known.RemoteUpdatedAt
				c.DetectedAt = known.DetectedAt
			}
			pending = append(pending, c)
		}
	}

	r.prune(seen)
	return pending, nil
}

func (r *conflictResolver) HasConflicts(ctx context.Context) (bool, error) {
	count, err := r.GetConflictCount(ctx)
	return count > 0, err
}

func (r *conflictResolver) GetConflictCount(ctx context.Context) (int, error) {
	var count int
	for _, table := range models.EntityTables() {
		records, err := r.records.ListByStatus(ctx, table, models.StatusConflict)
		if err != nil {
			return 0, fmt.Errorf("list conflicts of %s: %w", table, err)
		}
		count += len(records)
	}
	return count, nil
}

func (r *conflictResolver) keepLocal(ctx context.Context, ownerID int64, local models.SyncableRecord) error {
	// the pusher only marks pending records synced
	local.SyncStatus = models.StatusPending
	if err := r.records.Update(ctx, local); err != nil {
		return fmt.Errorf("reset %s to pending: %w", local.Ref(), err)
	}

	if _, err := r.pusher.PushRecord(ctx, ownerID, local.Ref()); err != nil {
		// keep the divergence visible until the upload succeeds
		if markErr := r.records.MarkConflict(ctx, local.Ref()); markErr != nil {
			return errors.Join(err, markErr)
		}
		return fmt.Errorf("upload local version: %w", err)
	}

	r.forget(local.Ref())
	return nil
}

func (r *conflictResolver) keepServer(ctx context.Context, local models.SyncableRecord) error {
	remote, err := r.fetchRemote(ctx, local.Ref())
	if err != nil {
		return err
	}

	if err = r.records.Update(ctx, overwriteWithRemote(local, remote, r.now())); err != nil {
		return fmt.Errorf("overwrite %s with remote version: %w", local.Ref(), err)
	}

	r.forget(local.Ref())
	return nil
}

func (r *conflictResolver) holdForManual(ctx context.Context, local models.SyncableRecord) error {
	remote, err := r.fetchRemote(ctx, local.Ref())
	if err != nil {
		return err
	}

	detectedAt := r.now()
	if known, ok := r.lookup(local.Ref()); ok {
		detectedAt = known.DetectedAt
	}

	r.Track(models.Conflict{
		Ref:             local.Ref(),
		LocalPayload:    local.Payload,
		RemotePayload:   remote.Payload,
		LocalUpdatedAt:  local.UpdatedAt,
		RemoteUpdatedAt: remote.UpdatedAt,
		DetectedAt:      detectedAt,
	})
	return nil
}

func (r *conflictResolver) fetchRemote(ctx context.Context, ref models.RecordRef) (models.RemoteRecord, error) {
	remote, err := r.remote.FindByLocalID(ctx, ref.Table, ref.LocalID)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return models.RemoteRecord{}, fmt.Errorf("%w: %s", ErrRemoteRecordNotFound, ref)
	case err != nil:
		return models.RemoteRecord{}, fmt.Errorf("fetch remote %s: %w", ref, err)
	}
	return remote, nil
}

func (r *conflictResolver) lookup(ref models.RecordRef) (models.Conflict, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.tracked[ref]
	return c, ok
}

func (r *conflictResolver) forget(ref models.RecordRef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tracked, ref)
}

// prune drops tracked conflicts whose records left conflict status.
func (r *conflictResolver) prune(current map[models.RecordRef]struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ref := range r.tracked {
		if _, ok := current[ref]; !ok {
			delete(r.tracked, ref)
		}
	}
}
