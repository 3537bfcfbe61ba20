package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type puller struct {
	records store.LocalRecordRepository
	remote  adapter.RemoteStore

	purgeTombstones bool
	now             func() time.Time

	logger *logger.Logger
}

// NewPuller returns a [Puller] writing into records.
func NewPuller(records store.LocalRecordRepository, remote adapter.RemoteStore, purgeTombstones bool, logger *logger.Logger) Puller {
	return &puller{
		records:         records,
		remote:          remote,
		purgeTombstones: purgeTombstones,
		now:             utcNow,
		logger:          logger,
	}
}

func (p *puller) Pull(ctx context.Context, ownerID int64, table models.EntityTable, since *time.Time) models.PullResult {
	result := models.PullResult{Table: table}

	remoteRecords, err := p.remote.QuerySince(ctx, table, since)
	if err != nil {
		p.logger.Err(err).Str("func", "puller.Pull").Str("table", table.String()).Msg("failed to query remote changes")
		result.Errors = append(result.Errors, fmt.Sprintf("%s: query remote: %v", table, err))
		return result
	}

	for _, remote := range remoteRecords {
		if result.Cursor == nil || remote.ServerUpdatedAt.After(*result.Cursor) {
			cursor := remote.ServerUpdatedAt
			result.Cursor = &cursor
		}

		pulled, conflict, err := p.apply(ctx, ownerID, remote)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", table, remote.LocalID, err))
			continue
		}
		if conflict != nil {
			result.Conflicts = append(result.Conflicts, *conflict)
		}
		if pulled {
			result.Pulled++
		}
	}

	p.logger.Debug().
		Str("table", table.String()).
		Int("received", len(remoteRecords)).
		Int("pulled", result.Pulled).
		Int("conflicts", len(result.Conflicts)).
		Int("failed", len(result.Errors)).
		Msg("pull pass finished")

	return result
}

// apply reconciles one remote record with the local store. It reports whether
// the local store changed and the conflict detected, if any.
func (p *puller) apply(ctx context.Context, ownerID int64, remote models.RemoteRecord) (bool, *models.Conflict, error) {
	local, err := p.findLocal(ctx, remote)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return p.insert(ctx, ownerID, remote)
	case err != nil:
		return false, nil, fmt.Errorf("load local copy: %w", err)
	}

	if local.SyncStatus != models.StatusSynced && local.UpdatedAt.After(remote.UpdatedAt) {
		if local.SyncStatus == models.StatusConflict {
			return false, nil, nil
		}
		if err = p.records.MarkConflict(ctx, local.Ref()); err != nil {
			return false, nil, fmt.Errorf("mark conflict: %w", err)
		}

		p.logger.Info().
			Str("ref", local.Ref().String()).
			Time("local_updated_at", local.UpdatedAt).
			Time("remote_updated_at", remote.UpdatedAt).
			Msg("conflict detected")

		return false, &models.Conflict{
			Ref:             local.Ref(),
			LocalPayload:    local.Payload,
			RemotePayload:   remote.Payload,
			LocalUpdatedAt:  local.UpdatedAt,
			RemoteUpdatedAt: remote.UpdatedAt,
			DetectedAt:      p.now(),
		}, nil
	}

	if unchanged(local, remote) {
		return false, nil, nil
	}

	if remote.IsDeleted() && p.purgeTombstones {
		if err = p.records.Purge(ctx, local.Ref()); err != nil {
			return false, nil, fmt.Errorf("purge tombstone: %w", err)
		}
		return true, nil, nil
	}

	if err = p.records.Update(ctx, overwriteWithRemote(local, remote, p.now())); err != nil {
		return false, nil, fmt.Errorf("overwrite local copy: %w", err)
	}
	return true, nil, nil
}

func (p *puller) insert(ctx context.Context, ownerID int64, remote models.RemoteRecord) (bool, *models.Conflict, error) {
	if remote.IsDeleted() && p.purgeTombstones {
		return false, nil, nil
	}

	record := models.SyncableRecord{
		Table:     remote.Table,
		LocalID:   remote.LocalID,
		OwnerID:   ownerID,
		CreatedAt: remote.CreatedAt,
	}
	if record.LocalID == "" {
		// created by a client that never assigned local ids
		record.LocalID = fmt.Sprintf("remote-%d", remote.ID)
	}

	if err := p.records.Insert(ctx, overwriteWithRemote(record, remote, p.now())); err != nil {
		return false, nil, fmt.Errorf("insert local copy: %w", err)
	}
	return true, nil, nil
}

func (p *puller) findLocal(ctx context.Context, remote models.RemoteRecord) (models.SyncableRecord, error) {
	if remote.LocalID != "" {
		local, err := p.records.Get(ctx, models.RecordRef{Table: remote.Table, LocalID: remote.LocalID})
		if !errors.Is(err, store.ErrRecordNotFound) {
			return local, err
		}
	}
	return p.records.GetByRemoteID(ctx, remote.Table, remote.ID)
}

// overwriteWithRemote copies the remote state onto local and marks it synced.
func overwriteWithRemote(local models.SyncableRecord, remote models.RemoteRecord, now time.Time) models.SyncableRecord {
	remoteID := remote.ID
	local.RemoteID = &remoteID
	local.Payload = remote.Payload.Clone()
	if local.Payload == nil {
		local.Payload = models.Payload{}
	}
	if !remote.CreatedAt.IsZero() {
		local.CreatedAt = remote.CreatedAt
	}
	local.UpdatedAt = remote.UpdatedAt
	local.DeletedAt = remote.DeletedAt
	local.SyncStatus = models.StatusSynced
	local.SyncedAt = &now
	return local
}

func unchanged(local models.SyncableRecord, remote models.RemoteRecord) bool {
	return local.SyncStatus == models.StatusSynced &&
		local.RemoteID != nil && *local.RemoteID == remote.ID &&
		local.UpdatedAt.Equal(remote.UpdatedAt) &&
		local.IsDeleted() == remote.IsDeleted()
}
