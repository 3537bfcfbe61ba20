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

type pusher struct {
	records store.LocalRecordRepository
	remote  adapter.RemoteStore

	purgeTombstones bool
	now             func() time.Time

	logger *logger.Logger
}

// NewPusher returns a [Pusher]. With purgeTombstones set, a deleted record
// is physically removed from the local store once its tombstone has been
// uploaded.
func NewPusher(records store.LocalRecordRepository, remote adapter.RemoteStore, purgeTombstones bool, logger *logger.Logger) Pusher {
	return &pusher{
		records:         records,
		remote:          remote,
		purgeTombstones: purgeTombstones,
		now:             utcNow,
		logger:          logger,
	}
}

func (p *pusher) Push(ctx context.Context, ownerID int64, table models.EntityTable, opts PushOptions) models.PushResult {
	result := models.PushResult{Table: table}

	statuses := []models.SyncStatus{models.StatusPending}
	if opts.Force {
		statuses = append(statuses, models.StatusSynced)
	}

	records, err := p.records.ListByStatus(ctx, table, statuses...)
	if err != nil {
		p.logger.Err(err).Str("func", "pusher.Push").Str("table", table.String()).Msg("failed to list records to push")
		result.Errors = append(result.Errors, fmt.Sprintf("%s: list records: %v", table, err))
		return result
	}

	for _, record := range records {
		if record.OwnerID != 0 && record.OwnerID != ownerID {
			p.logger.Debug().Str("ref", record.Ref().String()).Int64("owner_id", record.OwnerID).Msg("skipping record of another owner")
			continue
		}

		_, err = p.push(ctx, ownerID, record)
		if errors.Is(err, errNeverUploaded) {
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", record.Ref(), err))
			continue
		}
		result.Pushed++
	}

	p.logger.Debug().
		Str("table", table.String()).
		Int("pushed", result.Pushed).
		Int("failed", len(result.Errors)).
		Msg("push pass finished")

	return result
}

func (p *pusher) PushRecord(ctx context.Context, ownerID int64, ref models.RecordRef) (models.RemoteRecord, error) {
	record, err := p.records.Get(ctx, ref)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("load %s: %w", ref, err)
	}

	saved, err := p.push(ctx, ownerID, record)
	if errors.Is(err, errNeverUploaded) {
		return models.RemoteRecord{}, nil
	}
	return saved, err
}

func (p *pusher) PushTombstone(ctx context.Context, ref models.RecordRef, deletedAt time.Time) error {
	_, err := p.remote.Delete(ctx, ref.Table, ref.LocalID, deletedAt)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}
	return err
}

// push uploads record and marks it synced. An edit made while the upload was
// in flight keeps the record pending for the next pass.
func (p *pusher) push(ctx context.Context, ownerID int64, record models.SyncableRecord) (models.RemoteRecord, error) {
	log := p.logger.With().Str("ref", record.Ref().String()).Logger()

	if record.OwnerID == 0 {
		record.OwnerID = ownerID
		if err := p.records.Update(ctx, record); err != nil {
			return models.RemoteRecord{}, fmt.Errorf("claim record: %w", err)
		}
	}

	upload := models.NewRemoteRecord(record, p.resolveReferences(ctx, record))

	saved, err := p.upsert(ctx, upload)
	if errors.Is(err, errNeverUploaded) {
		log.Debug().Msg("record deleted before its first upload, dropping it")
		if err = p.records.Purge(ctx, record.Ref()); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return models.RemoteRecord{}, fmt.Errorf("purge tombstone: %w", err)
		}
		return models.RemoteRecord{}, errNeverUploaded
	}
	if err != nil {
		log.Warn().Err(err).Str("func", "pusher.push").Msg("failed to upload record")
		return models.RemoteRecord{}, err
	}

	err = p.records.MarkSynced(ctx, record.Ref(), saved.ID, p.now(), record.UpdatedAt)
	switch {
	case errors.Is(err, store.ErrStaleRecord):
		log.Info().Msg("record changed during upload, it stays pending")
		return saved, nil
	case err != nil:
		return models.RemoteRecord{}, fmt.Errorf("mark synced: %w", err)
	}

	if record.IsDeleted() && p.purgeTombstones {
		if err = p.records.Purge(ctx, record.Ref()); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return models.RemoteRecord{}, fmt.Errorf("purge tombstone: %w", err)
		}
	}

	return saved, nil
}

// errNeverUploaded marks a tombstone whose record the remote store never had.
var errNeverUploaded = errors.New("deleted record was never uploaded")

// upsert looks the record up by its local id and updates or inserts it.
func (p *pusher) upsert(ctx context.Context, upload models.RemoteRecord) (models.RemoteRecord, error) {
	_, err := p.remote.FindByLocalID(ctx, upload.Table, upload.LocalID)
	switch {
	case err == nil:
		if upload.IsDeleted() {
			return p.remote.Delete(ctx, upload.Table, upload.LocalID, *upload.DeletedAt)
		}
		return p.remote.Update(ctx, upload)
	case errors.Is(err, adapter.ErrNotFound):
		if upload.IsDeleted() {
			return models.RemoteRecord{}, errNeverUploaded
		}
		created, insertErr := p.remote.Insert(ctx, upload)
		if errors.Is(insertErr, adapter.ErrConflict) {
			// created by another device between lookup and insert
			return p.remote.Update(ctx, upload)
		}
		return created, insertErr
	default:
		return models.RemoteRecord{}, fmt.Errorf("lookup remote copy: %w", err)
	}
}

// resolveReferences returns a copy of the payload in which every declared
// reference carries the remote id of its target. Targets that are missing or
// not pushed yet are sent as nil.
func (p *pusher) resolveReferences(ctx context.Context, record models.SyncableRecord) models.Payload {
	refs := models.References(record.Table)
	if len(refs) == 0 {
		return record.Payload
	}

	payload := record.Payload.Clone()
	if payload == nil {
		payload = models.Payload{}
	}

	for _, ref := range refs {
		localID, ok := payload[ref.Field].(string)
		if !ok || localID == "" {
			continue
		}

		payload[ref.RemoteField()] = nil

		target, err := p.records.Get(ctx, models.RecordRef{Table: ref.Target, LocalID: localID})
		if err != nil || target.RemoteID == nil {
			p.logger.Warn().Err(err).
				Str("func", "pusher.resolveReferences").
				Str("ref", record.Ref().String()).
				Str("field", ref.Field).
				Str("target", ref.Target.String()+"/"+localID).
				Msg("unresolved reference, sending null")
			continue
		}
		payload[ref.RemoteField()] = *target.RemoteID
	}

	return payload
}
