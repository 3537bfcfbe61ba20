package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type clientRecordService struct {
	records   store.LocalRecordRepository
	scheduler SyncScheduler
	auth      AuthProvider
	ids       utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

// NewClientRecordService returns the local CRUD surface. Mutations are written
// to the local store first and only then scheduled for upload.
func NewClientRecordService(records store.LocalRecordRepository, scheduler SyncScheduler, auth AuthProvider, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		records:   records,
		scheduler: scheduler,
		auth:      auth,
		now:       utcNow,
		logger:    logger,
	}
}

func (c *clientRecordService) Create(ctx context.Context, table models.EntityTable, payload models.Payload) (models.SyncableRecord, error) {
	if !table.Valid() {
		return models.SyncableRecord{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	now := c.now()
	record := models.SyncableRecord{
		Table:      table,
		LocalID:    c.ids.Generate(),
		Payload:    payload.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: models.StatusPending,
	}
	if record.Payload == nil {
		record.Payload = models.Payload{}
	}
	if c.auth.HasValidSession() {
		record.OwnerID = c.auth.OwnerID()
	}

	if err := c.records.Insert(ctx, record); err != nil {
		c.logger.Err(err).Str("func", "clientRecordService.Create").Str("table", table.String()).Msg("failed to create record")
		return models.SyncableRecord{}, fmt.Errorf("create record: %w", err)
	}

	return record, c.schedule(ctx, models.OpCreate, record.Ref())
}

// Update replaces the payload. A record in conflict stays in conflict until
// the conflict is resolved.
func (c *clientRecordService) Update(ctx context.Context, ref models.RecordRef, payload models.Payload) (models.SyncableRecord, error) {
	record, err := c.Get(ctx, ref)
	if err != nil {
		return models.SyncableRecord{}, err
	}
	if record.IsDeleted() {
		return models.SyncableRecord{}, fmt.Errorf("update %s: %w", ref, store.ErrRecordNotFound)
	}

	record.Payload = payload.Clone()
	if record.Payload == nil {
		record.Payload = models.Payload{}
	}
	record.UpdatedAt = c.now()
	if record.SyncStatus != models.StatusConflict {
		record.SyncStatus = models.StatusPending
	}

	if err = c.records.Update(ctx, record); err != nil {
		c.logger.Err(err).Str("func", "clientRecordService.Update").Str("ref", ref.String()).Msg("failed to update record")
		return models.SyncableRecord{}, fmt.Errorf("update record: %w", err)
	}

	return record, c.schedule(ctx, models.OpUpdate, ref)
}

// Delete turns the record into a tombstone. Deleting a tombstone is a no-op.
func (c *clientRecordService) Delete(ctx context.Context, ref models.RecordRef) error {
	record, err := c.Get(ctx, ref)
	if err != nil {
		return err
	}
	if record.IsDeleted() {
		return nil
	}

	now := c.now()
	record.DeletedAt = &now
	record.UpdatedAt = now
	if record.SyncStatus != models.StatusConflict {
		record.SyncStatus = models.StatusPending
	}

	if err = c.records.Update(ctx, record); err != nil {
		c.logger.Err(err).Str("func", "clientRecordService.Delete").Str("ref", ref.String()).Msg("failed to delete record")
		return fmt.Errorf("delete record: %w", err)
	}

	return c.schedule(ctx, models.OpDelete, ref)
}

func (c *clientRecordService) Get(ctx context.Context, ref models.RecordRef) (models.SyncableRecord, error) {
	if !ref.Table.Valid() {
		return models.SyncableRecord{}, fmt.Errorf("%w: %q", ErrUnknownTable, ref.Table)
	}

	record, err := c.records.Get(ctx, ref)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			c.logger.Err(err).Str("func", "clientRecordService.Get").Str("ref", ref.String()).Msg("failed to load record")
		}
		return models.SyncableRecord{}, fmt.Errorf("load %s: %w", ref, err)
	}
	return record, nil
}

func (c *clientRecordService) List(ctx context.Context, table models.EntityTable) ([]models.SyncableRecord, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	all, err := c.records.ListAll(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	live := make([]models.SyncableRecord, 0, len(all))
	for _, record := range all {
		if !record.IsDeleted() {
			live = append(live, record)
		}
	}
	return live, nil
}

func (c *clientRecordService) ListChangedSince(ctx context.Context, table models.EntityTable, since time.Time) ([]models.SyncableRecord, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	records, err := c.records.ListUpdatedSince(ctx, table, since)
	if err != nil {
		return nil, fmt.Errorf("list %s changed since %s: %w", table, since.Format(time.RFC3339), err)
	}
	return records, nil
}

// schedule queues the mutation. The local write already succeeded, so a
// failure here only delays the upload to the next push pass.
func (c *clientRecordService) schedule(ctx context.Context, op models.OperationType, ref models.RecordRef) error {
	if err := c.scheduler.ScheduleForSync(ctx, op, ref.Table, ref.LocalID); err != nil {
		c.logger.Err(err).
			Str("func", "clientRecordService.schedule").
			Str("ref", ref.String()).
			Str("operation", string(op)).
			Msg("failed to schedule record for sync")
		return fmt.Errorf("schedule %s %s: %w", op, ref, err)
	}
	return nil
}
