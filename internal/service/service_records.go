package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type recordService struct {
	records store.RemoteRecordRepository
	logger  *logger.Logger
}

// NewRecordService returns the owner-scoped record API of the remote store.
func NewRecordService(records store.RemoteRecordRepository, logger *logger.Logger) RecordService {
	return &recordService{records: records, logger: logger}
}

func (s *recordService) Get(ctx context.Context, table models.EntityTable, localID string) (models.RemoteRecord, error) {
	ownerID, err := ownerFromContext(ctx, table, localID)
	if err != nil {
		return models.RemoteRecord{}, err
	}

	return s.records.Get(ctx, ownerID, table, localID)
}

func (s *recordService) Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	ownerID, err := ownerFromContext(ctx, record.Table, record.LocalID)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	record.OwnerID = ownerID
	if record.Payload == nil {
		record.Payload = models.Payload{}
	}
	if record.UpdatedAt.IsZero() {
		return models.RemoteRecord{}, fmt.Errorf("%w: updated_at is required", ErrInvalidDataProvided)
	}

	created, err := s.records.Insert(ctx, record)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordService.Insert").
			Str("table", record.Table.String()).Str("local_id", record.LocalID).Msg("insert failed")
		return models.RemoteRecord{}, err
	}
	return created, nil
}

func (s *recordService) Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	ownerID, err := ownerFromContext(ctx, record.Table, record.LocalID)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	record.OwnerID = ownerID
	if record.Payload == nil {
		record.Payload = models.Payload{}
	}
	if record.UpdatedAt.IsZero() {
		return models.RemoteRecord{}, fmt.Errorf("%w: updated_at is required", ErrInvalidDataProvided)
	}

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordService.Update").
			Str("table", record.Table.String()).Str("local_id", record.LocalID).Msg("update failed")
		return models.RemoteRecord{}, err
	}
	return updated, nil
}

func (s *recordService) Delete(ctx context.Context, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error) {
	ownerID, err := ownerFromContext(ctx, table, localID)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	if deletedAt.IsZero() {
		deletedAt = time.Now()
	}

	return s.records.Delete(ctx, ownerID, table, localID, deletedAt.UTC())
}

func (s *recordService) ListSince(ctx context.Context, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error) {
	ownerID, err := ownerFromContext(ctx, table)
	if err != nil {
		return nil, err
	}

	return s.records.ListSince(ctx, ownerID, table, since)
}

// ownerFromContext validates the record address and returns the
// authenticated owner. Without localID the whole table is addressed.
func ownerFromContext(ctx context.Context, table models.EntityTable, localID ...string) (int64, error) {
	if !table.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	for _, id := range localID {
		if id == "" {
			return 0, fmt.Errorf("%w: local id is required", ErrInvalidDataProvided)
		}
	}

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return 0, ErrTokenIsExpiredOrInvalid
	}
	return ownerID, nil
}
