package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var localRecordColumns = []string{
	"entity_table",
	"local_id",
	"remote_id",
	"owner_id",
	"payload",
	"created_at",
	"updated_at",
	"deleted_at",
	"sync_status",
	"synced_at",
}

type localRecordRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewLocalRecordRepository constructs the SQLite-backed [LocalRecordRepository].
func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

func (l *localRecordRepository) Insert(ctx context.Context, record models.SyncableRecord) error {
	query, args, err := l.builder.Insert("records").
		Columns(localRecordColumns...).
		Values(
			record.Table,
			record.LocalID,
			nullableInt64(record.RemoteID),
			record.OwnerID,
			record.Payload,
			record.CreatedAt.UTC(),
			record.UpdatedAt.UTC(),
			utcPtr(record.DeletedAt),
			record.SyncStatus,
			utcPtr(record.SyncedAt),
		).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		if isSQLiteConstraint(err) {
			return ErrRecordAlreadyExists
		}
		l.logger.Err(err).
			Str("func", "localRecordRepository.Insert").
			Str("ref", record.Ref().String()).
			Msg("failed to insert local record")
		return fmt.Errorf("%w: insert %s: %w", ErrExecutingStatement, record.Ref(), err)
	}

	return nil
}

func (l *localRecordRepository) Get(ctx context.Context, ref models.RecordRef) (models.SyncableRecord, error) {
	return l.getOne(ctx, "localRecordRepository.Get", sq.Eq{"entity_table": ref.Table, "local_id": ref.LocalID})
}

func (l *localRecordRepository) GetByRemoteID(ctx context.Context, table models.EntityTable, remoteID int64) (models.SyncableRecord, error) {
	return l.getOne(ctx, "localRecordRepository.GetByRemoteID", sq.Eq{"entity_table": table, "remote_id": remoteID})
}

func (l *localRecordRepository) Update(ctx context.Context, record models.SyncableRecord) error {
	query, args, err := l.builder.Update("records").
		SetMap(map[string]any{
			"remote_id":   nullableInt64(record.RemoteID),
			"owner_id":    record.OwnerID,
			"payload":     record.Payload,
			"created_at":  record.CreatedAt.UTC(),
			"updated_at":  record.UpdatedAt.UTC(),
			"deleted_at":  utcPtr(record.DeletedAt),
			"sync_status": record.SyncStatus,
			"synced_at":   utcPtr(record.SyncedAt),
		}).
		Where(sq.Eq{"entity_table": record.Table, "local_id": record.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return l.execOne(ctx, "localRecordRepository.Update", record.Ref(), query, args)
}

func (l *localRecordRepository) ListByStatus(ctx context.Context, table models.EntityTable, statuses ...models.SyncStatus) ([]models.SyncableRecord, error) {
	return l.list(ctx, "localRecordRepository.ListByStatus", sq.Eq{"entity_table": table, "sync_status": statuses})
}

func (l *localRecordRepository) ListAll(ctx context.Context, table models.EntityTable) ([]models.SyncableRecord, error) {
	return l.list(ctx, "localRecordRepository.ListAll", sq.Eq{"entity_table": table})
}

func (l *localRecordRepository) ListUpdatedSince(ctx context.Context, table models.EntityTable, since time.Time) ([]models.SyncableRecord, error) {
	return l.list(ctx, "localRecordRepository.ListUpdatedSince", sq.And{
		sq.Eq{"entity_table": table},
		sq.Gt{"updated_at": since.UTC()},
	})
}

func (l *localRecordRepository) MarkSynced(ctx context.Context, ref models.RecordRef, remoteID int64, syncedAt, expectedUpdatedAt time.Time) error {
	query, args, err := l.builder.Update("records").
		Set("sync_status", models.StatusSynced).
		Set("synced_at", syncedAt.UTC()).
		Set("remote_id", remoteID).
		Where(sq.Eq{
			"entity_table": ref.Table,
			"local_id":     ref.LocalID,
			"updated_at":   expectedUpdatedAt.UTC(),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = l.execOne(ctx, "localRecordRepository.MarkSynced", ref, query, args)
	if !errors.Is(err, ErrRecordNotFound) {
		return err
	}

	// either gone or edited since it was read; keep the id mapping anyway
	query, args, err = l.builder.Update("records").
		Set("remote_id", remoteID).
		Where(sq.Eq{"entity_table": ref.Table, "local_id": ref.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = l.execOne(ctx, "localRecordRepository.MarkSynced", ref, query, args); err != nil {
		return err
	}

	l.logger.Debug().
		Str("func", "localRecordRepository.MarkSynced").
		Str("ref", ref.String()).
		Msg("record changed during upload, left pending")
	return ErrStaleRecord
}

func (l *localRecordRepository) MarkConflict(ctx context.Context, ref models.RecordRef) error {
	query, args, err := l.builder.Update("records").
		Set("sync_status", models.StatusConflict).
		Where(sq.Eq{"entity_table": ref.Table, "local_id": ref.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return l.execOne(ctx, "localRecordRepository.MarkConflict", ref, query, args)
}

func (l *localRecordRepository) Purge(ctx context.Context, ref models.RecordRef) error {
	query, args, err := l.builder.Delete("records").
		Where(sq.Eq{"entity_table": ref.Table, "local_id": ref.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return l.execOne(ctx, "localRecordRepository.Purge", ref, query, args)
}

func (l *localRecordRepository) execOne(ctx context.Context, fn string, ref models.RecordRef, query string, args []any) error {
	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isSQLiteConstraint(err) {
			return ErrRecordAlreadyExists
		}
		l.logger.Err(err).Str("func", fn).Str("ref", ref.String()).Msg("failed to execute statement")
		return fmt.Errorf("%w: %s: %w", ErrExecutingStatement, ref, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		l.logger.Err(err).Str("func", fn).Str("ref", ref.String()).Msg("failed to get rows affected")
		return fmt.Errorf("%w: %s: %w", ErrExecutingStatement, ref, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (l *localRecordRepository) getOne(ctx context.Context, fn string, where sq.Sqlizer) (models.SyncableRecord, error) {
	query, args, err := l.builder.Select(localRecordColumns...).
		From("records").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanLocalRecord(l.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncableRecord{}, ErrRecordNotFound
	}
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to scan local record")
		return models.SyncableRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (l *localRecordRepository) list(ctx context.Context, fn string, where sq.Sqlizer) ([]models.SyncableRecord, error) {
	query, args, err := l.builder.Select(localRecordColumns...).
		From("records").
		Where(where).
		OrderBy("updated_at", "local_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to query local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.SyncableRecord, 0)
	for rows.Next() {
		record, scanErr := scanLocalRecord(rows)
		if scanErr != nil {
			l.logger.Err(scanErr).Str("func", fn).Msg("failed to scan local record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		l.logger.Err(rowsErr).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocalRecord(row rowScanner) (models.SyncableRecord, error) {
	var (
		record    models.SyncableRecord
		remoteID  sql.NullInt64
		deletedAt sql.NullTime
		syncedAt  sql.NullTime
	)

	err := row.Scan(
		&record.Table,
		&record.LocalID,
		&remoteID,
		&record.OwnerID,
		&record.Payload,
		&record.CreatedAt,
		&record.UpdatedAt,
		&deletedAt,
		&record.SyncStatus,
		&syncedAt,
	)
	if err != nil {
		return models.SyncableRecord{}, err
	}

	if remoteID.Valid {
		record.RemoteID = &remoteID.Int64
	}
	record.DeletedAt = timePtr(deletedAt)
	record.SyncedAt = timePtr(syncedAt)
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	return record, nil
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func utcPtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
