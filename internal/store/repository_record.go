package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type remoteRecordRepository struct {
	db      *DB
	builder sq.StatementBuilderType
}

// NewRemoteRecordRepository constructs the PostgreSQL-backed
// [RemoteRecordRepository].
func NewRemoteRecordRepository(db *DB, logger *logger.Logger) RemoteRecordRepository {
	logger.Debug().Msg("creating record repository")
	return &remoteRecordRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *remoteRecordRepository) Insert(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Insert("records").
		Columns("owner_id", "entity_table", "local_id", "payload", "created_at", "updated_at", "deleted_at").
		Values(record.OwnerID, record.Table, record.LocalID, record.Payload, record.CreatedAt, record.UpdatedAt, utcPtr(record.DeletedAt)).
		Suffix("RETURNING id, server_updated_at").
		ToSql()
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = withRetry(ctx, r.db, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.ServerUpdatedAt)
	})
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.RemoteRecord{}, ErrRecordAlreadyExists
		}
		log.Err(err).
			Str("func", "remoteRecordRepository.Insert").
			Int64("owner_id", record.OwnerID).
			Str("table", record.Table.String()).
			Str("local_id", record.LocalID).
			Msg("failed to insert record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

func (r *remoteRecordRepository) Update(ctx context.Context, record models.RemoteRecord) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update("records").
		Set("payload", record.Payload).
		Set("updated_at", record.UpdatedAt).
		Set("deleted_at", utcPtr(record.DeletedAt)).
		Set("server_updated_at", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"owner_id": record.OwnerID, "entity_table": record.Table, "local_id": record.LocalID}).
		Suffix("RETURNING id, created_at, server_updated_at").
		ToSql()
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = withRetry(ctx, r.db, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.ServerUpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.Update").
			Int64("owner_id", record.OwnerID).
			Str("table", record.Table.String()).
			Str("local_id", record.LocalID).
			Msg("failed to update record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

func (r *remoteRecordRepository) Get(ctx context.Context, ownerID int64, table models.EntityTable, localID string) (models.RemoteRecord, error) {
	query, args, err := r.builder.Select(remoteRecordColumns...).
		From("records").
		Where(sq.Eq{"owner_id": ownerID, "entity_table": table, "local_id": localID}).
		ToSql()
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "remoteRecordRepository.Get", query, args)
}

func (r *remoteRecordRepository) Delete(ctx context.Context, ownerID int64, table models.EntityTable, localID string, deletedAt time.Time) (models.RemoteRecord, error) {
	query, args, err := r.builder.Update("records").
		Set("deleted_at", sq.Expr("COALESCE(deleted_at, ?)", deletedAt)).
		Set("updated_at", sq.Expr("GREATEST(updated_at, ?)", deletedAt)).
		Set("server_updated_at", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"owner_id": ownerID, "entity_table": table, "local_id": localID}).
		Suffix("RETURNING " + strings.Join(remoteRecordColumns, ", ")).
		ToSql()
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "remoteRecordRepository.Delete", query, args)
}

// listSinceOverlap widens incremental reads. server_updated_at is taken when
// a statement runs, not when it commits, so a slow transaction can land
// behind a cursor a client already holds.
const listSinceOverlap = 5 * time.Second

func (r *remoteRecordRepository) ListSince(ctx context.Context, ownerID int64, table models.EntityTable, since *time.Time) ([]models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	builder := r.builder.Select(remoteRecordColumns...).
		From("records").
		Where(sq.Eq{"owner_id": ownerID, "entity_table": table}).
		OrderBy("server_updated_at", "id")
	if since != nil {
		builder = builder.Where(sq.Gt{"server_updated_at": since.Add(-listSinceOverlap)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var records []models.RemoteRecord
	err = withRetry(ctx, r.db, func(ctx context.Context) error {
		records = records[:0]

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			record, scanErr := scanRemoteRecord(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.ListSince").
			Int64("owner_id", ownerID).
			Str("table", table.String()).
			Msg("failed to list records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if records == nil {
		records = []models.RemoteRecord{}
	}
	return records, nil
}

func (r *remoteRecordRepository) queryOne(ctx context.Context, fn, query string, args []any) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	var record models.RemoteRecord
	err := withRetry(ctx, r.db, func(ctx context.Context) error {
		var scanErr error
		record, scanErr = scanRemoteRecord(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func scanRemoteRecord(row rowScanner) (models.RemoteRecord, error) {
	var (
		record    models.RemoteRecord
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.Table,
		&record.LocalID,
		&record.Payload,
		&record.CreatedAt,
		&record.UpdatedAt,
		&deletedAt,
		&record.ServerUpdatedAt,
	)
	if err != nil {
		return models.RemoteRecord{}, err
	}
	record.DeletedAt = timePtr(deletedAt)

	return record, nil
}
