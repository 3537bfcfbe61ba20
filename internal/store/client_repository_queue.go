package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// QueueRepository keeps the pending-operation queue in the sync_queue table.
type QueueRepository struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewQueueRepository constructs a SQLite-backed [QueuePersistence].
func NewQueueRepository(db *DB, logger *logger.Logger) *QueueRepository {
	return &QueueRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

// Load returns every queued operation in the order it was queued.
func (q *QueueRepository) Load(ctx context.Context) ([]models.QueuedOperation, error) {
	query, args, err := q.builder.
		Select("operation", "entity_table", "local_id", "queued_at", "attempts", "next_attempt_at", "last_error").
		From("sync_queue").
		OrderBy("queued_at", "entity_table", "local_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		q.logger.Err(err).Str("func", "QueueRepository.Load").Msg("failed to query sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ops := make([]models.QueuedOperation, 0)
	for rows.Next() {
		var (
			op            models.QueuedOperation
			nextAttemptAt sql.NullTime
		)
		if err = rows.Scan(&op.Operation, &op.Table, &op.LocalID, &op.Timestamp, &op.Attempts, &nextAttemptAt, &op.LastError); err != nil {
			q.logger.Err(err).Str("func", "QueueRepository.Load").Msg("failed to scan sync queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		op.Timestamp = op.Timestamp.UTC()
		op.NextAttemptAt = timePtr(nextAttemptAt)
		ops = append(ops, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ops, nil
}

// Save replaces the stored queue with ops in one transaction.
func (q *QueueRepository) Save(ctx context.Context, ops []models.QueuedOperation) error {
	tx, err := q.DB.BeginTx(ctx, nil)
	if err != nil {
		q.logger.Err(err).Str("func", "QueueRepository.Save").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM sync_queue`); err != nil {
		q.logger.Err(err).Str("func", "QueueRepository.Save").Msg("failed to clear sync queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(ops) > 0 {
		insert := q.builder.Insert("sync_queue").
			Columns("operation", "entity_table", "local_id", "queued_at", "attempts", "next_attempt_at", "last_error")
		for _, op := range ops {
			insert = insert.Values(op.Operation, op.Table, op.LocalID, op.Timestamp.UTC(), op.Attempts, utcPtr(op.NextAttemptAt), op.LastError)
		}

		query, args, buildErr := insert.ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			q.logger.Err(err).Str("func", "QueueRepository.Save").Int("count", len(ops)).Msg("failed to insert sync queue")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
