// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type syncQueue struct {
	persistence store.QueuePersistence
	retry       RetryPolicy
	now         func() time.Time

	mu          sync.Mutex
	initialized bool
	entries     []models.QueuedOperation

	logger *logger.Logger
}

// NewSyncQueue returns a queue backed by persistence. It is unusable until
// Init has loaded the persisted entries.
func NewSyncQueue(persistence store.QueuePersistence, retry RetryPolicy, logger *logger.Logger) SyncQueue {
	return &syncQueue{
		persistence: persistence,
		retry:       retry,
		now:         utcNow,
		logger:      logger,
	}
}

func (q *syncQueue) Init(ctx context.Context) error {
	entries, err := q.persistence.Load(ctx)
	if err != nil {
		q.logger.Err(err).Str("func", "syncQueue.Init").Msg("failed to load sync queue")
		return fmt.Errorf("load sync queue: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = q.entries[:0]
	for _, op := range entries {
		q.upsert(op)
	}
	q.initialized = true

	q.logger.Debug().Int("entries", len(q.entries)).Msg("sync queue loaded")
	return nil
}

func (q *syncQueue) Add(ctx context.Context, op models.QueuedOperation) error {
	if !op.Operation.Valid() || !op.Table.Valid() || op.LocalID == "" {
		return fmt.Errorf("%w: %s", ErrInvalidOperation, op)
	}
	if op.Timestamp.IsZero() {
		op.Timestamp = q.now()
	}
	op.Attempts = 0
	op.NextAttemptAt = nil
	op.LastError = ""

	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return ErrQueueNotInitialized
	}

	q.upsert(op)
	return q.persist(ctx)
}

// upsert applies the collapsing rules. Callers hold q.mu.
func (q *syncQueue) upsert(op models.QueuedOperation) {
	i := q.index(op.Ref())
	if i < 0 {
		q.entries = append(q.entries, op)
		return
	}

	existing := q.entries[i]
	switch {
	case existing.Operation == models.OpCreate && op.Operation == models.OpDelete:
		// never reached the remote store: nothing to send
		q.entries = slices.Delete(q.entries, i, i+1)
	case existing.Operation == models.OpCreate && op.Operation == models.OpUpdate:
		// still a create, so a later delete keeps cancelling it
		op.Operation = models.OpCreate
		q.entries[i] = op
	default:
		q.entries[i] = op
	}
}

func (q *syncQueue) index(ref models.RecordRef) int {
	return slices.IndexFunc(q.entries, func(e models.QueuedOperation) bool {
		return e.Ref() == ref
	})
}

func (q *syncQueue) Remove(ctx context.Context, table models.EntityTable, localID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return ErrQueueNotInitialized
	}

	i := q.index(models.RecordRef{Table: table, LocalID: localID})
	if i < 0 {
		return nil
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return q.persist(ctx)
}

func (q *syncQueue) GetAll() ([]models.QueuedOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return nil, ErrQueueNotInitialized
	}
	return q.ordered(), nil
}

func (q *syncQueue) GetByTable(table models.EntityTable) ([]models.QueuedOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return nil, ErrQueueNotInitialized
	}

	out := make([]models.QueuedOperation, 0)
	for _, op := range q.ordered() {
		if op.Table == table {
			out = append(out, op)
		}
	}
	return out, nil
}

func (q *syncQueue) Count() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return 0, ErrQueueNotInitialized
	}
	return len(q.entries), nil
}

func (q *syncQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.initialized {
		return ErrQueueNotInitialized
	}
	q.entries = q.entries[:0]
	return q.persist(ctx)
}

// ProcessQueue replays a snapshot of the queue without holding the lock, so
// records may be scheduled while a replay is running. An entry replaced
// during its own replay is left for the next run.
func (q *syncQueue) ProcessQueue(ctx context.Context, replay ReplayFunc) (models.QueueResult, error) {
	q.mu.Lock()
	if !q.initialized {
		q.mu.Unlock()
		return models.QueueResult{}, ErrQueueNotInitialized
	}
	snapshot := q.ordered()
	q.mu.Unlock()

	var result models.QueueResult
	now := q.now()

	for _, op := range snapshot {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", op, ctx.Err()))
			break
		}
		if !op.Due(now) {
			result.Deferred++
			continue
		}

		err := replay(ctx, op)

		q.mu.Lock()
		i := q.index(op.Ref())
		current := i >= 0 && q.entries[i].Operation == op.Operation && q.entries[i].Timestamp.Equal(op.Timestamp)
		switch {
		case err == nil:
			result.Processed++
			if current {
				q.entries = slices.Delete(q.entries, i, i+1)
			}
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", op, err))
			if current {
				failed := &q.entries[i]
				failed.Attempts++
				failed.LastError = err.Error()
				next := now.Add(q.retry.Delay(failed.Attempts))
				failed.NextAttemptAt = &next
			}
			q.logger.Warn().Err(err).
				Str("func", "syncQueue.ProcessQueue").
				Str("operation", op.String()).
				Int("attempts", op.Attempts+1).
				Msg("queued operation failed")
		}
		q.mu.Unlock()
	}

	// saved even when ctx ended mid-replay, or disk falls behind memory
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.persist(context.WithoutCancel(ctx)); err != nil {
		return result, err
	}

	return result, nil
}

// ordered returns a copy sorted by table dependency order, then by time.
// Callers hold q.mu.
func (q *syncQueue) ordered() []models.QueuedOperation {
	out := slices.Clone(q.entries)
	slices.SortStableFunc(out, func(a, b models.QueuedOperation) int {
		if d := a.Table.Priority() - b.Table.Priority(); d != 0 {
			return d
		}
		return a.Timestamp.Compare(b.Timestamp)
	})
	if out == nil {
		out = []models.QueuedOperation{}
	}
	return out
}

// persist saves the queue. Callers hold q.mu.
func (q *syncQueue) persist(ctx context.Context) error {
	if err := q.persistence.Save(ctx, slices.Clone(q.entries)); err != nil {
		q.logger.Err(err).Str("func", "syncQueue.persist").Msg("failed to persist sync queue")
		return fmt.Errorf("persist sync queue: %w", err)
	}
	return nil
}
