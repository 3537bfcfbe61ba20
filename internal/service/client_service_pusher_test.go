package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPusher(t *testing.T, purge bool) (*pusher, *mock.MockLocalRecordRepository, *mock.MockRemoteStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	p := NewPusher(records, remote, purge, logger.Nop()).(*pusher)
	p.now = fixedClock(at(500))
	return p, records, remote
}

// ── Push ─────────────────────────────────────────────────────────────────────

func TestPusher_Push_InsertsNewRecord(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.RemoteRecord) (models.RemoteRecord, error) {
		assert.Equal(t, "t1", r.LocalID)
		assert.Equal(t, int64(7), r.OwnerID)
		assert.Equal(t, at(100), r.UpdatedAt)
		assert.Equal(t, float64(10), r.Payload["amount"])
		r.ID = 41
		return r, nil
	})
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(41), at(500), at(100)).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, models.TableTransactions, result.Table)
}

func TestPusher_Push_UpdatesExistingRecord(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)
	rec.RemoteID = int64Ptr(41)

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{ID: 41, LocalID: "t1"}, nil)
	remote.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.RemoteRecord) (models.RemoteRecord, error) {
		assert.Equal(t, int64(41), r.ID)
		return r, nil
	})
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(41), at(500), at(100)).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
}

func TestPusher_Push_InsertRaceFallsBackToUpdate(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).Return(models.RemoteRecord{}, adapter.ErrConflict)
	remote.EXPECT().Update(ctx, gomock.Any()).Return(models.RemoteRecord{ID: 9}, nil)
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(9), at(500), at(100)).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Errors)
}

func TestPusher_Push_PartialFailureContainment(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()

	var pending []models.SyncableRecord
	for i, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		pending = append(pending, pendingTx(id, at(100+i), i))
	}

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return(pending, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.EntityTable, localID string) (models.RemoteRecord, error) {
			if localID == "r3" {
				return models.RemoteRecord{}, adapter.ErrTransport
			}
			return models.RemoteRecord{}, adapter.ErrNotFound
		}).Times(5)
	remote.EXPECT().Insert(ctx, gomock.Any()).Return(models.RemoteRecord{ID: 1}, nil).Times(4)
	for _, rec := range pending {
		if rec.LocalID != "r3" {
			records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(1), at(500), rec.UpdatedAt).Return(nil)
		}
	}

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 4, result.Pushed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "transactions/r3")
}

func TestPusher_Push_StaleRecordCountsAsPushed(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).Return(models.RemoteRecord{ID: 3}, nil)
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(3), at(500), at(100)).Return(store.ErrStaleRecord)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Errors)
}

func TestPusher_Push_ForceIncludesSynced(t *testing.T) {
	p, records, _ := newTestPusher(t, false)
	ctx := context.Background()

	records.EXPECT().ListByStatus(ctx, models.TableBudgets, models.StatusPending, models.StatusSynced).Return(nil, nil)

	result := p.Push(ctx, 7, models.TableBudgets, PushOptions{Force: true})

	assert.Zero(t, result.Pushed)
	assert.Empty(t, result.Errors)
}

func TestPusher_Push_ListError(t *testing.T) {
	p, records, _ := newTestPusher(t, false)
	ctx := context.Background()

	records.EXPECT().ListByStatus(ctx, models.TableCategories, models.StatusPending).Return(nil, store.ErrExecutingQuery)

	result := p.Push(ctx, 7, models.TableCategories, PushOptions{})

	assert.Zero(t, result.Pushed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "categories")
}

func TestPusher_Push_SkipsOtherOwnersAndClaimsUnowned(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()

	foreign := pendingTx("foreign", at(100), 1)
	foreign.OwnerID = 99
	unowned := pendingTx("unowned", at(101), 2)
	unowned.OwnerID = 0

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{foreign, unowned}, nil)
	records.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.SyncableRecord) error {
		assert.Equal(t, "unowned", r.LocalID)
		assert.Equal(t, int64(7), r.OwnerID)
		return nil
	})
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "unowned").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.RemoteRecord) (models.RemoteRecord, error) {
		assert.Equal(t, int64(7), r.OwnerID)
		r.ID = 5
		return r, nil
	})
	records.EXPECT().MarkSynced(ctx, unowned.Ref(), int64(5), at(500), at(101)).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
}

// ── Tombstones ───────────────────────────────────────────────────────────────

func TestPusher_Push_TombstonePurgedAfterUpload(t *testing.T) {
	p, records, remote := newTestPusher(t, true)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)
	rec.DeletedAt = timePtr(at(100))

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{ID: 2}, nil)
	remote.EXPECT().Delete(ctx, models.TableTransactions, "t1", at(100)).Return(models.RemoteRecord{ID: 2, DeletedAt: timePtr(at(100))}, nil)
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(2), at(500), at(100)).Return(nil)
	records.EXPECT().Purge(ctx, rec.Ref()).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Errors)
}

func TestPusher_Push_TombstoneKeptWithoutPurge(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)
	rec.DeletedAt = timePtr(at(100))

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{ID: 2}, nil)
	remote.EXPECT().Delete(ctx, models.TableTransactions, "t1", at(100)).Return(models.RemoteRecord{ID: 2, DeletedAt: timePtr(at(100))}, nil)
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(2), at(500), at(100)).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Equal(t, 1, result.Pushed)
}

func TestPusher_Push_TombstoneNeverUploadedIsDropped(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)
	rec.DeletedAt = timePtr(at(100))

	records.EXPECT().ListByStatus(ctx, models.TableTransactions, models.StatusPending).Return([]models.SyncableRecord{rec}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	records.EXPECT().Purge(ctx, rec.Ref()).Return(nil)

	result := p.Push(ctx, 7, models.TableTransactions, PushOptions{})

	assert.Zero(t, result.Pushed)
	assert.Empty(t, result.Errors)
}

func TestPusher_PushRecord_TombstoneNeverUploaded(t *testing.T) {
	p, records, remote := newTestPusher(t, true)
	ctx := context.Background()
	rec := pendingTx("t1", at(100), 10)
	rec.DeletedAt = timePtr(at(100))

	records.EXPECT().Get(ctx, rec.Ref()).Return(rec, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	records.EXPECT().Purge(ctx, rec.Ref()).Return(store.ErrRecordNotFound)

	saved, err := p.PushRecord(ctx, 7, rec.Ref())

	require.NoError(t, err)
	assert.Zero(t, saved.ID)
}

func TestPusher_PushTombstone(t *testing.T) {
	p, _, remote := newTestPusher(t, false)
	ctx := context.Background()
	ref := txRef("gone")

	remote.EXPECT().Delete(ctx, models.TableTransactions, "gone", at(1)).Return(models.RemoteRecord{}, adapter.ErrNotFound)
	assert.NoError(t, p.PushTombstone(ctx, ref, at(1)))

	remote.EXPECT().Delete(ctx, models.TableTransactions, "gone", at(1)).Return(models.RemoteRecord{}, adapter.ErrTransport)
	assert.ErrorIs(t, p.PushTombstone(ctx, ref, at(1)), adapter.ErrTransport)
}

// ── References ───────────────────────────────────────────────────────────────

func TestPusher_ResolvesReferences(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()

	rec := pendingTx("t1", at(100), 10)
	rec.Payload["category_id"] = "c1"
	category := models.SyncableRecord{Table: models.TableCategories, LocalID: "c1", RemoteID: int64Ptr(77)}

	records.EXPECT().Get(ctx, rec.Ref()).Return(rec, nil)
	records.EXPECT().Get(ctx, category.Ref()).Return(category, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.RemoteRecord) (models.RemoteRecord, error) {
		assert.Equal(t, "c1", r.Payload["category_id"])
		assert.Equal(t, int64(77), r.Payload["category_id_remote_id"])
		r.ID = 8
		return r, nil
	})
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(8), at(500), at(100)).Return(nil)

	saved, err := p.PushRecord(ctx, 7, rec.Ref())

	require.NoError(t, err)
	assert.Equal(t, int64(8), saved.ID)
	_, leaked := rec.Payload["category_id_remote_id"]
	assert.False(t, leaked, "local payload must not be modified")
}

func TestPusher_UnresolvedReferenceIsNull(t *testing.T) {
	p, records, remote := newTestPusher(t, false)
	ctx := context.Background()

	rec := pendingTx("t1", at(100), 10)
	rec.Payload["category_id"] = "c-unpushed"

	records.EXPECT().Get(ctx, rec.Ref()).Return(rec, nil)
	records.EXPECT().Get(ctx, models.RecordRef{Table: models.TableCategories, LocalID: "c-unpushed"}).
		Return(models.SyncableRecord{Table: models.TableCategories, LocalID: "c-unpushed"}, nil)
	remote.EXPECT().FindByLocalID(ctx, models.TableTransactions, "t1").Return(models.RemoteRecord{}, adapter.ErrNotFound)
	remote.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.RemoteRecord) (models.RemoteRecord, error) {
		v, ok := r.Payload["category_id_remote_id"]
		assert.True(t, ok)
		assert.Nil(t, v)
		r.ID = 8
		return r, nil
	})
	records.EXPECT().MarkSynced(ctx, rec.Ref(), int64(8), at(500), at(100)).Return(nil)

	_, err := p.PushRecord(ctx, 7, rec.Ref())
	require.NoError(t, err)
}

func TestPusher_PushRecord_MissingLocal(t *testing.T) {
	p, records, _ := newTestPusher(t, false)
	ctx := context.Background()

	records.EXPECT().Get(ctx, txRef("nope")).Return(models.SyncableRecord{}, store.ErrRecordNotFound)

	_, err := p.PushRecord(ctx, 7, txRef("nope"))
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}
