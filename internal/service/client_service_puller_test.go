package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPuller(t *testing.T, purge bool) (*puller, *mock.MockLocalRecordRepository, *mock.MockRemoteStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	p := NewPuller(records, remote, purge, logger.Nop()).(*puller)
	p.now = fixedClock(at(500))
	return p, records, remote
}

func remoteTx(id string, remoteID int64, updatedAt time.Time, amount int) models.RemoteRecord {
	return models.RemoteRecord{
		ID:              remoteID,
		OwnerID:         7,
		Table:           models.TableTransactions,
		LocalID:         id,
		Payload:         models.Payload{"amount": float64(amount)},
		CreatedAt:       updatedAt,
		UpdatedAt:       updatedAt,
		ServerUpdatedAt: updatedAt.Add(time.Second),
	}
}

// ── Pull ─────────────────────────────────────────────────────────────────────

func TestPuller_Pull_InsertsMissingRecord(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	incoming := remoteTx("t1", 11, at(90), 12)

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, (*time.Time)(nil)).Return([]models.RemoteRecord{incoming}, nil)
	records.EXPECT().Get(ctx, txRef("t1")).Return(models.SyncableRecord{}, store.ErrRecordNotFound)
	records.EXPECT().GetByRemoteID(ctx, models.TableTransactions, int64(11)).Return(models.SyncableRecord{}, store.ErrRecordNotFound)
	records.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.SyncableRecord) error {
		assert.Equal(t, "t1", r.LocalID)
		assert.Equal(t, int64(7), r.OwnerID)
		assert.Equal(t, models.StatusSynced, r.SyncStatus)
		assert.Equal(t, int64(11), *r.RemoteID)
		assert.Equal(t, at(500), *r.SyncedAt)
		assert.Equal(t, float64(12), r.Payload["amount"])
		return nil
	})

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Equal(t, 1, result.Pulled)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Cursor)
	assert.Equal(t, at(91), *result.Cursor)
}

// pending local newer than remote: conflict, payload untouched
func TestPuller_Pull_ConflictWhenLocalNewer(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	local := pendingTx("t1", at(100), 10)
	since := at(50)

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, &since).Return([]models.RemoteRecord{remoteTx("t1", 11, at(90), 12)}, nil)
	records.EXPECT().Get(ctx, txRef("t1")).Return(local, nil)
	records.EXPECT().MarkConflict(ctx, txRef("t1")).Return(nil)

	result := p.Pull(ctx, 7, models.TableTransactions, &since)

	assert.Zero(t, result.Pulled)
	require.Len(t, result.Conflicts, 1)
	c := result.Conflicts[0]
	assert.Equal(t, txRef("t1"), c.Ref)
	assert.Equal(t, float64(10), c.LocalPayload["amount"])
	assert.Equal(t, float64(12), c.RemotePayload["amount"])
	assert.Equal(t, at(100), c.LocalUpdatedAt)
	assert.Equal(t, at(90), c.RemoteUpdatedAt)
	assert.Equal(t, at(500), c.DetectedAt)
}

// remote newer or equal: remote wins
func TestPuller_Pull_RemoteWinsWhenNewerOrEqual(t *testing.T) {
	for _, remoteAt := range []time.Time{at(110), at(100)} {
		p, records, remote := newTestPuller(t, false)
		ctx := context.Background()
		local := pendingTx("t1", at(100), 10)

		remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{remoteTx("t1", 11, remoteAt, 12)}, nil)
		records.EXPECT().Get(ctx, txRef("t1")).Return(local, nil)
		records.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.SyncableRecord) error {
			assert.Equal(t, float64(12), r.Payload["amount"])
			assert.Equal(t, models.StatusSynced, r.SyncStatus)
			assert.Equal(t, remoteAt, r.UpdatedAt)
			assert.Equal(t, int64(11), *r.RemoteID)
			return nil
		})

		result := p.Pull(ctx, 7, models.TableTransactions, nil)

		assert.Equal(t, 1, result.Pulled, "remote at %s", remoteAt)
		assert.Empty(t, result.Conflicts)
	}
}

func TestPuller_Pull_SyncedLocalIsOverwritten(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	local := pendingTx("t1", at(100), 10)
	local.SyncStatus = models.StatusSynced
	local.RemoteID = int64Ptr(11)

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{remoteTx("t1", 11, at(90), 12)}, nil)
	records.EXPECT().Get(ctx, txRef("t1")).Return(local, nil)
	records.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Equal(t, 1, result.Pulled)
	assert.Empty(t, result.Conflicts)
}

func TestPuller_Pull_UnchangedIsSkipped(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	local := pendingTx("t1", at(100), 10)
	local.SyncStatus = models.StatusSynced
	local.RemoteID = int64Ptr(11)

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{remoteTx("t1", 11, at(100), 10)}, nil)
	records.EXPECT().Get(ctx, txRef("t1")).Return(local, nil)

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Zero(t, result.Pulled)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Cursor)
}

func TestPuller_Pull_AlreadyConflictedIsNotCountedAgain(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	local := pendingTx("t1", at(100), 10)
	local.SyncStatus = models.StatusConflict

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{remoteTx("t1", 11, at(90), 12)}, nil)
	records.EXPECT().Get(ctx, txRef("t1")).Return(local, nil)

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Zero(t, result.Pulled)
	assert.Empty(t, result.Conflicts)
}

func TestPuller_Pull_FallsBackToRemoteID(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()
	incoming := remoteTx("", 11, at(110), 12)
	local := pendingTx("t1", at(100), 10)
	local.SyncStatus = models.StatusSynced
	local.RemoteID = int64Ptr(11)

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{incoming}, nil)
	records.EXPECT().GetByRemoteID(ctx, models.TableTransactions, int64(11)).Return(local, nil)
	records.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.SyncableRecord) error {
		assert.Equal(t, "t1", r.LocalID)
		return nil
	})

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Equal(t, 1, result.Pulled)
}

// ── Tombstones ───────────────────────────────────────────────────────────────

func TestPuller_Pull_RemoteTombstone(t *testing.T) {
	t.Run("purged", func(t *testing.T) {
		p, records, remote := newTestPuller(t, true)
		ctx := context.Background()
		incoming := remoteTx("t1", 11, at(110), 12)
		incoming.DeletedAt = timePtr(at(110))

		remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{incoming}, nil)
		records.EXPECT().Get(ctx, txRef("t1")).Return(pendingTx("t1", at(100), 10), nil)
		records.EXPECT().Purge(ctx, txRef("t1")).Return(nil)

		result := p.Pull(ctx, 7, models.TableTransactions, nil)
		assert.Equal(t, 1, result.Pulled)
	})

	t.Run("kept as tombstone", func(t *testing.T) {
		p, records, remote := newTestPuller(t, false)
		ctx := context.Background()
		incoming := remoteTx("t1", 11, at(110), 12)
		incoming.DeletedAt = timePtr(at(110))

		remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{incoming}, nil)
		records.EXPECT().Get(ctx, txRef("t1")).Return(pendingTx("t1", at(100), 10), nil)
		records.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r models.SyncableRecord) error {
			require.NotNil(t, r.DeletedAt)
			assert.Equal(t, at(110), *r.DeletedAt)
			return nil
		})

		result := p.Pull(ctx, 7, models.TableTransactions, nil)
		assert.Equal(t, 1, result.Pulled)
	})

	t.Run("unknown tombstone with purge is ignored", func(t *testing.T) {
		p, records, remote := newTestPuller(t, true)
		ctx := context.Background()
		incoming := remoteTx("t1", 11, at(110), 12)
		incoming.DeletedAt = timePtr(at(110))

		remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{incoming}, nil)
		records.EXPECT().Get(ctx, txRef("t1")).Return(models.SyncableRecord{}, store.ErrRecordNotFound)
		records.EXPECT().GetByRemoteID(ctx, models.TableTransactions, int64(11)).Return(models.SyncableRecord{}, store.ErrRecordNotFound)

		result := p.Pull(ctx, 7, models.TableTransactions, nil)
		assert.Zero(t, result.Pulled)
		assert.Empty(t, result.Errors)
	})
}

// ── Failures ─────────────────────────────────────────────────────────────────

func TestPuller_Pull_QueryError(t *testing.T) {
	p, _, remote := newTestPuller(t, false)
	ctx := context.Background()

	remote.EXPECT().QuerySince(ctx, models.TableCategories, gomock.Any()).Return(nil, adapter.ErrTransport)

	result := p.Pull(ctx, 7, models.TableCategories, nil)

	assert.Zero(t, result.Pulled)
	assert.Nil(t, result.Cursor)
	require.Len(t, result.Errors, 1)
}

func TestPuller_Pull_PerRecordFailureDoesNotAbort(t *testing.T) {
	p, records, remote := newTestPuller(t, false)
	ctx := context.Background()

	remote.EXPECT().QuerySince(ctx, models.TableTransactions, gomock.Any()).Return([]models.RemoteRecord{
		remoteTx("bad", 1, at(100), 1),
		remoteTx("good", 2, at(200), 2),
	}, nil)
	records.EXPECT().Get(ctx, txRef("bad")).Return(models.SyncableRecord{}, store.ErrScanningRow)
	records.EXPECT().Get(ctx, txRef("good")).Return(models.SyncableRecord{}, store.ErrRecordNotFound)
	records.EXPECT().GetByRemoteID(ctx, models.TableTransactions, int64(2)).Return(models.SyncableRecord{}, store.ErrRecordNotFound)
	records.EXPECT().Insert(ctx, gomock.Any()).Return(nil)

	result := p.Pull(ctx, 7, models.TableTransactions, nil)

	assert.Equal(t, 1, result.Pulled)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "transactions/bad")
	require.NotNil(t, result.Cursor)
	assert.Equal(t, at(201), *result.Cursor)
}
